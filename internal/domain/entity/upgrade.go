package entity

// Upgrade returns the public form of the catalog: the contact email is removed and the
// legacy isPrivate flag is derived from Access. The receiver is not modified.
func (c *Catalog) Upgrade() *Catalog {
	if c == nil {
		return nil
	}
	out := *c
	out.Email = ""
	out.IsPrivate = out.Access != AccessPublic
	return &out
}

// Upgrade returns the public form of the ecosystem entry without the contact email.
func (e *Ecosystem) Upgrade() *Ecosystem {
	if e == nil {
		return nil
	}
	out := *e
	out.Email = ""
	return &out
}

// Upgrade returns the public form of the tutorial without the contact email.
func (t *Tutorial) Upgrade() *Tutorial {
	if t == nil {
		return nil
	}
	out := *t
	out.Email = ""
	return &out
}

type upgrader[T any] interface {
	Upgrade() T
}

// UpgradeAll applies Upgrade to every record, preserving order.
// A nil input yields an empty, non-nil slice so listings encode as [].
func UpgradeAll[T upgrader[T]](records []T) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		out = append(out, r.Upgrade())
	}
	return out
}
