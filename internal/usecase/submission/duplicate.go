package submission

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"stac-index/internal/domain/entity"
)

// KeyLister loads the URL and title of every record in one collection.
type KeyLister interface {
	ListKeys(ctx context.Context) ([]entity.ListingKey, error)
}

// CheckDuplicate rejects a submission whose URL, or title when one is given,
// matches an existing record of the collection after normalisation.
// The check scans the whole collection and is advisory: two concurrent
// submissions can both pass it.
func CheckDuplicate(ctx context.Context, collection entity.Collection, keys KeyLister, url, title string) error {
	existing, err := keys.ListKeys(ctx)
	if err != nil {
		return fmt.Errorf("load %s keys: %w", collection, err)
	}

	wantURL := normalize(url)
	wantTitle := normalize(title)
	for _, k := range existing {
		if normalize(k.URL) == wantURL {
			return &entity.DuplicateError{Collection: collection}
		}
		if title != "" && normalize(k.Title) == wantTitle {
			return &entity.DuplicateError{Collection: collection}
		}
	}
	return nil
}

// normalize lowercases s and drops whitespace, hyphens and underscores.
func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			return -1
		}
		return r
	}, strings.ToLower(s))
}
