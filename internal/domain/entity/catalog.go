// Package entity defines the directory records of the STAC index and the rules that decide
// whether a submitted record may exist: per-field checks, the public projection applied before
// records leave the service, and the domain error types.
package entity

import "time"

// Collection names a stored collection of directory records.
type Collection string

const (
	CollectionCatalogs  Collection = "catalogs"
	CollectionEcosystem Collection = "ecosystem"
	CollectionTutorials Collection = "tutorials"
)

// Access describes who can reach a catalog or API.
type Access string

const (
	AccessPublic    Access = "public"
	AccessProtected Access = "protected"
	AccessPrivate   Access = "private"
)

// Catalog is a listing for a STAC catalog or STAC API.
// AccessInfo is set exactly when Access is not public.
type Catalog struct {
	ID         int64     `json:"id"`
	Slug       string    `json:"slug"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Access     Access    `json:"access"`
	AccessInfo *string   `json:"accessInfo,omitempty"`
	IsAPI      bool      `json:"isApi"`
	IsPrivate  bool      `json:"isPrivate"`
	Email      string    `json:"email,omitempty"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
}
