package entity

import "time"

// Tutorial is a listing for STAC learning material.
// Tags are stored lowercase; Language is a spoken-language code.
type Tutorial struct {
	ID       int64     `json:"id"`
	URL      string    `json:"url"`
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	Tags     []string  `json:"tags"`
	Language string    `json:"language"`
	Email    string    `json:"email,omitempty"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

// ListingKey is the part of a stored record used for duplicate detection.
type ListingKey struct {
	URL   string
	Title string
}
