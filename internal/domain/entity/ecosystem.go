package entity

import "time"

// Categories is the fixed list of ecosystem categories, in display order.
var Categories = []string{
	"API",
	"CLI",
	"Client",
	"Data Creation",
	"Data Processing",
	"Other",
	"Server",
	"Static",
	"Validation",
	"Visualization",
}

// Ecosystem is a listing for a STAC-related software tool.
type Ecosystem struct {
	ID         int64     `json:"id"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Categories []string  `json:"categories"`
	Language   *string   `json:"language"`
	Email      string    `json:"email,omitempty"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
}

// IsCategory reports whether name is one of the fixed ecosystem categories.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
