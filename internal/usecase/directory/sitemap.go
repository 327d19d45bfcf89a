package directory

import "context"

// SitemapEntry is one <url> element of the sitemap.
type SitemapEntry struct {
	Path       string
	Priority   float64
	ChangeFreq string
}

var staticPages = []SitemapEntry{
	{Path: "/", Priority: 1.0, ChangeFreq: "hourly"},
	{Path: "/contact", Priority: 0, ChangeFreq: "monthly"},
	{Path: "/privacy", Priority: 0, ChangeFreq: "monthly"},
	{Path: "/add", Priority: 0, ChangeFreq: "monthly"},
	{Path: "/catalogs", Priority: 0.5, ChangeFreq: "daily"},
	{Path: "/ecosystem", Priority: 0.5, ChangeFreq: "daily"},
	{Path: "/tutorials", Priority: 0.5, ChangeFreq: "daily"},
}

// Sitemap lists the static pages of the site followed by one page per catalog.
func (s *Service) Sitemap(ctx context.Context) []SitemapEntry {
	catalogs := s.ListCatalogs(ctx)
	entries := make([]SitemapEntry, 0, len(staticPages)+len(catalogs))
	entries = append(entries, staticPages...)
	for _, c := range catalogs {
		entries = append(entries, SitemapEntry{Path: "/catalogs/" + c.Slug, Priority: 0.8, ChangeFreq: "weekly"})
	}
	return entries
}
