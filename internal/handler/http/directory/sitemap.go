package directory

import (
	"encoding/xml"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	sitemapNS        = "http://www.sitemaps.org/schemas/sitemap/0.9"
	sitemapXSI       = "http://www.w3.org/2001/XMLSchema-instance"
	sitemapSchemaLoc = "http://www.sitemaps.org/schemas/sitemap/0.9 http://www.sitemaps.org/schemas/sitemap/0.9/sitemap.xsd"
)

type urlset struct {
	XMLName        xml.Name     `xml:"urlset"`
	Xmlns          string       `xml:"xmlns,attr"`
	XSI            string       `xml:"xmlns:xsi,attr"`
	SchemaLocation string       `xml:"xsi:schemaLocation,attr"`
	URLs           []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	Priority   string `xml:"priority"`
	ChangeFreq string `xml:"changefreq"`
}

// SitemapHandler serves /sitemap.xml with absolute https URLs on Hostname.
type SitemapHandler struct {
	Svc      Reader
	Hostname string
}

func (h SitemapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	base := "https://" + h.Hostname
	entries := h.Svc.Sitemap(r.Context())

	set := urlset{
		Xmlns:          sitemapNS,
		XSI:            sitemapXSI,
		SchemaLocation: sitemapSchemaLoc,
		URLs:           make([]sitemapURL, 0, len(entries)),
	}
	for _, e := range entries {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + e.Path,
			Priority:   strconv.FormatFloat(e.Priority, 'f', -1, 64),
			ChangeFreq: e.ChangeFreq,
		})
	}

	out, err := xml.MarshalIndent(set, "", "\t")
	if err != nil {
		slog.Error("sitemap: failed to encode", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}
