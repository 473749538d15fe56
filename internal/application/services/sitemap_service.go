package services

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

// sitemapURL is one <url> entry in the urlset.
type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// urlSet is the sitemap document root.
type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// staticRoute pairs a site path with its crawl hints.
type staticRoute struct {
	path       string
	changeFreq string
	priority   string
}

var staticRoutes = []staticRoute{
	{"/", "weekly", "1.0"},
	{"/properties", "daily", "0.9"},
	{"/valuation", "monthly", "0.8"},
	{"/areas", "monthly", "0.7"},
	{"/blog", "weekly", "0.7"},
	{"/about", "monthly", "0.5"},
	{"/contact", "monthly", "0.5"},
}

// SitemapService renders the sitemap from the static route table plus the
// live catalogue. Catalogue read failures already degrade to empty lists, so
// the sitemap always renders at least the static routes.
type SitemapService struct {
	catalog *CatalogService
	baseURL string
	logger  *logging.ChanneledLogger
}

// NewSitemapService creates a new sitemap service.
func NewSitemapService(catalogSvc *CatalogService, logger *logging.ChanneledLogger) *SitemapService {
	return &SitemapService{
		catalog: catalogSvc,
		baseURL: config.SiteBaseURL,
		logger:  logger,
	}
}

// Generate renders the sitemap XML document.
func (s *SitemapService) Generate() ([]byte, error) {
	now := time.Now().UTC().Format("2006-01-02")

	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, route := range staticRoutes {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.baseURL + route.path,
			LastMod:    now,
			ChangeFreq: route.changeFreq,
			Priority:   route.priority,
		})
	}

	for _, property := range s.catalog.GetPublishedProperties() {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/properties/%s", s.baseURL, property.Slug),
			LastMod:    property.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	for _, area := range s.catalog.GetAreas() {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/areas/%s", s.baseURL, area.Slug),
			LastMod:    area.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	for _, post := range s.catalog.GetBlogPosts() {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/blog/%s", s.baseURL, post.Slug),
			LastMod:    post.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
