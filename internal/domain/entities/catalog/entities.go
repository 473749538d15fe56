// Package catalog defines the read-only content projections served by the site.
package catalog

import "time"

// Property is a published listing row projected into the shape the site renders.
type Property struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	PropertyType string    `json:"propertyType"`
	Status       string    `json:"status"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Address      string    `json:"address"`
	AreaSlug     string    `json:"areaSlug"`
	Featured     bool      `json:"featured"`
	Images       []string  `json:"images"`
	FloorPlanURL string    `json:"floorPlanUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Area is an area-guide row. Disabled areas are hidden from the site.
type Area struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Summary     string    `json:"summary"`
	HeroImage   string    `json:"heroImage,omitempty"`
	Enabled     bool      `json:"enabled"`
	DisplayRank int       `json:"displayRank"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BlogPost is a published insights article.
type BlogPost struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Body        string    `json:"body"`
	CoverImage  string    `json:"coverImage,omitempty"`
	Published   bool      `json:"published"`
	PublishedAt time.Time `json:"publishedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Testimonial is a client quote shown on landing surfaces.
type Testimonial struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}
