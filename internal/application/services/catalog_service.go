package services

import (
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/catalog"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/manager"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/performance"
	persistence "github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/catalog"
)

// CatalogService serves the site's read-only content through the query
// cache. Reads degrade to empty results on backend failure; rendering
// surfaces never see an error.
type CatalogService struct {
	cache        *manager.Manager
	properties   *persistence.PropertyRepository
	areas        *persistence.AreaRepository
	posts        *persistence.BlogPostRepository
	testimonials *persistence.TestimonialRepository
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewCatalogService creates a new catalogue read service.
func NewCatalogService(
	cache *manager.Manager,
	properties *persistence.PropertyRepository,
	areas *persistence.AreaRepository,
	posts *persistence.BlogPostRepository,
	testimonials *persistence.TestimonialRepository,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *CatalogService {
	return &CatalogService{
		cache:        cache,
		properties:   properties,
		areas:        areas,
		posts:        posts,
		testimonials: testimonials,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

// GetPublishedProperties returns all published listings.
func (s *CatalogService) GetPublishedProperties() []*catalog.Property {
	marker := s.perfTracker.StartOperation("catalog_properties", "")
	defer marker.Complete()

	value, ok := s.cache.GetOrFetch("properties:published", func() (any, error) {
		return s.properties.FindPublished()
	})
	if !ok {
		marker.SetSuccess(false)
		return []*catalog.Property{}
	}
	return value.([]*catalog.Property)
}

// GetFeaturedProperties returns listings flagged for the landing page.
func (s *CatalogService) GetFeaturedProperties() []*catalog.Property {
	value, ok := s.cache.GetOrFetch("properties:featured", func() (any, error) {
		return s.properties.FindFeatured()
	})
	if !ok {
		return []*catalog.Property{}
	}
	return value.([]*catalog.Property)
}

// GetPropertyBySlug returns one published listing. The second return value is
// false when the listing does not exist, so the edge can redirect to the index.
func (s *CatalogService) GetPropertyBySlug(slug string) (*catalog.Property, bool) {
	value, ok := s.cache.GetOrFetch("properties:slug:"+slug, func() (any, error) {
		return s.properties.FindBySlug(slug)
	})
	if !ok {
		return nil, false
	}
	property, _ := value.(*catalog.Property)
	if property == nil {
		return nil, false
	}
	return property, true
}

// GetPropertiesByArea returns published listings in one area.
func (s *CatalogService) GetPropertiesByArea(areaSlug string) []*catalog.Property {
	value, ok := s.cache.GetOrFetch("properties:area:"+areaSlug, func() (any, error) {
		return s.properties.FindByArea(areaSlug)
	})
	if !ok {
		return []*catalog.Property{}
	}
	return value.([]*catalog.Property)
}

// GetAreas returns enabled area guides in display order.
func (s *CatalogService) GetAreas() []*catalog.Area {
	value, ok := s.cache.GetOrFetch("areas:enabled", func() (any, error) {
		return s.areas.FindEnabled()
	})
	if !ok {
		return []*catalog.Area{}
	}
	return value.([]*catalog.Area)
}

// GetAreaBySlug returns one enabled area guide.
func (s *CatalogService) GetAreaBySlug(slug string) (*catalog.Area, bool) {
	value, ok := s.cache.GetOrFetch("areas:slug:"+slug, func() (any, error) {
		return s.areas.FindBySlug(slug)
	})
	if !ok {
		return nil, false
	}
	area, _ := value.(*catalog.Area)
	if area == nil {
		return nil, false
	}
	return area, true
}

// GetBlogPosts returns published insights articles.
func (s *CatalogService) GetBlogPosts() []*catalog.BlogPost {
	value, ok := s.cache.GetOrFetch("posts:published", func() (any, error) {
		return s.posts.FindPublished()
	})
	if !ok {
		return []*catalog.BlogPost{}
	}
	return value.([]*catalog.BlogPost)
}

// GetBlogPostBySlug returns one published article.
func (s *CatalogService) GetBlogPostBySlug(slug string) (*catalog.BlogPost, bool) {
	value, ok := s.cache.GetOrFetch("posts:slug:"+slug, func() (any, error) {
		return s.posts.FindBySlug(slug)
	})
	if !ok {
		return nil, false
	}
	post, _ := value.(*catalog.BlogPost)
	if post == nil {
		return nil, false
	}
	return post, true
}

// GetTestimonials returns client testimonials.
func (s *CatalogService) GetTestimonials() []*catalog.Testimonial {
	value, ok := s.cache.GetOrFetch("testimonials:all", func() (any, error) {
		return s.testimonials.FindAll()
	})
	if !ok {
		return []*catalog.Testimonial{}
	}
	return value.([]*catalog.Testimonial)
}

// InvalidateProperties drops the property caches after an admin write.
func (s *CatalogService) InvalidateProperties() {
	s.cache.Invalidate("properties:published")
	s.cache.Invalidate("properties:featured")
}
