package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/catalog"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

// BlogPostRepository is the SQL-based store for insights articles.
type BlogPostRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

// NewBlogPostRepository creates a new instance of the repository.
func NewBlogPostRepository(db *sql.DB, logger *logging.ChanneledLogger) *BlogPostRepository {
	return &BlogPostRepository{db: db, logger: logger}
}

// FindPublished retrieves published posts, most recent first.
func (r *BlogPostRepository) FindPublished() ([]*catalog.BlogPost, error) {
	query := `SELECT id, slug, title, excerpt, body, cover_image, published, published_at, updated_at
		FROM blog_posts WHERE published = 1 ORDER BY published_at DESC`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to load blog posts", "error", err.Error())
		return nil, fmt.Errorf("failed to query blog posts: %w", err)
	}
	defer rows.Close()

	posts := []*catalog.BlogPost{}
	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return posts, nil
}

// FindBySlug retrieves one published post by slug. Returns nil when absent.
func (r *BlogPostRepository) FindBySlug(slug string) (*catalog.BlogPost, error) {
	query := `SELECT id, slug, title, excerpt, body, cover_image, published, published_at, updated_at
		FROM blog_posts WHERE slug = ? AND published = 1`

	start := time.Now()
	post, err := scanBlogPost(r.db.QueryRow(query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Database().Error("Failed to load blog post", "error", err.Error(), "slug", slug)
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return post, nil
}

func scanBlogPost(row rowScanner) (*catalog.BlogPost, error) {
	var post catalog.BlogPost
	var published int
	var publishedAt sql.NullTime
	err := row.Scan(&post.ID, &post.Slug, &post.Title, &post.Excerpt, &post.Body,
		&post.CoverImage, &published, &publishedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	post.Published = published != 0
	if publishedAt.Valid {
		post.PublishedAt = publishedAt.Time
	}
	return &post, nil
}
