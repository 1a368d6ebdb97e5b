package ports

import (
	"context"
	"time"

	"claimdesk/contexts/creator-earnings/post-service/domain/entities"
)

type PostFilter struct {
	OwnerID    string
	ActiveOnly bool
}

type Repository interface {
	CreatePost(ctx context.Context, post entities.Post) error
	GetPost(ctx context.Context, postID string) (entities.Post, error)
	UpdatePost(ctx context.Context, post entities.Post) error
	// IncrementCounter bumps like_count or view_count atomically so two
	// concurrent engagements never lose an increment.
	IncrementCounter(ctx context.Context, postID string, counter string) (entities.Post, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]entities.Post, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
