package postservice

import (
	"context"
	"errors"
	"testing"

	domainerrors "claimdesk/contexts/creator-earnings/post-service/domain/errors"
	httptransport "claimdesk/contexts/creator-earnings/post-service/transport/http"
)

func TestPostCreateAndEngagementCounters(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreatePostHandler(ctx, "creator-1", httptransport.CreatePostRequest{
		Content: "first upload of the season",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if created.Post.OwnerID != "creator-1" || !created.Post.Active {
		t.Fatalf("unexpected post: %+v", created.Post)
	}

	for i := 0; i < 3; i++ {
		if _, err := module.Handler.AddLikeHandler(ctx, created.Post.PostID); err != nil {
			t.Fatalf("add like: %v", err)
		}
	}
	viewed, err := module.Handler.AddViewHandler(ctx, created.Post.PostID)
	if err != nil {
		t.Fatalf("add view: %v", err)
	}
	if viewed.Post.LikeCount != 3 || viewed.Post.ViewCount != 1 {
		t.Fatalf("expected 3 likes / 1 view, got %+v", viewed.Post)
	}
}

func TestPostCreateRejectsEmptyContent(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	_, err := module.Handler.CreatePostHandler(context.Background(), "creator-1", httptransport.CreatePostRequest{
		Content: "   ",
	})
	if !errors.Is(err, domainerrors.ErrInvalidPostInput) {
		t.Fatalf("expected ErrInvalidPostInput, got %v", err)
	}
}

func TestPostDeactivationIsOwnerOnlyAndStopsEngagement(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreatePostHandler(ctx, "creator-1", httptransport.CreatePostRequest{
		Content: "short lived post",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := module.Handler.DeactivatePostHandler(ctx, "creator-2", created.Post.PostID); !errors.Is(err, domainerrors.ErrNotPostOwner) {
		t.Fatalf("expected ErrNotPostOwner, got %v", err)
	}
	if err := module.Handler.DeactivatePostHandler(ctx, "creator-1", created.Post.PostID); err != nil {
		t.Fatalf("owner deactivate: %v", err)
	}

	if _, err := module.Handler.AddLikeHandler(ctx, created.Post.PostID); !errors.Is(err, domainerrors.ErrPostInactive) {
		t.Fatalf("expected ErrPostInactive, got %v", err)
	}
}

func TestListPostsFiltersInactive(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()

	active, err := module.Handler.CreatePostHandler(ctx, "creator-1", httptransport.CreatePostRequest{Content: "keep"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	retired, err := module.Handler.CreatePostHandler(ctx, "creator-1", httptransport.CreatePostRequest{Content: "retire"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := module.Handler.DeactivatePostHandler(ctx, "creator-1", retired.Post.PostID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	onlyActive, err := module.Handler.ListPostsHandler(ctx, "creator-1", true)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(onlyActive.Items) != 1 || onlyActive.Items[0].PostID != active.Post.PostID {
		t.Fatalf("expected only the active post, got %+v", onlyActive.Items)
	}

	all, err := module.Handler.ListPostsHandler(ctx, "creator-1", false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all.Items) != 2 {
		t.Fatalf("expected both posts, got %+v", all.Items)
	}
}

func TestUnknownPostReturnsNotFound(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	_, err := module.Handler.AddLikeHandler(context.Background(), "no-such-post")
	if !errors.Is(err, domainerrors.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
