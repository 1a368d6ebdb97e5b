package commands

import (
	"context"
	"log/slog"
	"strings"

	application "claimdesk/contexts/creator-earnings/post-service/application"
	"claimdesk/contexts/creator-earnings/post-service/domain/entities"
	domainerrors "claimdesk/contexts/creator-earnings/post-service/domain/errors"
	"claimdesk/contexts/creator-earnings/post-service/ports"
)

const (
	CounterLikes = "like_count"
	CounterViews = "view_count"
)

type CreatePostCommand struct {
	OwnerID string
	Content string
}

type ManagePostUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc ManagePostUseCase) Create(ctx context.Context, cmd CreatePostCommand) (entities.Post, error) {
	logger := application.ResolveLogger(uc.Logger)
	postID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Post{}, err
	}
	now := uc.Clock.Now().UTC()
	post := entities.Post{
		PostID:    postID,
		OwnerID:   strings.TrimSpace(cmd.OwnerID),
		Content:   strings.TrimSpace(cmd.Content),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !post.ValidateCreate() {
		return entities.Post{}, domainerrors.ErrInvalidPostInput
	}
	if err := uc.Repository.CreatePost(ctx, post); err != nil {
		return entities.Post{}, err
	}
	logger.Info("post created",
		"event", "post_created",
		"module", "creator-earnings/post-service",
		"layer", "application",
		"post_id", post.PostID,
		"owner_id", post.OwnerID,
	)
	return post, nil
}

func (uc ManagePostUseCase) AddLike(ctx context.Context, postID string) (entities.Post, error) {
	return uc.increment(ctx, postID, CounterLikes)
}

func (uc ManagePostUseCase) AddView(ctx context.Context, postID string) (entities.Post, error) {
	return uc.increment(ctx, postID, CounterViews)
}

func (uc ManagePostUseCase) increment(ctx context.Context, postID string, counter string) (entities.Post, error) {
	post, err := uc.Repository.GetPost(ctx, strings.TrimSpace(postID))
	if err != nil {
		return entities.Post{}, err
	}
	if !post.Active {
		return entities.Post{}, domainerrors.ErrPostInactive
	}
	return uc.Repository.IncrementCounter(ctx, post.PostID, counter)
}

// Deactivate soft-deletes; only the owner may do it.
func (uc ManagePostUseCase) Deactivate(ctx context.Context, postID string, actorID string) error {
	logger := application.ResolveLogger(uc.Logger)
	post, err := uc.Repository.GetPost(ctx, strings.TrimSpace(postID))
	if err != nil {
		return err
	}
	if strings.TrimSpace(actorID) == "" || post.OwnerID != strings.TrimSpace(actorID) {
		return domainerrors.ErrNotPostOwner
	}
	post.Active = false
	post.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Repository.UpdatePost(ctx, post); err != nil {
		return err
	}
	logger.Info("post deactivated",
		"event", "post_deactivated",
		"module", "creator-earnings/post-service",
		"layer", "application",
		"post_id", post.PostID,
	)
	return nil
}
