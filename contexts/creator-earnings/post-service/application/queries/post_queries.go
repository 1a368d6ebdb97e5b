package queries

import (
	"context"
	"log/slog"
	"strings"

	"claimdesk/contexts/creator-earnings/post-service/domain/entities"
	"claimdesk/contexts/creator-earnings/post-service/ports"
)

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc QueryUseCase) GetPost(ctx context.Context, postID string) (entities.Post, error) {
	return uc.Repository.GetPost(ctx, strings.TrimSpace(postID))
}

func (uc QueryUseCase) ListPostsByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]entities.Post, error) {
	return uc.Repository.ListPosts(ctx, ports.PostFilter{
		OwnerID:    strings.TrimSpace(ownerID),
		ActiveOnly: activeOnly,
	})
}
