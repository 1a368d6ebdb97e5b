package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"claimdesk/contexts/creator-earnings/post-service/application/commands"
	"claimdesk/contexts/creator-earnings/post-service/application/queries"
	"claimdesk/contexts/creator-earnings/post-service/domain/entities"
	httptransport "claimdesk/contexts/creator-earnings/post-service/transport/http"
)

type Handler struct {
	ManagePost commands.ManagePostUseCase
	Queries    queries.QueryUseCase
	Logger     *slog.Logger
}

// @Summary Create a post
// @Tags posts
// @Param request body http.CreatePostRequest true "post content"
// @Success 200 {object} http.PostResponse
// @Router /v1/posts [post]
func (h Handler) CreatePostHandler(ctx context.Context, userID string, req httptransport.CreatePostRequest) (httptransport.PostResponse, error) {
	post, err := h.ManagePost.Create(ctx, commands.CreatePostCommand{
		OwnerID: userID,
		Content: req.Content,
	})
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return httptransport.PostResponse{Post: mapPost(post)}, nil
}

// @Summary Record a like on a post
// @Tags posts
// @Success 200 {object} http.PostResponse
// @Router /v1/posts/{post_id}/like [post]
func (h Handler) AddLikeHandler(ctx context.Context, postID string) (httptransport.PostResponse, error) {
	post, err := h.ManagePost.AddLike(ctx, postID)
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return httptransport.PostResponse{Post: mapPost(post)}, nil
}

// @Summary Record a view on a post
// @Tags posts
// @Success 200 {object} http.PostResponse
// @Router /v1/posts/{post_id}/view [post]
func (h Handler) AddViewHandler(ctx context.Context, postID string) (httptransport.PostResponse, error) {
	post, err := h.ManagePost.AddView(ctx, postID)
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return httptransport.PostResponse{Post: mapPost(post)}, nil
}

// @Summary Deactivate a post
// @Tags posts
// @Success 204
// @Router /v1/posts/{post_id} [delete]
func (h Handler) DeactivatePostHandler(ctx context.Context, actorID string, postID string) error {
	return h.ManagePost.Deactivate(ctx, postID, actorID)
}

// @Summary List the caller's posts
// @Tags posts
// @Success 200 {object} http.ListPostsResponse
// @Router /v1/posts [get]
func (h Handler) ListPostsHandler(ctx context.Context, ownerID string, activeOnly bool) (httptransport.ListPostsResponse, error) {
	items, err := h.Queries.ListPostsByOwner(ctx, ownerID, activeOnly)
	if err != nil {
		return httptransport.ListPostsResponse{}, err
	}
	result := make([]httptransport.PostDTO, 0, len(items))
	for _, post := range items {
		result = append(result, mapPost(post))
	}
	return httptransport.ListPostsResponse{Items: result}, nil
}

func mapPost(post entities.Post) httptransport.PostDTO {
	return httptransport.PostDTO{
		PostID:    post.PostID,
		OwnerID:   post.OwnerID,
		Content:   post.Content,
		LikeCount: post.LikeCount,
		ViewCount: post.ViewCount,
		Active:    post.Active,
		CreatedAt: post.CreatedAt.Format(time.RFC3339),
		UpdatedAt: post.UpdatedAt.Format(time.RFC3339),
	}
}
