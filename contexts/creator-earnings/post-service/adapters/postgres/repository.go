package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"claimdesk/contexts/creator-earnings/post-service/domain/entities"
	domainerrors "claimdesk/contexts/creator-earnings/post-service/domain/errors"
	"claimdesk/contexts/creator-earnings/post-service/ports"

	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreatePost(ctx context.Context, post entities.Post) error {
	row := postModelFromEntity(post)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetPost(ctx context.Context, postID string) (entities.Post, error) {
	var row postModel
	err := r.db.WithContext(ctx).
		Where("post_id = ?", strings.TrimSpace(postID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Post{}, domainerrors.ErrPostNotFound
		}
		return entities.Post{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdatePost(ctx context.Context, post entities.Post) error {
	row := postModelFromEntity(post)
	result := r.db.WithContext(ctx).
		Model(&postModel{}).
		Where("post_id = ?", row.PostID).
		Updates(map[string]any{
			"content":    row.Content,
			"like_count": row.LikeCount,
			"view_count": row.ViewCount,
			"active":     row.Active,
			"updated_at": row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPostNotFound
	}
	return nil
}

// IncrementCounter does the bump in SQL so concurrent engagements never
// read-modify-write over each other.
func (r *Repository) IncrementCounter(ctx context.Context, postID string, counter string) (entities.Post, error) {
	if counter != "like_count" && counter != "view_count" {
		return entities.Post{}, domainerrors.ErrInvalidPostInput
	}
	result := r.db.WithContext(ctx).
		Model(&postModel{}).
		Where("post_id = ?", strings.TrimSpace(postID)).
		Updates(map[string]any{
			counter:      gorm.Expr(counter+" + ?", 1),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return entities.Post{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return r.GetPost(ctx, postID)
}

func (r *Repository) ListPosts(ctx context.Context, filter ports.PostFilter) ([]entities.Post, error) {
	tx := r.db.WithContext(ctx).Model(&postModel{})
	if filter.OwnerID != "" {
		tx = tx.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.ActiveOnly {
		tx = tx.Where("active = ?", true)
	}

	var rows []postModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Post, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type postModel struct {
	PostID    string    `gorm:"column:post_id;primaryKey"`
	OwnerID   string    `gorm:"column:owner_id"`
	Content   string    `gorm:"column:content"`
	LikeCount int       `gorm:"column:like_count"`
	ViewCount int       `gorm:"column:view_count"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (postModel) TableName() string {
	return "posts"
}

func postModelFromEntity(post entities.Post) postModel {
	return postModel{
		PostID:    strings.TrimSpace(post.PostID),
		OwnerID:   strings.TrimSpace(post.OwnerID),
		Content:   post.Content,
		LikeCount: post.LikeCount,
		ViewCount: post.ViewCount,
		Active:    post.Active,
		CreatedAt: post.CreatedAt.UTC(),
		UpdatedAt: post.UpdatedAt.UTC(),
	}
}

func (m postModel) toEntity() entities.Post {
	return entities.Post{
		PostID:    m.PostID,
		OwnerID:   m.OwnerID,
		Content:   m.Content,
		LikeCount: m.LikeCount,
		ViewCount: m.ViewCount,
		Active:    m.Active,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}
