package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"claimdesk/contexts/creator-earnings/claim-service/domain/entities"
	domainerrors "claimdesk/contexts/creator-earnings/claim-service/domain/errors"
	"claimdesk/contexts/creator-earnings/claim-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
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

// CreateClaim writes the claim, its history, and one claim_posts junction
// row per post inside a single transaction. The UNIQUE constraint on
// claim_posts.post_id is the authoritative cross-claim uniqueness guarantee;
// the application pre-check only exists for the friendly error message.
func (r *Repository) CreateClaim(ctx context.Context, claim entities.Claim) error {
	row := claimModelFromEntity(claim)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for _, postID := range claim.PostIDs {
			junction := claimPostModel{
				PostID:    strings.TrimSpace(postID),
				ClaimID:   row.ClaimID,
				CreatedAt: row.CreatedAt,
			}
			if err := tx.Create(&junction).Error; err != nil {
				return err
			}
		}
		return r.insertHistory(tx, row.ClaimID, claim.History)
	})
	if err != nil {
		if isUniqueViolation(err) {
			conflicts, lookupErr := r.FindPostConflicts(ctx, claim.PostIDs)
			if lookupErr == nil && len(conflicts) > 0 {
				return &domainerrors.DuplicateClaimError{Conflicts: conflicts}
			}
			return domainerrors.ErrDuplicateClaim
		}
		return err
	}
	return nil
}

// UpdateClaim is the optimistic-concurrency write: the UPDATE only matches
// when the stored version equals expectedVersion, and bumps it by one.
// Only the history tail not yet in storage is appended, at positions past
// the stored maximum, so already-persisted entries are never rewritten.
func (r *Repository) UpdateClaim(ctx context.Context, claim entities.Claim, expectedVersion int64) error {
	row := claimModelFromEntity(claim)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&claimModel{}).
			Where("claim_id = ?", row.ClaimID).
			Where("version = ?", expectedVersion).
			Updates(claimUpdates(row, expectedVersion+1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&claimModel{}).
				Where("claim_id = ?", row.ClaimID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domainerrors.ErrClaimNotFound
			}
			return domainerrors.ErrVersionConflict
		}
		return r.insertHistory(tx, row.ClaimID, claim.History)
	})
}

func (r *Repository) GetClaim(ctx context.Context, claimID string) (entities.Claim, error) {
	var row claimModel
	err := r.db.WithContext(ctx).
		Where("claim_id = ?", strings.TrimSpace(claimID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Claim{}, domainerrors.ErrClaimNotFound
		}
		return entities.Claim{}, err
	}

	history, err := r.loadHistory(ctx, row.ClaimID)
	if err != nil {
		return entities.Claim{}, err
	}
	return row.toEntity(history), nil
}

func (r *Repository) FindPostConflicts(ctx context.Context, postIDs []string) ([]entities.PostConflict, error) {
	trimmed := make([]string, 0, len(postIDs))
	for _, id := range postIDs {
		if id = strings.TrimSpace(id); id != "" {
			trimmed = append(trimmed, id)
		}
	}
	if len(trimmed) == 0 {
		return nil, nil
	}

	var rows []struct {
		PostID  string `gorm:"column:post_id"`
		ClaimID string `gorm:"column:claim_id"`
		Status  string `gorm:"column:status"`
	}
	err := r.db.WithContext(ctx).
		Table("claim_posts").
		Select("claim_posts.post_id, claim_posts.claim_id, claims.status").
		Joins("JOIN claims ON claims.claim_id = claim_posts.claim_id").
		Where("claim_posts.post_id IN ?", trimmed).
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	conflicts := make([]entities.PostConflict, 0, len(rows))
	for _, row := range rows {
		conflicts = append(conflicts, entities.PostConflict{
			PostID:      row.PostID,
			ClaimID:     row.ClaimID,
			ClaimStatus: entities.ClaimStatus(row.Status),
		})
	}
	return conflicts, nil
}

func (r *Repository) ListClaims(ctx context.Context, filter ports.ClaimFilter) ([]entities.Claim, int64, error) {
	tx := r.db.WithContext(ctx).Model(&claimModel{})
	if filter.OwnerID != "" {
		tx = tx.Where("owner_id = ?", filter.OwnerID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, string(status))
		}
		tx = tx.Where("status IN ?", statuses)
	}
	if filter.ReviewedBy != "" {
		tx = tx.Where("reviewed_by = ?", filter.ReviewedBy)
	}
	if filter.FinalApprovedBy != "" {
		tx = tx.Where("final_approved_by = ?", filter.FinalApprovedBy)
	}
	if filter.HasDeduction != nil {
		if *filter.HasDeduction {
			tx = tx.Where("deduction_amount > 0")
		} else {
			tx = tx.Where("deduction_amount = 0")
		}
	}
	if filter.StartDate != nil {
		tx = tx.Where("created_at >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		tx = tx.Where("created_at <= ?", filter.EndDate.UTC())
	}
	if filter.MinEarnings != nil {
		tx = tx.Where("calculated_earnings >= ?", *filter.MinEarnings)
	}
	if filter.MaxEarnings != nil {
		tx = tx.Where("calculated_earnings <= ?", *filter.MaxEarnings)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var rows []claimModel
	if err := tx.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, 0, err
	}

	items := make([]entities.Claim, 0, len(rows))
	for _, row := range rows {
		history, err := r.loadHistory(ctx, row.ClaimID)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, row.toEntity(history))
	}
	return items, total, nil
}

func (r *Repository) ListStaleLocks(ctx context.Context, threshold time.Time, limit int) ([]entities.Claim, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []claimModel
	if err := r.db.WithContext(ctx).
		Where("locked_by <> ''").
		Where("locked_at IS NOT NULL").
		Where("locked_at <= ?", threshold.UTC()).
		Order("locked_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Claim, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity(nil))
	}
	return items, nil
}

// GetPostsByIDs reads the posts table projection owned by the post service.
func (r *Repository) GetPostsByIDs(ctx context.Context, postIDs []string) ([]ports.PostForClaim, error) {
	trimmed := make([]string, 0, len(postIDs))
	for _, id := range postIDs {
		if id = strings.TrimSpace(id); id != "" {
			trimmed = append(trimmed, id)
		}
	}
	if len(trimmed) == 0 {
		return nil, nil
	}

	var rows []postProjectionModel
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", trimmed).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]ports.PostForClaim, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.PostForClaim{
			PostID:    row.PostID,
			OwnerID:   row.OwnerID,
			Content:   row.Content,
			LikeCount: row.LikeCount,
			ViewCount: row.ViewCount,
			Active:    row.Active,
		})
	}
	return items, nil
}

// GetActiveRate reads the single active rate configuration.
func (r *Repository) GetActiveRate(ctx context.Context) (ports.RateConfiguration, error) {
	var row rateProjectionModel
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.RateConfiguration{}, domainerrors.ErrRateConfigurationMissing
		}
		return ports.RateConfiguration{}, err
	}
	return ports.RateConfiguration{
		RateID:          row.RateID,
		RatePerLike:     row.RatePerLike,
		RatePer100Views: row.RatePer100Views,
	}, nil
}

func (r *Repository) insertHistory(tx *gorm.DB, claimID string, history []entities.HistoryEntry) error {
	var stored []claimHistoryModel
	if err := tx.Where("claim_id = ?", claimID).Find(&stored).Error; err != nil {
		return err
	}
	for _, row := range pendingHistoryRows(claimID, stored, history) {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// pendingHistoryRows maps the not-yet-persisted tail of an entity's history
// to storage rows. Loaded history is compacted (out-of-vocabulary rows are
// skipped), so the count of valid stored rows says how many leading entries
// are already persisted, and new positions continue after the stored
// maximum rather than the compacted slice index.
func pendingHistoryRows(claimID string, stored []claimHistoryModel, history []entities.HistoryEntry) []claimHistoryModel {
	nextPosition := 0
	persisted := 0
	for _, row := range stored {
		if row.Position >= nextPosition {
			nextPosition = row.Position + 1
		}
		if entities.HistoryAction(row.Action).Valid() {
			persisted++
		}
	}
	if persisted >= len(history) {
		return nil
	}
	rows := make([]claimHistoryModel, 0, len(history)-persisted)
	for _, entry := range history[persisted:] {
		rows = append(rows, claimHistoryModel{
			ClaimID:  claimID,
			Position: nextPosition,
			Action:   string(entry.Action),
			ActorID:  entry.ActorID,
			Note:     entry.Note,
			At:       entry.At.UTC(),
		})
		nextPosition++
	}
	return rows
}

func (r *Repository) loadHistory(ctx context.Context, claimID string) ([]entities.HistoryEntry, error) {
	var rows []claimHistoryModel
	if err := r.db.WithContext(ctx).
		Where("claim_id = ?", claimID).
		Order("position ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	history := make([]entities.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		action := entities.HistoryAction(row.Action)
		if !action.Valid() {
			// Out-of-vocabulary entries are a data-quality problem from the
			// free-form era of the schema. Surface them, never write them back.
			r.logger.Warn("claim history entry outside action vocabulary",
				"event", "claim_history_invalid_action",
				"module", "creator-earnings/claim-service",
				"layer", "adapter",
				"claim_id", claimID,
				"position", row.Position,
				"action", row.Action,
			)
			continue
		}
		history = append(history, entities.HistoryEntry{
			Action:  action,
			ActorID: row.ActorID,
			Note:    row.Note,
			At:      row.At.UTC(),
		})
	}
	return history, nil
}

type claimModel struct {
	ClaimID            string         `gorm:"column:claim_id;primaryKey"`
	OwnerID            string         `gorm:"column:owner_id"`
	PostIDs            pq.StringArray `gorm:"column:post_ids;type:text[]"`
	ProofFileURLs      pq.StringArray `gorm:"column:proof_file_urls;type:text[]"`
	CalculatedEarnings float64        `gorm:"column:calculated_earnings"`
	Status             string         `gorm:"column:status"`
	DeductionAmount    float64        `gorm:"column:deduction_amount"`
	DeductionReason    string         `gorm:"column:deduction_reason"`
	RejectionReason    string         `gorm:"column:rejection_reason"`
	ReviewedBy         string         `gorm:"column:reviewed_by"`
	FinalApprovedBy    string         `gorm:"column:final_approved_by"`
	LockedBy           string         `gorm:"column:locked_by"`
	LockedAt           *time.Time     `gorm:"column:locked_at"`
	Active             bool           `gorm:"column:active"`
	Version            int64          `gorm:"column:version"`
	CreatedAt          time.Time      `gorm:"column:created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at"`
}

func (claimModel) TableName() string {
	return "claims"
}

type claimPostModel struct {
	PostID    string    `gorm:"column:post_id;primaryKey"`
	ClaimID   string    `gorm:"column:claim_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (claimPostModel) TableName() string {
	return "claim_posts"
}

type claimHistoryModel struct {
	ClaimID  string    `gorm:"column:claim_id;primaryKey"`
	Position int       `gorm:"column:position;primaryKey"`
	Action   string    `gorm:"column:action"`
	ActorID  string    `gorm:"column:actor_id"`
	Note     string    `gorm:"column:note"`
	At       time.Time `gorm:"column:at"`
}

func (claimHistoryModel) TableName() string {
	return "claim_history"
}

type postProjectionModel struct {
	PostID    string `gorm:"column:post_id;primaryKey"`
	OwnerID   string `gorm:"column:owner_id"`
	Content   string `gorm:"column:content"`
	LikeCount int    `gorm:"column:like_count"`
	ViewCount int    `gorm:"column:view_count"`
	Active    bool   `gorm:"column:active"`
}

func (postProjectionModel) TableName() string {
	return "posts"
}

type rateProjectionModel struct {
	RateID          string  `gorm:"column:rate_id;primaryKey"`
	RatePerLike     float64 `gorm:"column:rate_per_like"`
	RatePer100Views float64 `gorm:"column:rate_per_100_views"`
	Active          bool    `gorm:"column:active"`
}

func (rateProjectionModel) TableName() string {
	return "rate_configurations"
}

func claimModelFromEntity(claim entities.Claim) claimModel {
	return claimModel{
		ClaimID:            strings.TrimSpace(claim.ClaimID),
		OwnerID:            strings.TrimSpace(claim.OwnerID),
		PostIDs:            pq.StringArray(append([]string(nil), claim.PostIDs...)),
		ProofFileURLs:      pq.StringArray(append([]string(nil), claim.ProofFileURLs...)),
		CalculatedEarnings: claim.CalculatedEarnings,
		Status:             string(claim.Status),
		DeductionAmount:    claim.DeductionAmount,
		DeductionReason:    strings.TrimSpace(claim.DeductionReason),
		RejectionReason:    strings.TrimSpace(claim.RejectionReason),
		ReviewedBy:         strings.TrimSpace(claim.ReviewedBy),
		FinalApprovedBy:    strings.TrimSpace(claim.FinalApprovedBy),
		LockedBy:           strings.TrimSpace(claim.LockedBy),
		LockedAt:           normalizeOptionalTime(claim.LockedAt),
		Active:             claim.Active,
		Version:            claim.Version,
		CreatedAt:          claim.CreatedAt.UTC(),
		UpdatedAt:          claim.UpdatedAt.UTC(),
	}
}

func claimUpdates(row claimModel, nextVersion int64) map[string]any {
	return map[string]any{
		"status":            row.Status,
		"deduction_amount":  row.DeductionAmount,
		"deduction_reason":  row.DeductionReason,
		"rejection_reason":  row.RejectionReason,
		"reviewed_by":       row.ReviewedBy,
		"final_approved_by": row.FinalApprovedBy,
		"locked_by":         row.LockedBy,
		"locked_at":         row.LockedAt,
		"active":            row.Active,
		"version":           nextVersion,
		"updated_at":        row.UpdatedAt,
	}
}

func (m claimModel) toEntity(history []entities.HistoryEntry) entities.Claim {
	return entities.Claim{
		ClaimID:            m.ClaimID,
		OwnerID:            m.OwnerID,
		PostIDs:            append([]string(nil), m.PostIDs...),
		ProofFileURLs:      append([]string(nil), m.ProofFileURLs...),
		CalculatedEarnings: m.CalculatedEarnings,
		Status:             entities.ClaimStatus(m.Status),
		DeductionAmount:    m.DeductionAmount,
		DeductionReason:    m.DeductionReason,
		RejectionReason:    m.RejectionReason,
		ReviewedBy:         m.ReviewedBy,
		FinalApprovedBy:    m.FinalApprovedBy,
		LockedBy:           m.LockedBy,
		LockedAt:           normalizeOptionalTime(m.LockedAt),
		History:            history,
		Active:             m.Active,
		Version:            m.Version,
		CreatedAt:          m.CreatedAt.UTC(),
		UpdatedAt:          m.UpdatedAt.UTC(),
	}
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
