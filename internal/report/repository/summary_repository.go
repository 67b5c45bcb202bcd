package repository

import (
	"context"
	"time"

	reportdomain "qisqa-backend/internal/report/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SummaryRepository defines the interface for summary record operations.
// Records are append-only: there is no update or delete.
type SummaryRepository interface {
	// Create inserts a new record, assigning its ID and CreatedAt
	Create(ctx context.Context, summary *reportdomain.Summary) error
	// FindByUserID lists a user's records newest first, with the total count
	FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*reportdomain.Summary, int64, error)
}

// summaryRepository implements SummaryRepository interface
type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new instance of summaryRepository
func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{
		db: db,
	}
}

func (r *summaryRepository) Create(ctx context.Context, summary *reportdomain.Summary) error {
	summary.ID = uuid.New().String()
	summary.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(summary).Error
}

func (r *summaryRepository) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*reportdomain.Summary, int64, error) {
	var summaries []*reportdomain.Summary
	var total int64

	query := r.db.WithContext(ctx).Model(&reportdomain.Summary{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&summaries).Error
	return summaries, total, err
}
