package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"estate-api/internal/domain"
)

type InquiryRepo struct{ db *gorm.DB }

func NewInquiryRepo(db *gorm.DB) *InquiryRepo { return &InquiryRepo{db: db} }

func (r *InquiryRepo) Create(ctx context.Context, q *domain.Inquiry) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *InquiryRepo) FindByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	var q domain.Inquiry
	err := r.db.WithContext(ctx).Preload("Listing").First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &q, err
}

func (r *InquiryRepo) ByListing(ctx context.Context, listingID string) ([]domain.Inquiry, error) {
	var items []domain.Inquiry
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// ByListingIDs 业主全部房源下的询盘，带房源摘要，最新在前
func (r *InquiryRepo) ByListingIDs(ctx context.Context, listingIDs []string) ([]domain.Inquiry, error) {
	if len(listingIDs) == 0 {
		return []domain.Inquiry{}, nil
	}
	var items []domain.Inquiry
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Where("listing_id IN ?", listingIDs).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// Respond pending → responded，写入回复文本和时间戳
func (r *InquiryRepo) Respond(ctx context.Context, id, response string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Inquiry{}).Where("id = ?", id).
		Updates(map[string]any{
			"status":       domain.InquiryStatusResponded,
			"response":     response,
			"responded_at": at,
		}).Error
}
