package repo

import (
	"context"

	"gorm.io/gorm"

	"estate-api/internal/domain"
)

type WishlistRepo struct{ db *gorm.DB }

func NewWishlistRepo(db *gorm.DB) *WishlistRepo { return &WishlistRepo{db: db} }

func (r *WishlistRepo) Has(ctx context.Context, userID, listingID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.WishlistItem{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&n).Error
	return n > 0, err
}

func (r *WishlistRepo) Add(ctx context.Context, userID, listingID string) error {
	err := r.db.WithContext(ctx).Create(&domain.WishlistItem{UserID: userID, ListingID: listingID}).Error
	if err != nil && isDupKey(err) {
		// 并发双击：唯一索引挡住重复收藏，当成已在收藏处理
		return nil
	}
	return err
}

func (r *WishlistRepo) Remove(ctx context.Context, userID, listingID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&domain.WishlistItem{}).Error
}

// Listings 收藏夹展示时过滤掉未审核/下架的房源；底层集合不清理
func (r *WishlistRepo) Listings(ctx context.Context, userID string) ([]domain.Listing, error) {
	var items []domain.Listing
	err := r.db.WithContext(ctx).Model(&domain.Listing{}).
		Joins("JOIN wishlist_items w ON w.listing_id = listings.id").
		Where("w.user_id = ? AND listings.is_approved = ? AND listings.is_active = ?", userID, true, true).
		Order("w.created_at DESC").
		Find(&items).Error
	return items, err
}
