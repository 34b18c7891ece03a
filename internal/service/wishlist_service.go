package service

import (
	"context"

	"go.uber.org/zap"

	"estate-api/internal/domain"
	"estate-api/internal/repo"
)

type WishlistService struct {
	wishlist *repo.WishlistRepo
	listings *repo.ListingRepo
	log      *zap.Logger
}

func NewWishlistService(wishlist *repo.WishlistRepo, listings *repo.ListingRepo, log *zap.Logger) *WishlistService {
	return &WishlistService{wishlist: wishlist, listings: listings, log: log}
}

// Toggle 在收藏/取消之间翻转，返回翻转后的状态。
// 先测成员再写，唯一索引保证不会出现重复收藏。
func (s *WishlistService) Toggle(ctx context.Context, userID, listingID string) (bool, error) {
	l, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return false, err
	}
	if l == nil {
		return false, domain.ErrNotFound
	}
	if !l.Visible() {
		return false, domain.ErrListingNotAvailable
	}

	has, err := s.wishlist.Has(ctx, userID, listingID)
	if err != nil {
		return false, err
	}
	if has {
		if err := s.wishlist.Remove(ctx, userID, listingID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.wishlist.Add(ctx, userID, listingID); err != nil {
		return false, err
	}
	return true, nil
}

// List 展示时过滤到当前可见的房源；下架房源从视图里消失但不从集合里删除
func (s *WishlistService) List(ctx context.Context, userID string) ([]domain.Listing, error) {
	return s.wishlist.Listings(ctx, userID)
}
