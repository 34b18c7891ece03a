package domain

import "time"

// WishlistItem 用户收藏（user, listing 二元组唯一）
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_wishlist_pair" json:"userId"`
	ListingID string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_wishlist_pair" json:"listingId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (WishlistItem) TableName() string { return "wishlist_items" }
