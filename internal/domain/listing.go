package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// 房源枚举
const (
	ListingTypeApartment  = "apartment"
	ListingTypeHouse      = "house"
	ListingTypeVilla      = "villa"
	ListingTypeCommercial = "commercial"

	ListingStatusSale = "sale"
	ListingStatusRent = "rent"
)

// DefaultImageURL 未传图片时的占位图
const DefaultImageURL = "https://images.pexels.com/photos/106399/pexels-photo-106399.jpeg?auto=compress&cs=tinysrgb&w=800"

// StringList 以 JSON 文本落库的字符串数组（images/amenities 等）
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported type for StringList")
}

type Listing struct {
	ID          string `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Title       string `gorm:"size:100;not null" json:"title"`
	Type        string `gorm:"size:16;not null;index:idx_listings_facets" json:"type"`
	BHK         string `gorm:"size:1;not null;index" json:"bhk"`
	Bathrooms   int    `gorm:"not null" json:"bathrooms"`
	Area        int    `gorm:"not null" json:"area"`
	Price       int64  `gorm:"not null;index" json:"price"`
	Location    string `gorm:"size:100;not null;index:idx_listings_facets" json:"location"`
	Description string `gorm:"size:1000;not null" json:"description"`
	Status      string `gorm:"size:8;not null;index:idx_listings_facets" json:"status"`

	Images       StringList `gorm:"type:text" json:"images"`
	Amenities    StringList `gorm:"type:text" json:"amenities"`
	Features     StringList `gorm:"type:text" json:"features"`
	NearbyPlaces StringList `gorm:"type:text" json:"nearbyPlaces"`

	// 创建时从下单用户快照，后续不随用户资料变化
	OwnerID    string `gorm:"type:varchar(32);not null;index" json:"ownerId"`
	Owner      *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	OwnerName  string `gorm:"size:50;not null" json:"ownerName"`
	OwnerPhone string `gorm:"size:20;not null" json:"ownerPhone"`
	OwnerEmail string `gorm:"size:191" json:"ownerEmail"`

	IsApproved bool    `gorm:"not null;default:false;index:idx_listings_visible" json:"isApproved"`
	IsActive   bool    `gorm:"not null;default:true;index:idx_listings_visible" json:"isActive"`
	Views      int64   `gorm:"not null;default:0" json:"views"`
	Rating     float64 `gorm:"not null;default:4.8" json:"rating"`

	Latitude  float64 `gorm:"default:19.4617" json:"latitude"`
	Longitude float64 `gorm:"default:72.7869" json:"longitude"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Listing) TableName() string { return "listings" }

// Visible 公开可见 = 已审核且未下架
func (l *Listing) Visible() bool { return l.IsApproved && l.IsActive }

// ListingSearch 公开搜索条件；零值字段不参与过滤
type ListingSearch struct {
	Location  string
	Type      string // "all" 等同于不过滤
	BHK       string // 同上
	Status    string
	MinPrice  int64
	MaxPrice  int64
	Search    string // title/location/description 模糊
	SortBy    string // 默认 createdAt
	SortOrder string // 默认 desc
	Page      int    // 默认 1
	Limit     int    // 默认 12
}
