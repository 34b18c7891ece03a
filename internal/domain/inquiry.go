package domain

import "time"

const (
	InquiryStatusPending   = "pending"
	InquiryStatusResponded = "responded"
	// closed 目前没有任何接口会写入，保留枚举以兼容存量数据
	InquiryStatusClosed = "closed"
)

type Inquiry struct {
	ID        string   `gorm:"primaryKey;type:varchar(32)" json:"id"`
	ListingID string   `gorm:"type:varchar(32);not null;index" json:"listingId"`
	Listing   *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`

	Name  string `gorm:"size:50;not null" json:"name"`
	Email string `gorm:"size:191;not null" json:"email"`
	Phone string `gorm:"size:20;not null" json:"phone"`

	Message     string     `gorm:"size:1000;not null" json:"message"`
	Status      string     `gorm:"size:16;not null;default:pending;index" json:"status"`
	Response    string     `gorm:"size:1000" json:"response,omitempty"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Inquiry) TableName() string { return "inquiries" }
