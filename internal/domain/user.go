package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Name         string    `gorm:"size:50;not null" json:"name"`
	Phone        string    `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	Email        string    `gorm:"size:191" json:"email,omitempty"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:user" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
	ProfileImage string    `gorm:"size:255" json:"profileImage,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
