package model

import "time"

// User 用户（资料字段合并到同一张表）
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username string `json:"username" gorm:"type:varchar(150);uniqueIndex;not null"`
	Email    string `json:"-" gorm:"type:varchar(254);uniqueIndex;not null"`
	// Password 仅存 bcrypt 哈希
	Password string `json:"-" gorm:"type:varchar(128);not null"`
	IsActive bool   `json:"-" gorm:"not null;default:true;index"`

	Bio         string     `json:"bio,omitempty" gorm:"type:varchar(500)"`
	Location    string     `json:"location,omitempty" gorm:"type:varchar(30)"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	PhotoURL    string     `json:"photo_url,omitempty" gorm:"type:varchar(2000)"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string { return "users" }
