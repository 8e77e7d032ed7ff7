package model

import "time"

// Like 点赞关系（user, image 对唯一）
type Like struct {
	ID      string `gorm:"primaryKey;type:varchar(36)"`
	UserID  string `gorm:"type:varchar(36);not null;index:idx_like_pair,unique"`
	ImageID string `gorm:"type:varchar(36);not null;index:idx_like_pair,unique;index:idx_like_image"`

	CreatedAt time.Time
}

func (Like) TableName() string { return "likes" }
