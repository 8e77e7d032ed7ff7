package model

import "time"

// Image 图片书签（只存来源 URL，不负责文件存储）
type Image struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string `json:"user_id" gorm:"type:varchar(36);not null;index:idx_image_user_created"`
	Title       string `json:"title" gorm:"type:varchar(256);not null"`
	Slug        string `json:"slug" gorm:"type:varchar(256);index"`
	URL         string `json:"url" gorm:"type:varchar(2000);not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	// TotalLikes 与 likes 表同事务维护；浏览数只存 redis
	TotalLikes int64 `json:"total_likes" gorm:"not null;default:0;index"`

	CreatedAt time.Time `json:"created_at" gorm:"index;index:idx_image_user_created"`
	UpdatedAt time.Time `json:"-"`
}

func (Image) TableName() string { return "images" }
