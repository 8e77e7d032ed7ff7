package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/bookmarks/internal/model"
)

type LikeRepository interface {
	// Add inserts the (user, image) pair unless present and bumps
	// images.total_likes in the same transaction. Returns whether the
	// pair was newly inserted.
	Add(ctx context.Context, userID, imageID string) (bool, error)
	// Remove deletes the pair if present and decrements total_likes.
	Remove(ctx context.Context, userID, imageID string) (bool, error)
	Exists(ctx context.Context, userID, imageID string) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

func (r *likeRepository) Add(ctx context.Context, userID, imageID string) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l := &model.Like{ID: uuid.New().String(), UserID: userID, ImageID: imageID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(l)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		created = true
		return tx.Model(&model.Image{}).
			Where("id = ?", imageID).
			UpdateColumn("total_likes", gorm.Expr("total_likes + 1")).Error
	})
	return created, err
}

func (r *likeRepository) Remove(ctx context.Context, userID, imageID string) (bool, error) {
	removed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND image_id = ?", userID, imageID).Delete(&model.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true
		// 计数不为负
		return tx.Model(&model.Image{}).
			Where("id = ? AND total_likes > 0", imageID).
			UpdateColumn("total_likes", gorm.Expr("total_likes - 1")).Error
	})
	return removed, err
}

func (r *likeRepository) Exists(ctx context.Context, userID, imageID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND image_id = ?", userID, imageID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
