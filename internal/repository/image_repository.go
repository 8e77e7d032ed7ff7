package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/bookmarks/internal/model"
)

type ImageRepository interface {
	Create(ctx context.Context, img *model.Image) error
	GetByID(ctx context.Context, id string) (*model.Image, error)
	ListRecent(ctx context.Context, offset, limit int) ([]*model.Image, int64, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Image, error)
	// ListByIDs batch-loads rows; the result order is unspecified.
	ListByIDs(ctx context.Context, ids []string) ([]*model.Image, error)
	ListLikedBy(ctx context.Context, userID string, offset, limit int) ([]*model.Image, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository { return &imageRepository{db: db} }

func (r *imageRepository) Create(ctx context.Context, img *model.Image) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *imageRepository) GetByID(ctx context.Context, id string) (*model.Image, error) {
	var img model.Image
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *imageRepository) ListRecent(ctx context.Context, offset, limit int) ([]*model.Image, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Image{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var res []*model.Image
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&res).Error
	return res, total, err
}

func (r *imageRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Image, error) {
	var res []*model.Image
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (r *imageRepository) ListByIDs(ctx context.Context, ids []string) ([]*model.Image, error) {
	if len(ids) == 0 {
		return []*model.Image{}, nil
	}
	var res []*model.Image
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&res).Error
	return res, err
}

func (r *imageRepository) ListLikedBy(ctx context.Context, userID string, offset, limit int) ([]*model.Image, error) {
	var res []*model.Image
	err := r.db.WithContext(ctx).
		Joins("JOIN likes ON likes.image_id = images.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (r *imageRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Image{}).Where("user_id = ?", userID).Count(&cnt).Error
	return cnt, err
}
