package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/bookmarks/internal/model"
)

// ActionRepository 只追加的动作日志，不提供更新/删除
type ActionRepository interface {
	Create(ctx context.Context, a *model.Action) error
	// CountRecentMatching counts identical (actor, verb, target) actions
	// created at or after since. Empty targetType matches only targetless rows.
	CountRecentMatching(ctx context.Context, actorID, verb, targetType, targetID string, since time.Time) (int64, error)
	// ListFeed returns actions excluding the viewer's own, newest first.
	// A non-empty actorIDs restricts the result to those actors.
	ListFeed(ctx context.Context, viewerID string, actorIDs []string, offset, limit int) ([]*model.Action, int64, error)
	ListByActor(ctx context.Context, actorID string, offset, limit int) ([]*model.Action, error)
}

type actionRepository struct {
	db *gorm.DB
}

func NewActionRepository(db *gorm.DB) ActionRepository { return &actionRepository{db: db} }

func (r *actionRepository) Create(ctx context.Context, a *model.Action) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *actionRepository) CountRecentMatching(ctx context.Context, actorID, verb, targetType, targetID string, since time.Time) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Action{}).
		Where("actor_id = ? AND verb = ? AND created_at >= ?", actorID, verb, since)
	if targetType == model.TargetNone {
		q = q.Where("target_type = ''")
	} else {
		q = q.Where("target_type = ? AND target_id = ?", targetType, targetID)
	}
	var cnt int64
	err := q.Count(&cnt).Error
	return cnt, err
}

func (r *actionRepository) ListFeed(ctx context.Context, viewerID string, actorIDs []string, offset, limit int) ([]*model.Action, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Action{}).Where("actor_id <> ?", viewerID)
	if len(actorIDs) > 0 {
		q = q.Where("actor_id IN ?", actorIDs)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var res []*model.Action
	// created_at 相同按 id 升序，保持插入顺序稳定
	err := q.Order("created_at DESC, id ASC").Offset(offset).Limit(limit).Find(&res).Error
	return res, total, err
}

func (r *actionRepository) ListByActor(ctx context.Context, actorID string, offset, limit int) ([]*model.Action, error) {
	var res []*model.Action
	err := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("created_at DESC, id ASC").
		Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}
