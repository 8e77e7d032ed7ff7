package service

import (
	"context"
	"time"

	"github.com/d60-Lab/bookmarks/internal/model"
	"github.com/d60-Lab/bookmarks/internal/repository"
)

// DefaultDuplicateWindow 默认重复动作抑制窗口
const DefaultDuplicateWindow = 60 * time.Second

// Target is a tagged reference to the entity an action was performed on.
// The zero value means the action has no target.
type Target struct {
	Type string
	ID   string
}

func ImageTarget(id string) Target { return Target{Type: model.TargetImage, ID: id} }
func UserTarget(id string) Target  { return Target{Type: model.TargetUser, ID: id} }

// ActionService 动作日志写入口（只追加）
type ActionService interface {
	// Record appends an action unless an identical (actor, verb, target)
	// action already exists inside the duplicate window. Returns whether
	// a row was written. The window probe and the insert are two separate
	// statements; a same-actor race slipping one duplicate through is
	// tolerated.
	Record(ctx context.Context, actorID, verb string, target Target) (bool, error)
}

type actionService struct {
	actions repository.ActionRepository
	window  time.Duration
	now     func() time.Time
}

func NewActionService(actions repository.ActionRepository, window time.Duration) ActionService {
	if window <= 0 {
		window = DefaultDuplicateWindow
	}
	return &actionService{actions: actions, window: window, now: time.Now}
}

func (s *actionService) Record(ctx context.Context, actorID, verb string, target Target) (bool, error) {
	since := s.now().Add(-s.window)
	cnt, err := s.actions.CountRecentMatching(ctx, actorID, verb, target.Type, target.ID, since)
	if err != nil {
		return false, err
	}
	if cnt > 0 {
		return false, nil
	}
	a := &model.Action{
		ActorID:    actorID,
		Verb:       verb,
		TargetType: target.Type,
		TargetID:   target.ID,
		CreatedAt:  s.now(),
	}
	if err := s.actions.Create(ctx, a); err != nil {
		return false, err
	}
	return true, nil
}
