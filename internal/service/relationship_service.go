package service

import (
	"context"
	"errors"

	"github.com/d60-Lab/bookmarks/internal/repository"
)

var (
	ErrFollowSelf = errors.New("cannot follow self")
)

// Verbs written to the action log by the social services.
const (
	VerbStartedFollowing = "started following"
	VerbCreatedAccount   = "has created an account"
	VerbBookmarkedImage  = "bookmarked image"
	VerbLiked            = "liked"
)

// RelationshipService 关系链服务
type RelationshipService interface {
	// Follow creates the edge. Idempotent: created reports whether the
	// edge is new; following an already-followed user is not an error.
	Follow(ctx context.Context, fromUserID, toUserID string) (created bool, err error)
	// Unfollow removes the edge. Removing a missing edge is not an error.
	Unfollow(ctx context.Context, fromUserID, toUserID string) (removed bool, err error)
	IsFollowing(ctx context.Context, fromUserID, toUserID string) (bool, error)
	ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]string, error)
	ListFollowers(ctx context.Context, userID string, page, pageSize int) ([]string, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	actions    ActionService
}

func NewRelationshipService(followRepo repository.FollowRepository, userRepo repository.UserRepository, actions ActionService) RelationshipService {
	return &relationshipService{followRepo: followRepo, userRepo: userRepo, actions: actions}
}

func (s *relationshipService) Follow(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	if fromUserID == toUserID {
		return false, ErrFollowSelf
	}
	if _, err := s.userRepo.GetByID(ctx, toUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	created, err := s.followRepo.CreateIfAbsent(ctx, fromUserID, toUserID)
	if err != nil {
		return false, err
	}
	if created {
		// 仅在新建边时记录动作，重复关注不产生 feed 噪音
		if _, err := s.actions.Record(ctx, fromUserID, VerbStartedFollowing, UserTarget(toUserID)); err != nil {
			return true, err
		}
	}
	return created, nil
}

func (s *relationshipService) Unfollow(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	return s.followRepo.Delete(ctx, fromUserID, toUserID)
}

func (s *relationshipService) IsFollowing(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	return s.followRepo.Exists(ctx, fromUserID, toUserID)
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]string, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize
	items, err := s.followRepo.ListFollowing(ctx, userID, offset, pageSize)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(items))
	for i, it := range items {
		res[i] = it.FolloweeID
	}
	return res, nil
}

func (s *relationshipService) ListFollowers(ctx context.Context, userID string, page, pageSize int) ([]string, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize
	items, err := s.followRepo.ListFollowers(ctx, userID, offset, pageSize)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(items))
	for i, it := range items {
		res[i] = it.FollowerID
	}
	return res, nil
}
