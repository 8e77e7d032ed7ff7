package service

import (
	"context"

	"github.com/d60-Lab/bookmarks/internal/model"
	"github.com/d60-Lab/bookmarks/internal/repository"
)

const DefaultFeedPageSize = 10

// FeedPage 动态分页结果
type FeedPage struct {
	Items      []*model.Action `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	IsLastPage bool            `json:"is_last_page"`
}

// FeedService 聚合关注图与动作日志生成个人动态流
type FeedService interface {
	// Feed returns the viewer's dashboard page. The viewer's own actions
	// are always excluded. When the viewer follows anyone the feed is
	// restricted to followed actors; when they follow no one it shows all
	// other users' actions instead of an empty page (discovery behavior
	// for fresh accounts, intentional).
	Feed(ctx context.Context, viewerID string, page, pageSize int) (*FeedPage, error)
}

type feedService struct {
	followRepo repository.FollowRepository
	actionRepo repository.ActionRepository
	imageRepo  repository.ImageRepository
	userRepo   repository.UserRepository
}

func NewFeedService(followRepo repository.FollowRepository, actionRepo repository.ActionRepository, imageRepo repository.ImageRepository, userRepo repository.UserRepository) FeedService {
	return &feedService{followRepo: followRepo, actionRepo: actionRepo, imageRepo: imageRepo, userRepo: userRepo}
}

func (s *feedService) Feed(ctx context.Context, viewerID string, page, pageSize int) (*FeedPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultFeedPageSize
	}
	followingIDs, err := s.followRepo.ListFollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	offset := (page - 1) * pageSize
	items, total, err := s.actionRepo.ListFeed(ctx, viewerID, followingIDs, offset, pageSize)
	if err != nil {
		return nil, err
	}
	if err := s.resolveTargets(ctx, items); err != nil {
		return nil, err
	}
	return &FeedPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		IsLastPage: int64(offset+len(items)) >= total,
	}, nil
}

// resolveTargets loads action targets with one batched fetch per target
// type and re-attaches them by id (avoids a lookup per row).
func (s *feedService) resolveTargets(ctx context.Context, items []*model.Action) error {
	var imageIDs, userIDs []string
	for _, a := range items {
		switch a.TargetType {
		case model.TargetImage:
			imageIDs = append(imageIDs, a.TargetID)
		case model.TargetUser:
			userIDs = append(userIDs, a.TargetID)
		}
	}

	images := make(map[string]*model.Image, len(imageIDs))
	if len(imageIDs) > 0 {
		rows, err := s.imageRepo.ListByIDs(ctx, imageIDs)
		if err != nil {
			return err
		}
		for _, img := range rows {
			images[img.ID] = img
		}
	}
	users := make(map[string]*model.User, len(userIDs))
	if len(userIDs) > 0 {
		rows, err := s.userRepo.ListByIDs(ctx, userIDs)
		if err != nil {
			return err
		}
		for _, u := range rows {
			users[u.ID] = u
		}
	}

	for _, a := range items {
		switch a.TargetType {
		case model.TargetImage:
			if img, ok := images[a.TargetID]; ok {
				a.Target = img
			}
		case model.TargetUser:
			if u, ok := users[a.TargetID]; ok {
				a.Target = u
			}
		}
		// 目标已被删除时 Target 保持 nil，不视为错误
	}
	return nil
}
