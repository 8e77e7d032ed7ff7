package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/d60-Lab/bookmarks/internal/model"
	"github.com/d60-Lab/bookmarks/internal/repository"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidImageURL = errors.New("url does not match a valid image extension")
	ErrImageNotFound   = errors.New("image not found")
)

var validImageExtensions = []string{"jpg", "jpeg", "png"}

// ImagePage 图片列表分页结果
type ImagePage struct {
	Items      []*model.Image `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	IsLastPage bool           `json:"is_last_page"`
}

// ImageService 图片书签服务
type ImageService interface {
	// Create bookmarks an image found on the web and records the
	// "bookmarked image" action.
	Create(ctx context.Context, userID, title, url, description string) (*model.Image, error)
	// GetDetail loads the image, enqueues a fire-and-forget view event
	// and returns the current view total (0 when the cache is down).
	GetDetail(ctx context.Context, id string) (*model.Image, int64, error)
	// Like adds the user to the image's likers. Idempotent; records the
	// "liked" action only on a fresh like.
	Like(ctx context.Context, userID, imageID string) (liked bool, err error)
	// Unlike removes the user from the likers. Removing an absent like
	// is a no-op.
	Unlike(ctx context.Context, userID, imageID string) (removed bool, err error)
	IsLikedBy(ctx context.Context, userID, imageID string) (bool, error)
	ListRecent(ctx context.Context, page, pageSize int) (*ImagePage, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*model.Image, error)
	ListLikedBy(ctx context.Context, userID string, page, pageSize int) ([]*model.Image, error)
}

type imageService struct {
	imageRepo repository.ImageRepository
	likeRepo  repository.LikeRepository
	actions   ActionService
	ranking   *RankingService
	recorder  *ViewRecorder
}

func NewImageService(imageRepo repository.ImageRepository, likeRepo repository.LikeRepository, actions ActionService, ranking *RankingService, recorder *ViewRecorder) ImageService {
	return &imageService{imageRepo: imageRepo, likeRepo: likeRepo, actions: actions, ranking: ranking, recorder: recorder}
}

// ValidImageURL reports whether the URL ends in a supported image extension.
func ValidImageURL(url string) bool {
	idx := strings.LastIndex(url, ".")
	if idx < 0 || idx == len(url)-1 {
		return false
	}
	ext := strings.ToLower(url[idx+1:])
	for _, v := range validImageExtensions {
		if ext == v {
			return true
		}
	}
	return false
}

// Slugify lowers the title and collapses non-alphanumerics into hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func (s *imageService) Create(ctx context.Context, userID, title, url, description string) (*model.Image, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !ValidImageURL(url) {
		return nil, ErrInvalidImageURL
	}
	img := &model.Image{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Slug:        Slugify(title),
		URL:         url,
		Description: description,
	}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		return nil, err
	}
	if _, err := s.actions.Record(ctx, userID, VerbBookmarkedImage, ImageTarget(img.ID)); err != nil {
		return img, err
	}
	return img, nil
}

func (s *imageService) GetDetail(ctx context.Context, id string) (*model.Image, int64, error) {
	img, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, ErrImageNotFound
		}
		return nil, 0, err
	}
	s.recorder.Enqueue(id)
	return img, s.ranking.Views(ctx, id), nil
}

func (s *imageService) Like(ctx context.Context, userID, imageID string) (bool, error) {
	if _, err := s.imageRepo.GetByID(ctx, imageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrImageNotFound
		}
		return false, err
	}
	created, err := s.likeRepo.Add(ctx, userID, imageID)
	if err != nil {
		return false, err
	}
	if created {
		if _, err := s.actions.Record(ctx, userID, VerbLiked, ImageTarget(imageID)); err != nil {
			return true, err
		}
	}
	return created, nil
}

func (s *imageService) Unlike(ctx context.Context, userID, imageID string) (bool, error) {
	if _, err := s.imageRepo.GetByID(ctx, imageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrImageNotFound
		}
		return false, err
	}
	return s.likeRepo.Remove(ctx, userID, imageID)
}

func (s *imageService) IsLikedBy(ctx context.Context, userID, imageID string) (bool, error) {
	return s.likeRepo.Exists(ctx, userID, imageID)
}

func (s *imageService) ListRecent(ctx context.Context, page, pageSize int) (*ImagePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 8
	}
	offset := (page - 1) * pageSize
	items, total, err := s.imageRepo.ListRecent(ctx, offset, pageSize)
	if err != nil {
		return nil, err
	}
	return &ImagePage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		IsLastPage: int64(offset+len(items)) >= total,
	}, nil
}

func (s *imageService) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*model.Image, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 8
	}
	return s.imageRepo.ListByUser(ctx, userID, (page-1)*pageSize, pageSize)
}

func (s *imageService) ListLikedBy(ctx context.Context, userID string, page, pageSize int) ([]*model.Image, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 8
	}
	return s.imageRepo.ListLikedBy(ctx, userID, (page-1)*pageSize, pageSize)
}
