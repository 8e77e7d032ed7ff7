package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/bookmarks/internal/model"
	"github.com/d60-Lab/bookmarks/internal/repository"
	"github.com/d60-Lab/bookmarks/pkg/logger"
)

const (
	rankingKey          = "image_ranking"
	defaultCacheTimeout = 150 * time.Millisecond
)

func viewKey(imageID string) string { return fmt.Sprintf("image:%s:views", imageID) }

// RankingService 浏览计数与热度排行（redis 尽力而为，不是点赞数的事实来源）
// Every cache call runs under a bounded timeout and degrades to an empty /
// zero result on failure; cache trouble never fails the calling page.
type RankingService struct {
	cache   *redis.Client
	images  repository.ImageRepository
	timeout time.Duration
}

func NewRankingService(cache *redis.Client, images repository.ImageRepository, timeout time.Duration) *RankingService {
	if timeout <= 0 {
		timeout = defaultCacheTimeout
	}
	return &RankingService{cache: cache, images: images, timeout: timeout}
}

// RecordView bumps the per-image view counter and its global ranking score
// in one pipeline round trip. Both increments are always issued together;
// if the pipeline fails midway the counters may diverge transiently, which
// is accepted for a best-effort popularity signal. Returns the new view
// total, or 0 when the cache is unreachable.
func (s *RankingService) RecordView(ctx context.Context, imageID string) int64 {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var incr *redis.IntCmd
	_, err := s.cache.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, viewKey(imageID))
		pipe.ZIncrBy(ctx, rankingKey, 1, imageID)
		return nil
	})
	if err != nil {
		logger.Warn("ranking cache unavailable, view not recorded",
			zap.String("image_id", imageID), zap.Error(err))
		return 0
	}
	return incr.Val()
}

// Views reads the current view counter without incrementing it.
func (s *RankingService) Views(ctx context.Context, imageID string) int64 {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.cache.Get(ctx, viewKey(imageID)).Int64()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("ranking cache unavailable, views read skipped",
				zap.String("image_id", imageID), zap.Error(err))
		}
		return 0
	}
	return n
}

// TopRanked returns up to count image ids, highest score first. An empty
// ranking or an unreachable cache yields an empty slice, never an error.
func (s *RankingService) TopRanked(ctx context.Context, count int) []string {
	if count <= 0 {
		count = 10
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ids, err := s.cache.ZRevRange(ctx, rankingKey, 0, int64(count-1)).Result()
	if err != nil {
		logger.Warn("ranking cache unavailable, returning empty ranking", zap.Error(err))
		return []string{}
	}
	return ids
}

// MostViewedImages resolves the top-ranked ids against the store. The batch
// fetch does not preserve input order, so rows are re-sorted to match the
// cache-supplied ranking. Ids whose rows no longer exist are skipped.
func (s *RankingService) MostViewedImages(ctx context.Context, count int) ([]*model.Image, error) {
	ids := s.TopRanked(ctx, count)
	if len(ids) == 0 {
		return []*model.Image{}, nil
	}
	rows, err := s.images.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Image, len(rows))
	for _, img := range rows {
		byID[img.ID] = img
	}
	res := make([]*model.Image, 0, len(ids))
	for _, id := range ids {
		if img, ok := byID[id]; ok {
			res = append(res, img)
		}
	}
	return res, nil
}
