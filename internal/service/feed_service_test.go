package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/bookmarks/internal/model"
	"github.com/d60-Lab/bookmarks/internal/repository"
)

func newFeedService(db *gorm.DB) FeedService {
	return NewFeedService(
		repository.NewFollowRepository(db),
		repository.NewActionRepository(db),
		repository.NewImageRepository(db),
		repository.NewUserRepository(db),
	)
}

func seedAction(t *testing.T, db *gorm.DB, actorID, verb string, target Target, at time.Time) {
	t.Helper()
	a := &model.Action{ActorID: actorID, Verb: verb, TargetType: target.Type, TargetID: target.ID, CreatedAt: at}
	require.NoError(t, db.Create(a).Error)
}

func TestFeedExcludesViewerAndScopesToFollowed(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeedService(db)
	ctx := context.Background()
	seedUser(t, db, "viewer")
	seedUser(t, db, "followed")
	seedUser(t, db, "stranger")

	followRepo := repository.NewFollowRepository(db)
	_, err := followRepo.CreateIfAbsent(ctx, "viewer", "followed")
	require.NoError(t, err)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedAction(t, db, "viewer", "liked", Target{}, base)
	seedAction(t, db, "followed", "bookmarked image", Target{}, base.Add(time.Second))
	seedAction(t, db, "stranger", "liked", Target{}, base.Add(2*time.Second))

	page, err := svc.Feed(ctx, "viewer", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "followed", page.Items[0].ActorID)
}

func TestFeedFallsBackToEveryoneWhenFollowingNoOne(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeedService(db)
	ctx := context.Background()
	seedUser(t, db, "viewer")
	seedUser(t, db, "a")
	seedUser(t, db, "b")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedAction(t, db, "viewer", "liked", Target{}, base)
	seedAction(t, db, "a", "liked", Target{}, base.Add(time.Second))
	seedAction(t, db, "b", "liked", Target{}, base.Add(2*time.Second))

	// 未关注任何人：展示全站其他用户的动作，但永远不含自己的
	page, err := svc.Feed(ctx, "viewer", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	for _, a := range page.Items {
		require.NotEqual(t, "viewer", a.ActorID)
	}
}

func TestFeedOrderingNewestFirstWithStableTiebreak(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeedService(db)
	ctx := context.Background()
	seedUser(t, db, "viewer")
	seedUser(t, db, "a")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedAction(t, db, "a", "first", Target{}, base)
	seedAction(t, db, "a", "second", Target{}, base.Add(time.Minute))
	// 两条时间相同，按插入顺序
	seedAction(t, db, "a", "tie-early", Target{}, base.Add(2*time.Minute))
	seedAction(t, db, "a", "tie-late", Target{}, base.Add(2*time.Minute))

	page, err := svc.Feed(ctx, "viewer", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 4)
	require.Equal(t, "tie-early", page.Items[0].Verb)
	require.Equal(t, "tie-late", page.Items[1].Verb)
	require.Equal(t, "second", page.Items[2].Verb)
	require.Equal(t, "first", page.Items[3].Verb)
	for i := 1; i < len(page.Items); i++ {
		require.False(t, page.Items[i].CreatedAt.After(page.Items[i-1].CreatedAt))
	}
}

func TestFeedPaginationBounds(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeedService(db)
	ctx := context.Background()
	seedUser(t, db, "viewer")
	seedUser(t, db, "a")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		seedAction(t, db, "a", "liked", Target{}, base.Add(time.Duration(i)*time.Second))
	}

	// 页码 0 回落到第 1 页
	page, err := svc.Feed(ctx, "viewer", 0, 10)
	require.NoError(t, err)
	require.Equal(t, 1, page.Page)
	require.Len(t, page.Items, 10)
	require.False(t, page.IsLastPage)

	page, err = svc.Feed(ctx, "viewer", 2, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	require.True(t, page.IsLastPage)

	// 超出末页返回空页而不是错误
	page, err = svc.Feed(ctx, "viewer", 99, 10)
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.True(t, page.IsLastPage)
}

func TestFeedResolvesTargetsBatched(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeedService(db)
	ctx := context.Background()
	seedUser(t, db, "viewer")
	seedUser(t, db, "a")
	bob := seedUser(t, db, "bob")
	img := seedImage(t, db, "img1", "a")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedAction(t, db, "a", "liked", ImageTarget(img.ID), base)
	seedAction(t, db, "a", "started following", UserTarget(bob.ID), base.Add(time.Second))
	// 目标已消失的动作：Target 保持 nil
	seedAction(t, db, "a", "liked", ImageTarget("gone"), base.Add(2*time.Second))

	page, err := svc.Feed(ctx, "viewer", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	require.Nil(t, page.Items[0].Target)

	u, ok := page.Items[1].Target.(*model.User)
	require.True(t, ok)
	require.Equal(t, "bob", u.ID)

	got, ok := page.Items[2].Target.(*model.Image)
	require.True(t, ok)
	require.Equal(t, img.ID, got.ID)
}
