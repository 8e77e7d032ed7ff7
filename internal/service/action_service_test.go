package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/bookmarks/internal/model"
	"github.com/d60-Lab/bookmarks/internal/repository"
)

func TestRecordSuppressesDuplicatesInsideWindow(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewActionRepository(db)
	ctx := context.Background()
	seedUser(t, db, "alice")
	seedImage(t, db, "img1", "alice")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	svc := &actionService{actions: repo, window: 60 * time.Second, now: func() time.Time { return now }}

	// t=0 写入
	created, err := svc.Record(ctx, "alice", "liked", ImageTarget("img1"))
	require.NoError(t, err)
	require.True(t, created)

	// t=30s 窗口内抑制
	now = base.Add(30 * time.Second)
	created, err = svc.Record(ctx, "alice", "liked", ImageTarget("img1"))
	require.NoError(t, err)
	require.False(t, created)

	// t=61s 窗口外再次写入
	now = base.Add(61 * time.Second)
	created, err = svc.Record(ctx, "alice", "liked", ImageTarget("img1"))
	require.NoError(t, err)
	require.True(t, created)

	var cnt int64
	require.NoError(t, db.Model(&model.Action{}).Count(&cnt).Error)
	require.EqualValues(t, 2, cnt)
}

func TestRecordDedupKeyIncludesTarget(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewActionRepository(db)
	ctx := context.Background()
	seedUser(t, db, "alice")
	seedImage(t, db, "img1", "alice")
	seedImage(t, db, "img2", "alice")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := &actionService{actions: repo, window: 60 * time.Second, now: func() time.Time { return base }}

	created, err := svc.Record(ctx, "alice", "liked", ImageTarget("img1"))
	require.NoError(t, err)
	require.True(t, created)

	// 不同目标不算重复
	created, err = svc.Record(ctx, "alice", "liked", ImageTarget("img2"))
	require.NoError(t, err)
	require.True(t, created)

	// 不同动词不算重复
	created, err = svc.Record(ctx, "alice", "bookmarked image", ImageTarget("img1"))
	require.NoError(t, err)
	require.True(t, created)

	// 不同 actor 不算重复
	seedUser(t, db, "bob")
	created, err = svc.Record(ctx, "bob", "liked", ImageTarget("img1"))
	require.NoError(t, err)
	require.True(t, created)
}

func TestRecordTargetlessMatchesOnlyTargetless(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewActionRepository(db)
	ctx := context.Background()
	seedUser(t, db, "alice")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := &actionService{actions: repo, window: 60 * time.Second, now: func() time.Time { return base }}

	created, err := svc.Record(ctx, "alice", "has created an account", Target{})
	require.NoError(t, err)
	require.True(t, created)

	// 无目标动作只和无目标动作互相抑制
	created, err = svc.Record(ctx, "alice", "has created an account", UserTarget("bob"))
	require.NoError(t, err)
	require.True(t, created)

	created, err = svc.Record(ctx, "alice", "has created an account", Target{})
	require.NoError(t, err)
	require.False(t, created)
}
