package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/bookmarks/internal/model"
)

func TestLikeToggleMaintainsCounter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()
	seedUser(t, db, "alice")
	seedImage(t, db, "img1", "alice")

	created, err := repo.Add(ctx, "alice", "img1")
	require.NoError(t, err)
	require.True(t, created)

	// 重复点赞是 no-op，计数不变
	created, err = repo.Add(ctx, "alice", "img1")
	require.NoError(t, err)
	require.False(t, created)

	var img model.Image
	require.NoError(t, db.First(&img, "id = ?", "img1").Error)
	require.EqualValues(t, 1, img.TotalLikes)

	removed, err := repo.Remove(ctx, "alice", "img1")
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = repo.Remove(ctx, "alice", "img1")
	require.NoError(t, err)
	require.False(t, removed)

	require.NoError(t, db.First(&img, "id = ?", "img1").Error)
	require.EqualValues(t, 0, img.TotalLikes)

	// 再点回来，成员资格始终至多一条
	created, err = repo.Add(ctx, "alice", "img1")
	require.NoError(t, err)
	require.True(t, created)
	var cnt int64
	require.NoError(t, db.Model(&model.Like{}).Where("user_id = ? AND image_id = ?", "alice", "img1").Count(&cnt).Error)
	require.EqualValues(t, 1, cnt)
}
