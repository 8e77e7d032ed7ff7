package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/bookmarks/internal/model"
)

func TestFollowCreateIfAbsentIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()
	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	created, err := repo.CreateIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)
	require.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)
	require.False(t, created)

	var cnt int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&cnt).Error)
	require.EqualValues(t, 1, cnt)
}

func TestFollowDeleteMissingEdge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	removed, err := repo.Delete(ctx, "alice", "bob")
	require.NoError(t, err)
	require.False(t, removed)
}

func TestFollowExistsAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()
	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	_, err := repo.CreateIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)

	ok, err := repo.Exists(ctx, "alice", "bob")
	require.NoError(t, err)
	require.True(t, ok)

	// 方向性：反向边不存在
	ok, err = repo.Exists(ctx, "bob", "alice")
	require.NoError(t, err)
	require.False(t, ok)

	removed, err := repo.Delete(ctx, "alice", "bob")
	require.NoError(t, err)
	require.True(t, removed)

	ok, err = repo.Exists(ctx, "alice", "bob")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestListFollowingIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()
	seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	seedUser(t, db, "carol")

	_, err := repo.CreateIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = repo.CreateIfAbsent(ctx, "alice", "carol")
	require.NoError(t, err)

	ids, err := repo.ListFollowingIDs(ctx, "alice")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"bob", "carol"}, ids)

	ids, err = repo.ListFollowingIDs(ctx, "bob")
	require.NoError(t, err)
	require.Empty(t, ids)
}
