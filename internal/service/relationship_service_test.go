package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/bookmarks/internal/model"
	"github.com/d60-Lab/bookmarks/internal/repository"
)

func newRelService(t *testing.T, db *gorm.DB) RelationshipService {
	t.Helper()
	return NewRelationshipService(
		repository.NewFollowRepository(db),
		repository.NewUserRepository(db),
		NewActionService(repository.NewActionRepository(db), 0),
	)
}

func TestFollowSelfRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelService(t, db)
	seedUser(t, db, "alice")

	_, err := svc.Follow(context.Background(), "alice", "alice")
	require.ErrorIs(t, err, ErrFollowSelf)
}

func TestFollowIsIdempotentAndRecordsActionOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelService(t, db)
	ctx := context.Background()
	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	created, err := svc.Follow(ctx, "alice", "bob")
	require.NoError(t, err)
	require.True(t, created)

	created, err = svc.Follow(ctx, "alice", "bob")
	require.NoError(t, err)
	require.False(t, created)

	var edges int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&edges).Error)
	require.EqualValues(t, 1, edges)

	// 只有新建边才记录动作
	var acts int64
	require.NoError(t, db.Model(&model.Action{}).
		Where("verb = ?", VerbStartedFollowing).Count(&acts).Error)
	require.EqualValues(t, 1, acts)
}

func TestFollowUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelService(t, db)
	seedUser(t, db, "alice")

	_, err := svc.Follow(context.Background(), "alice", "ghost")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestFollowInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelService(t, db)
	seedUser(t, db, "alice")
	u := seedUser(t, db, "bob")
	require.NoError(t, db.Model(u).Update("is_active", false).Error)

	_, err := svc.Follow(context.Background(), "alice", "bob")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUnfollowMissingEdgeIsSafe(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelService(t, db)
	ctx := context.Background()
	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	removed, err := svc.Unfollow(ctx, "alice", "bob")
	require.NoError(t, err)
	require.False(t, removed)

	_, err = svc.Follow(ctx, "alice", "bob")
	require.NoError(t, err)

	removed, err = svc.Unfollow(ctx, "alice", "bob")
	require.NoError(t, err)
	require.True(t, removed)

	ok, err := svc.IsFollowing(ctx, "alice", "bob")
	require.NoError(t, err)
	require.False(t, ok)
}
