package tweetapp_test

import (
	"context"
	"strings"
	"testing"

	"chirp/internal/adapters/database"
	"chirp/internal/core/apperr"
	tweetapp "chirp/internal/core/tweet/service"
	"chirp/internal/core/user"
	"chirp/internal/metrics"
	"chirp/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*tweetapp.TweetService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	svc := tweetapp.NewTweetService(
		database.NewTweetRepositoryDatabase(db),
		database.NewFanoutRepositoryDatabase(db),
		nil,
		metrics.Nop{},
		zap.NewNop(),
	)
	return svc, db
}

func TestCreateTweet_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	alice := testutil.CreateUser(t, db, "alice", user.RoleUser)

	created, err := svc.CreateTweet(ctx, "hello world", alice.Principal())
	require.NoError(t, err)

	got, err := svc.GetTweet(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got.Content)
	assert.Equal(t, alice.ID.String(), got.UserID)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestCreateTweet_ContentBounds(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	alice := testutil.CreateUser(t, db, "alice", user.RoleUser)

	_, err := svc.CreateTweet(ctx, strings.Repeat("x", 280), alice.Principal())
	assert.NoError(t, err)

	_, err = svc.CreateTweet(ctx, strings.Repeat("x", 281), alice.Principal())
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreateTweet(ctx, " \n\t ", alice.Principal())
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreateTweet(ctx, "hi", user.Principal{})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestUpdateTweet_Authorization(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	alice := testutil.CreateUser(t, db, "alice", user.RoleUser)
	bob := testutil.CreateUser(t, db, "bob", user.RoleUser)
	admin := testutil.CreateUser(t, db, "root", user.RoleAdmin)

	tw, err := svc.CreateTweet(ctx, "original", alice.Principal())
	require.NoError(t, err)

	_, err = svc.UpdateTweet(ctx, tw.ID, "by bob", bob.Principal())
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	got, err := svc.GetTweet(ctx, tw.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Content)

	updated, err := svc.UpdateTweet(ctx, tw.ID, "by admin", admin.Principal())
	require.NoError(t, err)
	assert.Equal(t, "by admin", updated.Content)
	assert.True(t, tw.CreatedAt.Equal(updated.CreatedAt))

	_, err = svc.UpdateTweet(ctx, tw.ID, strings.Repeat("y", 281), alice.Principal())
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDeleteTweet(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	alice := testutil.CreateUser(t, db, "alice", user.RoleUser)
	bob := testutil.CreateUser(t, db, "bob", user.RoleUser)

	tw, err := svc.CreateTweet(ctx, "short lived", alice.Principal())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteTweet(ctx, tw.ID, bob.Principal()), apperr.ErrUnauthorized)
	require.NoError(t, svc.DeleteTweet(ctx, tw.ID, alice.Principal()))

	_, err = svc.GetTweet(ctx, tw.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = svc.GetTweetStats(ctx, tw.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteTweet(ctx, tw.ID, alice.Principal()), apperr.ErrNotFound)

	list, err := svc.ListTweetsByUser(ctx, alice.ID.String())
	require.NoError(t, err)
	assert.Empty(t, list)
}
