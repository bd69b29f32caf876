package commentapp_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"chirp/internal/adapters/database"
	"chirp/internal/core/apperr"
	commentapp "chirp/internal/core/comment/service"
	"chirp/internal/core/tweet"
	"chirp/internal/core/user"
	"chirp/internal/metrics"
	"chirp/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc                      *commentapp.CommentService
	db                       *gorm.DB
	owner, author, bystander *user.User
	tweet                    *tweet.Tweet
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	f := &fixture{
		svc: commentapp.NewCommentService(
			database.NewCommentRepositoryDatabase(db),
			database.NewTweetRepositoryDatabase(db),
			metrics.Nop{},
			zap.NewNop(),
		),
		db:        db,
		owner:     testutil.CreateUser(t, db, "owner", user.RoleUser),
		author:    testutil.CreateUser(t, db, "author", user.RoleUser),
		bystander: testutil.CreateUser(t, db, "bystander", user.RoleUser),
	}
	f.tweet = testutil.CreateTweet(t, db, f.owner, "parent", time.Now())
	return f
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.svc.AddComment(ctx, f.tweet.ID.String(), "first!", f.author.Principal())
	require.NoError(t, err)

	got, err := f.svc.GetComment(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "first!", got.Content)
	assert.Equal(t, f.author.ID.String(), got.UserID)

	_, err = f.svc.AddComment(ctx, f.tweet.ID.String(), strings.Repeat("c", 281), f.author.Principal())
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = f.svc.AddComment(ctx, "no-such-tweet", "hi", f.author.Principal())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateComment_AuthorOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c, err := f.svc.AddComment(ctx, f.tweet.ID.String(), "draft", f.author.Principal())
	require.NoError(t, err)

	_, err = f.svc.UpdateComment(ctx, c.ID, "owner edit", f.owner.Principal())
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	admin := testutil.CreateUser(t, f.db, "admin", user.RoleAdmin)
	_, err = f.svc.UpdateComment(ctx, c.ID, "admin edit", admin.Principal())
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	updated, err := f.svc.UpdateComment(ctx, c.ID, "final", f.author.Principal())
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)
}

func TestDeleteComment_AuthorOrTweetOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	byAuthor, err := f.svc.AddComment(ctx, f.tweet.ID.String(), "one", f.author.Principal())
	require.NoError(t, err)
	byOwner, err := f.svc.AddComment(ctx, f.tweet.ID.String(), "two", f.author.Principal())
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeleteComment(ctx, byAuthor.ID, f.bystander.Principal()), apperr.ErrUnauthorized)

	require.NoError(t, f.svc.DeleteComment(ctx, byAuthor.ID, f.author.Principal()))
	require.NoError(t, f.svc.DeleteComment(ctx, byOwner.ID, f.owner.Principal()))

	_, err = f.svc.GetComment(ctx, byAuthor.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	list, err := f.svc.ListCommentsByTweet(ctx, f.tweet.ID.String())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestComments_HiddenWithInactiveTweet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c, err := f.svc.AddComment(ctx, f.tweet.ID.String(), "orphan soon", f.author.Principal())
	require.NoError(t, err)

	require.NoError(t, database.NewTweetRepositoryDatabase(f.db).Deactivate(ctx, f.tweet.ID.String()))

	_, err = f.svc.GetComment(ctx, c.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = f.svc.ListCommentsByTweet(ctx, f.tweet.ID.String())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
