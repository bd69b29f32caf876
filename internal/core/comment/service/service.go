package commentapp

import (
	"context"
	"errors"
	"time"

	"chirp/internal/core/apperr"
	commentEntity "chirp/internal/core/comment"
	"chirp/internal/core/content"
	tweetEntity "chirp/internal/core/tweet"
	"chirp/internal/core/user"
	"chirp/internal/metrics"
	commentPort "chirp/internal/ports/comment"
	tweetPort "chirp/internal/ports/tweet"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	TweetRepository   tweetPort.TweetRepository
	Metrics           metrics.EventRecorder
	Logger            *zap.Logger
}

func NewCommentService(
	commentRepo commentPort.CommentRepository,
	tweetRepo tweetPort.TweetRepository,
	recorder metrics.EventRecorder,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		TweetRepository:   tweetRepo,
		Metrics:           recorder,
		Logger:            logger,
	}
}

func (s *CommentService) AddComment(ctx context.Context, tweetID, text string, actor user.Principal) (*commentPort.CommentDTO, error) {
	t, err := s.TweetRepository.FindByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if err := content.Validate(text); err != nil {
		return nil, err
	}
	uid, err := uuid.FromString(actor.ID)
	if err != nil {
		return nil, apperr.ErrUnauthenticated
	}

	c := &commentEntity.Comment{
		ID:        uuid.Must(uuid.NewV4()),
		Content:   text,
		UserID:    uid,
		TweetID:   t.ID,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	created, err := s.CommentRepository.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	s.Metrics.RecordEvent(metrics.EventCommentCreated)
	return commentPort.ToCommentDTO(created), nil
}

func (s *CommentService) GetComment(ctx context.Context, id string) (*commentPort.CommentDTO, error) {
	c, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return commentPort.ToCommentDTO(c), nil
}

// UpdateComment is reserved to the comment's author.
func (s *CommentService) UpdateComment(ctx context.Context, id, text string, actor user.Principal) (*commentPort.CommentDTO, error) {
	c, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(c.UserID) {
		return nil, apperr.Unauthorized("only the author can edit this comment")
	}
	if err := content.Validate(text); err != nil {
		return nil, err
	}

	updated, err := s.CommentRepository.UpdateContent(ctx, id, text)
	if err != nil {
		return nil, err
	}
	return commentPort.ToCommentDTO(updated), nil
}

// DeleteComment is allowed to the comment's author and to the owner of the
// tweet it was posted under.
func (s *CommentService) DeleteComment(ctx context.Context, id string, actor user.Principal) error {
	c, t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	isCommentOwner := actor.Owns(c.UserID)
	isTweetOwner := actor.Owns(t.UserID)
	if !isCommentOwner && !isTweetOwner {
		return apperr.Unauthorized("only the author or the tweet owner can delete this comment")
	}

	if err := s.CommentRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.Metrics.RecordEvent(metrics.EventCommentDeleted)
	s.Logger.Info("comment deleted",
		zap.String("commentID", id),
		zap.String("by", actor.ID),
		zap.Bool("asTweetOwner", !isCommentOwner))
	return nil
}

// ListCommentsByTweet returns the tweet's comments, newest first.
func (s *CommentService) ListCommentsByTweet(ctx context.Context, tweetID string) ([]*commentPort.CommentDTO, error) {
	if _, err := s.TweetRepository.FindByID(ctx, tweetID); err != nil {
		return nil, err
	}
	comments, err := s.CommentRepository.FindByTweetID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	out := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentPort.ToCommentDTO(c))
	}
	return out, nil
}

// load returns the comment with its parent tweet. A comment under an
// inactive tweet is reported as not found.
func (s *CommentService) load(ctx context.Context, id string) (*commentEntity.Comment, *tweetEntity.Tweet, error) {
	c, err := s.CommentRepository.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	t, err := s.TweetRepository.FindByID(ctx, c.TweetID.String())
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil, apperr.NotFound("comment")
	}
	if err != nil {
		return nil, nil, err
	}
	return c, t, nil
}
