package comments

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption/internal/domain/ratings"
	"pet-adoption/internal/errs"
	"pet-adoption/internal/platform/validate"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostChecker evita importar posts desde comments.
type PostChecker interface {
	Exists(ctx context.Context, postID string) (bool, error)
}

type Service struct {
	repo    Repository
	posts   PostChecker
	ratings *ratings.Service
	now     func() time.Time
}

func NewService(repo Repository, posts PostChecker, ratingsSvc *ratings.Service) *Service {
	return &Service{
		repo:    repo,
		posts:   posts,
		ratings: ratingsSvc,
		now:     time.Now,
	}
}

func (s *Service) Create(ctx context.Context, username, postID, body string) (Comment, error) {
	if !validate.String(username) || !validate.Identifier(postID) || !validate.String(body) {
		return Comment{}, errs.Validation("invalid input")
	}

	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return Comment{}, err
	}
	if !ok {
		return Comment{}, errs.NotFound("post does not exist")
	}

	c := Comment{
		ID:             primitive.NewObjectID().Hex(),
		AuthorUsername: username,
		PostID:         postID,
		Body:           strings.TrimSpace(body),
		CreatedAt:      s.now().Truncate(time.Second),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Comment{}, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, postID string) ([]Comment, error) {
	if !validate.Identifier(postID) {
		return nil, errs.Validation("invalid input")
	}
	return s.repo.ListByPost(ctx, postID)
}

func (s *Service) Get(ctx context.Context, id string) (Comment, error) {
	if !validate.Identifier(id) {
		return Comment{}, errs.Validation("invalid input")
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return Comment{}, errs.NotFound("comment does not exist")
		}
		return Comment{}, err
	}
	return c, nil
}

func (s *Service) Like(ctx context.Context, username, commentID string) (ratings.Rating, error) {
	if _, err := s.Get(ctx, commentID); err != nil {
		return ratings.Rating{}, err
	}
	return s.ratings.Like(ctx, ratings.KindComment, username, commentID)
}

func (s *Service) Unlike(ctx context.Context, username, commentID string) error {
	return s.ratings.Unlike(ctx, ratings.KindComment, username, commentID)
}

func (s *Service) GetRating(ctx context.Context, username, commentID string) (*ratings.Rating, error) {
	return s.ratings.Get(ctx, ratings.KindComment, username, commentID)
}

func (s *Service) SumLikes(ctx context.Context, commentID string) (int64, error) {
	return s.ratings.Sum(ctx, ratings.KindComment, commentID)
}
