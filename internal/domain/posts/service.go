package posts

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

type Service struct {
	repo    Repository
	ratings *ratings.Service
	now     func() time.Time
}

func NewService(repo Repository, ratingsSvc *ratings.Service) *Service {
	return &Service{
		repo:    repo,
		ratings: ratingsSvc,
		now:     time.Now,
	}
}

type CreateInput struct {
	Title    string
	ImageRef string
	Tag      string
	Body     string
}

func (s *Service) Create(ctx context.Context, authorUsername string, in CreateInput) (Post, error) {
	if !validate.String(authorUsername) ||
		!validate.String(in.Title) ||
		!validate.String(in.ImageRef) ||
		!validate.String(in.Tag) ||
		!validate.String(in.Body) {
		return Post{}, errs.Validation("invalid input")
	}

	p := Post{
		ID:             primitive.NewObjectID().Hex(),
		AuthorUsername: authorUsername,
		Title:          strings.TrimSpace(in.Title),
		ImageRef:       in.ImageRef,
		Tag:            strings.TrimSpace(in.Tag),
		Body:           strings.TrimSpace(in.Body),
		// resolución de segundos, igual que lo que se persiste
		CreatedAt: s.now().Truncate(time.Second),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Post, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Post, error) {
	if !validate.Identifier(id) {
		return Post{}, errs.Validation("invalid input")
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return Post{}, errs.NotFound("post does not exist")
		}
		return Post{}, err
	}
	return p, nil
}

// Exists lo usa comments para validar la FK al crear.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) Like(ctx context.Context, username, postID string) (ratings.Rating, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return ratings.Rating{}, err
	}
	return s.ratings.Like(ctx, ratings.KindPost, username, postID)
}

func (s *Service) Unlike(ctx context.Context, username, postID string) error {
	return s.ratings.Unlike(ctx, ratings.KindPost, username, postID)
}

func (s *Service) GetRating(ctx context.Context, username, postID string) (*ratings.Rating, error) {
	return s.ratings.Get(ctx, ratings.KindPost, username, postID)
}

func (s *Service) SumLikes(ctx context.Context, postID string) (int64, error) {
	return s.ratings.Sum(ctx, ratings.KindPost, postID)
}
