package pets

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"time"

	"pet-adoption/internal/errs"
	"pet-adoption/internal/platform/validate"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	repo     Repository
	accounts AccountChecker
	now      func() time.Time
}

func NewService(repo Repository, accounts AccountChecker) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		now:      time.Now,
	}
}

type CreateInput struct {
	Name    string
	Species string
	// Age llega como la dejó el transporte; solo se aceptan enteros de Go.
	Age         any
	Zipcode     string
	Description string
	Tag         string
	ImageRef    string
}

func (in CreateInput) validate() error {
	switch {
	case !validate.String(in.Name):
		return errs.Validation("invalid input: name")
	case !validate.String(in.Species):
		return errs.Validation("invalid input: species")
	case !validate.Int(in.Age) || ageOf(in.Age) < 0:
		return errs.Validation("invalid input: age")
	case !validate.Zip(in.Zipcode):
		return errs.Validation("invalid input: zipcode")
	case !validate.String(in.Description):
		return errs.Validation("invalid input: description")
	case !validate.String(in.Tag):
		return errs.Validation("invalid input: tag")
	case !validate.String(in.ImageRef):
		return errs.Validation("invalid input: image")
	}
	return nil
}

// ageOf convierte un entero de cualquier kind a int; -1 si no entra en un int32.
func ageOf(v any) int {
	rv := reflect.ValueOf(v)
	var n int64
	if rv.CanInt() {
		n = rv.Int()
	} else {
		u := rv.Uint()
		if u > math.MaxInt32 {
			return -1
		}
		n = int64(u)
	}
	if n > math.MaxInt32 {
		return -1
	}
	return int(n)
}

func (s *Service) Create(ctx context.Context, ownerUsername string, in CreateInput) (Pet, error) {
	if !validate.String(ownerUsername) {
		return Pet{}, errs.Validation("invalid input: owner")
	}
	if err := in.validate(); err != nil {
		return Pet{}, err
	}

	p := Pet{
		ID:            primitive.NewObjectID().Hex(),
		OwnerUsername: ownerUsername,
		Name:          strings.TrimSpace(in.Name),
		Species:       strings.TrimSpace(in.Species),
		Age:           ageOf(in.Age),
		Zipcode:       in.Zipcode,
		Description:   strings.TrimSpace(in.Description),
		Tag:           strings.TrimSpace(in.Tag),
		ImageRef:      in.ImageRef,
		PriorOwners:   []string{},
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// List devuelve las mascotas que matchean f (todas si f está vacío).
func (s *Service) List(ctx context.Context, f Filter) ([]Pet, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Species = strings.TrimSpace(f.Species)
	f.Zipcode = strings.TrimSpace(f.Zipcode)
	f.Tag = strings.TrimSpace(f.Tag)

	if f.Zipcode != "" && !validate.Zip(f.Zipcode) {
		return nil, errs.Validation("invalid input: zipcode")
	}
	if f.Age != nil && *f.Age < 0 {
		return nil, errs.Validation("invalid input: age")
	}
	return s.repo.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id string) (Pet, error) {
	if !validate.Identifier(id) {
		return Pet{}, errs.Validation("invalid input")
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return Pet{}, errs.NotFound("pet does not exist")
		}
		return Pet{}, err
	}
	return p, nil
}
