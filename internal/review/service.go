package review

import (
	"context"
	"errors"

	"bookstall-be/internal/utils"
)

var (
	ErrNotAuthenticated = errors.New("user not authenticated")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

type Service interface {
	Create(ctx context.Context, input CreateReviewInput) (*Review, error)
	ListByBook(ctx context.Context, bookID string) ([]*Review, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CreateReviewInput) (*Review, error) {
	buyerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	return s.repo.Create(ctx, buyerID, input)
}

func (s *service) ListByBook(ctx context.Context, bookID string) ([]*Review, error) {
	return s.repo.ListByBook(ctx, bookID)
}
