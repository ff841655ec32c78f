package address

import (
	"context"
	"errors"
	"strings"

	"bookstall-be/internal/utils"
)

var (
	ErrNotAuthenticated = errors.New("user not authenticated")
	ErrEmptyFields      = errors.New("address and phone number are required")
	ErrAddressNotFound  = errors.New("address not found")
)

type Service interface {
	List(ctx context.Context) ([]*Address, error)
	Create(ctx context.Context, input CreateAddressInput) (*Address, error)
	Delete(ctx context.Context, addressID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Address, error) {
	buyerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	return s.repo.List(ctx, buyerID)
}

// Create appends to the buyer's address list. No validation beyond
// non-empty fields.
func (s *service) Create(ctx context.Context, input CreateAddressInput) (*Address, error) {
	buyerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	if strings.TrimSpace(input.Address) == "" || strings.TrimSpace(input.PhoneNo) == "" {
		return nil, ErrEmptyFields
	}

	return s.repo.Create(ctx, buyerID, input)
}

func (s *service) Delete(ctx context.Context, addressID string) error {
	buyerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrNotAuthenticated
	}

	return s.repo.Delete(ctx, addressID, buyerID)
}
