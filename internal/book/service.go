package book

import (
	"context"
	"strings"

	"bookstall-be/internal/logger"
	"bookstall-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Browse(ctx context.Context, opts ListOptions) ([]*Book, error)
	GetByID(ctx context.Context, bookID string) (*Book, error)
	ListOwn(ctx context.Context, opts ListOptions) ([]*Book, error)
	Add(ctx context.Context, input NewBookInput) (*Book, error)
	Edit(ctx context.Context, input UpdateBookInput) (*Book, error)
	Remove(ctx context.Context, bookID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Browse(ctx context.Context, opts ListOptions) ([]*Book, error) {
	opts.SellerID = ""
	return s.repo.GetList(ctx, opts)
}

func (s *service) GetByID(ctx context.Context, bookID string) (*Book, error) {
	return s.repo.GetByID(ctx, bookID)
}

// ListOwn returns the authenticated seller's own listing, search included.
func (s *service) ListOwn(ctx context.Context, opts ListOptions) ([]*Book, error) {
	sellerID, err := requireSeller(ctx)
	if err != nil {
		return nil, err
	}

	opts.SellerID = sellerID
	return s.repo.GetList(ctx, opts)
}

func (s *service) Add(ctx context.Context, input NewBookInput) (*Book, error) {
	sellerID, err := requireSeller(ctx)
	if err != nil {
		return nil, err
	}

	if err := validateBookInput(input.Title, input.Price, input.Stock); err != nil {
		return nil, err
	}

	b, err := s.repo.Create(ctx, input, sellerID)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("book added",
		zap.String("book_id", b.ID),
		zap.String("seller_id", sellerID),
	)

	return b, nil
}

func (s *service) Edit(ctx context.Context, input UpdateBookInput) (*Book, error) {
	sellerID, err := requireSeller(ctx)
	if err != nil {
		return nil, err
	}

	if err := validateBookInput(input.Title, input.Price, input.Stock); err != nil {
		return nil, err
	}

	// Ownership is enforced by the seller_id predicate in the update itself.
	return s.repo.Update(ctx, input, sellerID)
}

func (s *service) Remove(ctx context.Context, bookID string) error {
	sellerID, err := requireSeller(ctx)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, bookID, sellerID)
}

func requireSeller(ctx context.Context) (string, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok || utils.GetUserRoleFromContext(ctx) != utils.RoleSeller {
		return "", ErrNotSeller
	}
	return userID, nil
}

func validateBookInput(title string, price float64, stock int) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if price < 0 {
		return ErrNegativePrice
	}
	if stock < 0 {
		return ErrNegativeStock
	}
	return nil
}
