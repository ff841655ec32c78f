package cart

import (
	"context"

	"bookstall-be/internal/logger"
	"bookstall-be/internal/stock"
	"bookstall-be/internal/utils"

	"go.uber.org/zap"
)

// Service defines the business logic for the buyer's cart.
type Service interface {
	Load(ctx context.Context) ([]*CartItem, error)
	Add(ctx context.Context, bookID string, quantity int) (*CartItem, error)
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	Remove(ctx context.Context, itemID string) error
	Clear(ctx context.Context) error
}

// service implements the Service interface
type service struct {
	repo    Repository
	checker *stock.Checker
}

// NewService creates a new cart service
func NewService(repo Repository, checker *stock.Checker) Service {
	return &service{repo: repo, checker: checker}
}

// Load fetches the buyer's cart, each item joined with its book. Local view
// state is replaced wholesale by the result.
func (s *service) Load(ctx context.Context) ([]*CartItem, error) {
	buyerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	return s.repo.GetItems(ctx, buyerID)
}

// Add puts a book in the cart. An existing (buyer, book) pair has its
// quantity overwritten, not summed.
func (s *service) Add(ctx context.Context, bookID string, quantity int) (*CartItem, error) {
	buyerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	if quantity < 1 {
		quantity = 1
	}

	if !s.checker.Sufficient(ctx, bookID, quantity) {
		return nil, ErrInsufficientStock
	}

	item, err := s.repo.Upsert(ctx, UpsertParams{
		BuyerID:  buyerID,
		BookID:   bookID,
		Quantity: quantity,
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("added to cart",
		zap.String("buyer_id", buyerID),
		zap.String("book_id", bookID),
		zap.Int("quantity", quantity),
	)

	return item, nil
}

// UpdateQuantity changes an item's quantity after re-checking stock against
// the item's book.
func (s *service) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	buyerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrNotAuthenticated
	}

	if quantity < 1 {
		return ErrInvalidQuantity
	}

	item, err := s.repo.GetItemByID(ctx, itemID, buyerID)
	if err != nil {
		return err
	}

	if !s.checker.Sufficient(ctx, item.BookID, quantity) {
		return ErrInsufficientStock
	}

	return s.repo.UpdateQuantity(ctx, itemID, buyerID, quantity)
}

// Remove deletes a single item from the cart.
func (s *service) Remove(ctx context.Context, itemID string) error {
	buyerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrNotAuthenticated
	}

	return s.repo.Remove(ctx, itemID, buyerID)
}

// Clear empties the buyer's cart.
func (s *service) Clear(ctx context.Context) error {
	buyerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrNotAuthenticated
	}

	return s.repo.Clear(ctx, buyerID)
}
