package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"bookstall-be/internal/address"
	"bookstall-be/internal/book"
	"bookstall-be/internal/cart"
	"bookstall-be/internal/logger"
	"bookstall-be/internal/metrics"
	"bookstall-be/internal/stock"
	"bookstall-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (*PlaceOrderResult, error)
	History(ctx context.Context) ([]*Order, error)
	GetDetail(ctx context.Context, orderID string) (*Order, error)
	SellerOrders(ctx context.Context) ([]*SellerOrder, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
	Dashboard(ctx context.Context) (*SellerStats, error)
}

type service struct {
	repo        Repository
	books       book.Repository
	carts       cart.Repository
	addresses   address.Repository
	checker     *stock.Checker
	transitions Transitions
	checkout    *metrics.Checkout

	// Per-buyer double-submit guard. Two overlapping PlaceOrder calls could
	// otherwise both pass verification against the same pre-decrement stock.
	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewService(
	repo Repository,
	books book.Repository,
	carts cart.Repository,
	addresses address.Repository,
	checker *stock.Checker,
	transitions Transitions,
	checkout *metrics.Checkout,
) Service {
	if transitions == nil {
		transitions = DefaultTransitions
	}
	if checkout == nil {
		checkout = &metrics.Checkout{}
	}
	return &service{
		repo:        repo,
		books:       books,
		carts:       carts,
		addresses:   addresses,
		checker:     checker,
		transitions: transitions,
		checkout:    checkout,
		inflight:    make(map[string]struct{}),
	}
}

func (s *service) begin(buyerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inflight[buyerID]; busy {
		return false
	}
	s.inflight[buyerID] = struct{}{}
	return true
}

func (s *service) end(buyerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, buyerID)
}

// PlaceOrder converts the submitted cart lines into a durable order.
//
// Steps run strictly in sequence: stock verification, order creation, item
// insertion, per-book stock decrement, address persistence, cart clearing.
// The first four are fatal; with no multi-call atomicity available, a fatal
// failure after order creation triggers compensation (restore applied
// decrements, mark the order Cancelled). Address persistence and cart
// clearing never unwind a committed order.
func (s *service) PlaceOrder(ctx context.Context, params PlaceOrderParams) (*PlaceOrderResult, error) {
	buyerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.String("buyer_id", buyerID),
		zap.Int("item_count", len(params.Items)),
	)

	if !s.begin(buyerID) {
		log.Warn("rejected overlapping checkout")
		return nil, ErrCheckoutInFlight
	}
	defer s.end(buyerID)

	if len(params.Items) == 0 {
		return nil, ErrEmptyCart
	}

	timer := metrics.StartTimer()

	result, err := s.placeOrder(ctx, log, buyerID, params)
	if err != nil {
		s.checkout.Failed.Inc()
		log.Error("checkout failed",
			zap.Error(err),
			zap.Duration("duration", timer.Duration()),
		)
		return nil, err
	}

	s.checkout.Placed.Inc()
	log.Info("checkout completed",
		zap.String("order_id", result.OrderID),
		zap.Float64("total", result.Total),
		zap.Duration("duration", timer.Duration()),
	)

	return result, nil
}

func (s *service) placeOrder(
	ctx context.Context,
	log *zap.Logger,
	buyerID string,
	params PlaceOrderParams,
) (*PlaceOrderResult, error) {

	// 1. Stock verification pass. Re-reads every book; no reservation is
	// taken, the decrement below re-checks atomically.
	computed := 0.0
	for _, item := range params.Items {
		available, err := s.checker.Available(ctx, item.BookID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
		if available < item.Quantity {
			return nil, &InsufficientStockError{Title: item.Title, Available: available}
		}
		computed += item.Price * float64(item.Quantity)
	}

	if math.Abs(computed-params.Total) > 0.009 {
		log.Warn("total mismatch",
			zap.Float64("submitted", params.Total),
			zap.Float64("computed", computed),
		)
		return nil, ErrTotalMismatch
	}

	// 2. Order creation.
	o, err := s.repo.CreateOrder(ctx, buyerID, params.Total)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	// 3. Order items, one batch.
	if err := s.repo.InsertOrderItems(ctx, o.ID, params.Items); err != nil {
		s.compensate(ctx, log, o.ID, nil)
		return nil, fmt.Errorf("%w: %v", ErrOrderItemsFailed, err)
	}

	// 4. Stock decrement per item, conditional server-side. Zero rows
	// affected means another buyer got there first.
	var applied []CheckoutItem
	for _, item := range params.Items {
		if err := s.books.DecrementStock(ctx, item.BookID, item.Quantity); err != nil {
			s.compensate(ctx, log, o.ID, applied)
			if errors.Is(err, book.ErrStockConflict) {
				available, _ := s.checker.Available(ctx, item.BookID)
				return nil, &InsufficientStockError{Title: item.Title, Available: available}
			}
			return nil, fmt.Errorf("%w: %v", ErrStockUpdateFailed, err)
		}
		applied = append(applied, item)
	}

	result := &PlaceOrderResult{OrderID: o.ID, Total: o.TotalPrice}

	// 5. Persist the address when the buyer typed a new one. Non-fatal.
	if params.AddressID == nil {
		_, err := s.addresses.Create(ctx, buyerID, address.CreateAddressInput{
			Address: params.Address,
			PhoneNo: params.PhoneNo,
		})
		if err != nil {
			log.Warn("address persistence failed", zap.Error(err))
			result.AddressErr = fmt.Errorf("%w: %v", ErrAddressPersistFailed, err)
		}
	}

	// 6. Clear the cart only now that the order and its items are durable.
	// Non-fatal: the buyer may see stale cart contents.
	if err := s.carts.Clear(ctx, buyerID); err != nil {
		log.Warn("cart clearing failed", zap.Error(err))
		result.CartClearErr = fmt.Errorf("%w: %v", ErrCartClearFailed, err)
	}

	return result, nil
}

// compensate reverses whatever step 4 already applied and parks the order in
// Cancelled. Best effort: each failure is logged, none is propagated, since
// the original fatal error is what the caller needs to see.
func (s *service) compensate(ctx context.Context, log *zap.Logger, orderID string, applied []CheckoutItem) {
	for _, item := range applied {
		if err := s.books.RestoreStock(ctx, item.BookID, item.Quantity); err != nil {
			log.Error("compensation: failed to restore stock",
				zap.String("book_id", item.BookID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
		}
	}

	if err := s.repo.UpdateStatus(ctx, orderID, StatusCancelled); err != nil {
		log.Error("compensation: failed to cancel order",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}

func (s *service) History(ctx context.Context) ([]*Order, error) {
	buyerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	return s.repo.GetBuyerOrders(ctx, buyerID)
}

// GetDetail returns one order; buyers only see their own, sellers see orders
// containing their items.
func (s *service) GetDetail(ctx context.Context, orderID string) (*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.BuyerID == userID {
		return o, nil
	}

	if utils.GetUserRoleFromContext(ctx) == utils.RoleSeller {
		for _, item := range o.Items {
			if item.SellerID == userID {
				return o, nil
			}
		}
	}

	return nil, ErrUnauthorized
}

func (s *service) SellerOrders(ctx context.Context) ([]*SellerOrder, error) {
	sellerID, err := requireSeller(ctx)
	if err != nil {
		return nil, err
	}

	return s.repo.GetSellerOrders(ctx, sellerID)
}

// UpdateStatus is seller-driven and gated by the configured transition table.
func (s *service) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	if _, err := requireSeller(ctx); err != nil {
		return err
	}

	current, err := s.repo.GetStatus(ctx, orderID)
	if err != nil {
		return err
	}

	if !s.transitions.Allowed(current, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
	}

	return s.repo.UpdateStatus(ctx, orderID, status)
}

func (s *service) Dashboard(ctx context.Context) (*SellerStats, error) {
	sellerID, err := requireSeller(ctx)
	if err != nil {
		return nil, err
	}

	bookCount, err := s.books.CountBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	unitsSold, revenue, err := s.repo.SellerSales(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	return &SellerStats{
		BookCount: bookCount,
		UnitsSold: unitsSold,
		Revenue:   revenue,
	}, nil
}

func requireSeller(ctx context.Context) (string, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return "", ErrNotAuthenticated
	}
	if utils.GetUserRoleFromContext(ctx) != utils.RoleSeller {
		return "", ErrNotSeller
	}
	return userID, nil
}
