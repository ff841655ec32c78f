package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstall-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	CreateOrder(ctx context.Context, buyerID string, total float64) (*Order, error)
	InsertOrderItems(ctx context.Context, orderID string, items []CheckoutItem) error
	GetStatus(ctx context.Context, orderID string) (Status, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
	GetBuyerOrders(ctx context.Context, buyerID string) ([]*Order, error)
	GetOrderDetail(ctx context.Context, orderID string) (*Order, error)
	GetSellerOrders(ctx context.Context, sellerID string) ([]*SellerOrder, error)
	SellerSales(ctx context.Context, sellerID string) (unitsSold int, revenue float64, err error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrder(ctx context.Context, buyerID string, total float64) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("buyer_id", buyerID),
	)

	o := &Order{BuyerID: buyerID, TotalPrice: total, Status: StatusPending}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (buyer_id, total_price, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, buyerID, total, StatusPending).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	log.Info("order created", zap.String("order_id", o.ID))
	return o, nil
}

// InsertOrderItems writes all items of one order as a single batch insert.
func (r *repository) InsertOrderItems(ctx context.Context, orderID string, items []CheckoutItem) error {
	if len(items) == 0 {
		return errors.New("no order items to insert")
	}

	values := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*5)
	for i, item := range items {
		base := i * 5
		values = append(values, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5,
		))
		args = append(args, orderID, item.BookID, item.SellerID, item.Quantity, item.Price)
	}

	query := `
		INSERT INTO order_items (order_id, book_id, seller_id, quantity, price)
		VALUES ` + strings.Join(values, ",")

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert order items",
			zap.String("order_id", orderID),
			zap.Int("item_count", len(items)),
			zap.Error(err),
		)
	}
	return err
}

func (r *repository) GetStatus(ctx context.Context, orderID string) (Status, error) {
	var status Status
	err := r.db.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = $1`, orderID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrOrderNotFound
	}
	return status, err
}

func (r *repository) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return err
	}

	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// GetBuyerOrders returns the buyer's order history, newest first, items and
// book titles included.
func (r *repository) GetBuyerOrders(ctx context.Context, buyerID string) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetBuyerOrders"),
		zap.String("buyer_id", buyerID),
	)

	start := time.Now()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, buyer_id, total_price, status, created_at
		FROM orders
		WHERE buyer_id = $1
		ORDER BY created_at DESC
	`, buyerID)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	index := make(map[string]*Order)

	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.TotalPrice, &o.Status, &o.CreatedAt); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
		index[o.ID] = &o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.book_id, oi.seller_id, oi.quantity, oi.price, b.title
		FROM order_items oi
		JOIN books b ON oi.book_id = b.id
		JOIN orders o ON oi.order_id = o.id
		WHERE o.buyer_id = $1
	`, buyerID)
	if err != nil {
		log.Error("failed to query order items", zap.Error(err))
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item OrderItem
		if err := itemRows.Scan(
			&item.ID, &item.OrderID, &item.BookID, &item.SellerID,
			&item.Quantity, &item.Price, &item.BookTitle,
		); err != nil {
			return nil, err
		}
		if o, ok := index[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	log.Debug("orders loaded",
		zap.Int("count", len(orders)),
		zap.Duration("duration", time.Since(start)),
	)

	return orders, nil
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, buyer_id, total_price, status, created_at
		FROM orders WHERE id = $1
	`, orderID).Scan(&o.ID, &o.BuyerID, &o.TotalPrice, &o.Status, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.book_id, oi.seller_id, oi.quantity, oi.price, b.title
		FROM order_items oi
		JOIN books b ON oi.book_id = b.id
		WHERE oi.order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.BookID, &item.SellerID,
			&item.Quantity, &item.Price, &item.BookTitle,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	return &o, rows.Err()
}

// GetSellerOrders returns every order containing at least one of the
// seller's items, with buyer contact and only that seller's item subset.
func (r *repository) GetSellerOrders(ctx context.Context, sellerID string) ([]*SellerOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetSellerOrders"),
		zap.String("seller_id", sellerID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT o.id, o.buyer_id, o.total_price, o.status, o.created_at,
		       u.name, u.email
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN users u ON u.id = o.buyer_id
		WHERE oi.seller_id = $1
		ORDER BY o.created_at DESC
	`, sellerID)
	if err != nil {
		log.Error("failed to query seller orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*SellerOrder
	index := make(map[string]*SellerOrder)

	for rows.Next() {
		var so SellerOrder
		if err := rows.Scan(
			&so.ID, &so.BuyerID, &so.TotalPrice, &so.Status, &so.CreatedAt,
			&so.BuyerName, &so.BuyerEmail,
		); err != nil {
			return nil, err
		}
		orders = append(orders, &so)
		index[so.ID] = &so
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.book_id, oi.seller_id, oi.quantity, oi.price, b.title
		FROM order_items oi
		JOIN books b ON oi.book_id = b.id
		WHERE oi.seller_id = $1
	`, sellerID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item OrderItem
		if err := itemRows.Scan(
			&item.ID, &item.OrderID, &item.BookID, &item.SellerID,
			&item.Quantity, &item.Price, &item.BookTitle,
		); err != nil {
			return nil, err
		}
		if so, ok := index[item.OrderID]; ok {
			so.Items = append(so.Items, item)
		}
	}

	return orders, itemRows.Err()
}

// SellerSales aggregates total units sold and revenue over Delivered orders.
func (r *repository) SellerSales(ctx context.Context, sellerID string) (int, float64, error) {
	var unitsSold int
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(quantity), 0)
		FROM order_items
		WHERE seller_id = $1
	`, sellerID).Scan(&unitsSold)
	if err != nil {
		return 0, 0, err
	}

	var revenue float64
	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(oi.quantity * oi.price), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.seller_id = $1 AND o.status = $2
	`, sellerID, StatusDelivered).Scan(&revenue)
	if err != nil {
		return 0, 0, err
	}

	return unitsSold, revenue, nil
}
