package cart

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bookstall-be/internal/book"
	"bookstall-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetItems(ctx context.Context, buyerID string) ([]*CartItem, error)
	GetItemByID(ctx context.Context, itemID, buyerID string) (*CartItem, error)
	Upsert(ctx context.Context, params UpsertParams) (*CartItem, error)
	UpdateQuantity(ctx context.Context, itemID, buyerID string, quantity int) error
	Remove(ctx context.Context, itemID, buyerID string) error
	Clear(ctx context.Context, buyerID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const joinedColumns = `
	c.id,
	c.buyer_id,
	c.book_id,
	c.quantity,
	c.created_at,
	c.updated_at,

	b.id,
	b.title,
	b.author,
	b.price,
	b.stock,
	b.seller_id,
	b.image_url,
	b.description,
	b.created_at
`

func scanJoined(row interface{ Scan(...any) error }) (*CartItem, error) {
	item := &CartItem{Book: &book.Book{}}
	err := row.Scan(
		&item.ID,
		&item.BuyerID,
		&item.BookID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,

		&item.Book.ID,
		&item.Book.Title,
		&item.Book.Author,
		&item.Book.Price,
		&item.Book.Stock,
		&item.Book.SellerID,
		&item.Book.ImageURL,
		&item.Book.Description,
		&item.Book.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetItems loads the buyer's whole cart, each row joined with its book.
func (r *repository) GetItems(ctx context.Context, buyerID string) ([]*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetItems"),
		zap.String("buyer_id", buyerID),
	)

	start := time.Now()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+joinedColumns+`
		FROM cart c
		JOIN books b ON c.book_id = b.id
		WHERE c.buyer_id = $1
		ORDER BY c.created_at DESC
	`, buyerID)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}
	defer rows.Close()

	var items []*CartItem
	for rows.Next() {
		item, err := scanJoined(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("cart loaded",
		zap.Int("rows", len(items)),
		zap.Duration("duration", time.Since(start)),
	)

	return items, nil
}

func (r *repository) GetItemByID(ctx context.Context, itemID, buyerID string) (*CartItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+joinedColumns+`
		FROM cart c
		JOIN books b ON c.book_id = b.id
		WHERE c.id = $1 AND c.buyer_id = $2
	`, itemID, buyerID)

	item, err := scanJoined(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Upsert inserts the (buyer, book) pair or, when it already exists,
// overwrites the stored quantity with the new one.
func (r *repository) Upsert(ctx context.Context, params UpsertParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Upsert"),
		zap.String("buyer_id", params.BuyerID),
		zap.String("book_id", params.BookID),
	)

	item := &CartItem{}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart (buyer_id, book_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (buyer_id, book_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, buyer_id, book_id, quantity, created_at, updated_at
	`, params.BuyerID, params.BookID, params.Quantity).Scan(
		&item.ID,
		&item.BuyerID,
		&item.BookID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert cart item", zap.Error(err))
		return nil, err
	}

	log.Info("cart item upserted", zap.String("cart_item_id", item.ID))
	return item, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, itemID, buyerID string, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2 AND buyer_id = $3
	`, quantity, itemID, buyerID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) Remove(ctx context.Context, itemID, buyerID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart
		WHERE id = $1 AND buyer_id = $2
	`, itemID, buyerID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// Clear deletes every row for the buyer. An already empty cart is not an
// error: checkout calls this unconditionally.
func (r *repository) Clear(ctx context.Context, buyerID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart
		WHERE buyer_id = $1
	`, buyerID)
	return err
}
