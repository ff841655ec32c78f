package address

import (
	"context"
	"database/sql"

	"bookstall-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, buyerID string) ([]*Address, error)
	Create(ctx context.Context, buyerID string, input CreateAddressInput) (*Address, error)
	Delete(ctx context.Context, addressID, buyerID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// List returns the buyer's saved addresses, newest first.
func (r *repository) List(ctx context.Context, buyerID string) ([]*Address, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, buyer_id, address, phone_no, created_at
		FROM buyer_addresses
		WHERE buyer_id = $1
		ORDER BY created_at DESC
	`, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []*Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.BuyerID, &a.Address, &a.PhoneNo, &a.CreatedAt); err != nil {
			return nil, err
		}
		addresses = append(addresses, &a)
	}

	return addresses, rows.Err()
}

func (r *repository) Create(ctx context.Context, buyerID string, input CreateAddressInput) (*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateAddress"),
		zap.String("buyer_id", buyerID),
	)

	var a Address
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO buyer_addresses (buyer_id, address, phone_no)
		VALUES ($1, $2, $3)
		RETURNING id, buyer_id, address, phone_no, created_at
	`, buyerID, input.Address, input.PhoneNo).Scan(
		&a.ID, &a.BuyerID, &a.Address, &a.PhoneNo, &a.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert address", zap.Error(err))
		return nil, err
	}

	return &a, nil
}

func (r *repository) Delete(ctx context.Context, addressID, buyerID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM buyer_addresses
		WHERE id = $1 AND buyer_id = $2
	`, addressID, buyerID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrAddressNotFound
	}

	return nil
}
