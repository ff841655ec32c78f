package review

import (
	"context"
	"database/sql"

	"bookstall-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, buyerID string, input CreateReviewInput) (*Review, error)
	ListByBook(ctx context.Context, bookID string) ([]*Review, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, buyerID string, input CreateReviewInput) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateReview"),
		zap.String("book_id", input.BookID),
	)

	var rev Review
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (book_id, buyer_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, book_id, buyer_id, rating, comment, created_at
	`, input.BookID, buyerID, input.Rating, input.Comment).Scan(
		&rev.ID, &rev.BookID, &rev.BuyerID, &rev.Rating, &rev.Comment, &rev.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert review", zap.Error(err))
		return nil, err
	}

	return &rev, nil
}

func (r *repository) ListByBook(ctx context.Context, bookID string) ([]*Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, book_id, buyer_id, rating, comment, created_at
		FROM reviews
		WHERE book_id = $1
		ORDER BY created_at DESC
	`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		var rev Review
		if err := rows.Scan(&rev.ID, &rev.BookID, &rev.BuyerID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, &rev)
	}

	return reviews, rows.Err()
}
