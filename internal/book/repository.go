package book

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
	GetList(ctx context.Context, opts ListOptions) ([]*Book, error)
	GetByID(ctx context.Context, bookID string) (*Book, error)
	Create(ctx context.Context, input NewBookInput, sellerID string) (*Book, error)
	Update(ctx context.Context, input UpdateBookInput, sellerID string) (*Book, error)
	Delete(ctx context.Context, bookID, sellerID string) error
	StockOf(ctx context.Context, bookID string) (int, error)
	DecrementStock(ctx context.Context, bookID string, qty int) error
	RestoreStock(ctx context.Context, bookID string, qty int) error
	CountBySeller(ctx context.Context, sellerID string) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const bookColumns = `id, title, author, price, stock, seller_id, image_url, description, created_at`

func scanBook(row interface{ Scan(...any) error }) (*Book, error) {
	var b Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Price,
		&b.Stock,
		&b.SellerID,
		&b.ImageURL,
		&b.Description,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) GetList(ctx context.Context, opts ListOptions) ([]*Book, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetList"),
	)

	start := time.Now()

	// ---------- pagination ----------
	finalLimit := int32(20)
	if opts.Limit > 0 {
		finalLimit = opts.Limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	finalPage := int32(1)
	if opts.Page > 0 {
		finalPage = opts.Page
	}

	offset := (finalPage - 1) * finalLimit

	// ---------- where ----------
	where := []string{"1=1"}
	args := []any{}

	if opts.Search != "" {
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)+1))
		args = append(args, "%"+opts.Search+"%")
	}

	if opts.SellerID != "" {
		where = append(where, fmt.Sprintf("seller_id = $%d", len(args)+1))
		args = append(args, opts.SellerID)
	}

	query := `
	SELECT ` + bookColumns + `
	FROM books
	WHERE ` + strings.Join(where, " AND ") + `
	ORDER BY created_at DESC
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}
	defer rows.Close()

	result := make([]*Book, 0, finalLimit)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		result = append(result, b)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(result)),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (r *repository) GetByID(ctx context.Context, bookID string) (*Book, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1`, bookID)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repository) Create(ctx context.Context, input NewBookInput, sellerID string) (*Book, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateBook"),
		zap.String("seller_id", sellerID),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO books (title, author, price, stock, seller_id, image_url, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+bookColumns,
		input.Title,
		input.Author,
		input.Price,
		input.Stock,
		sellerID,
		input.ImageURL,
		input.Description,
	)

	b, err := scanBook(row)
	if err != nil {
		log.Error("failed to insert book", zap.Error(err))
		return nil, err
	}

	log.Info("book created", zap.String("book_id", b.ID))
	return b, nil
}

func (r *repository) Update(ctx context.Context, input UpdateBookInput, sellerID string) (*Book, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE books
		SET title = $1, author = $2, price = $3, stock = $4,
		    image_url = $5, description = $6
		WHERE id = $7 AND seller_id = $8
		RETURNING `+bookColumns,
		input.Title,
		input.Author,
		input.Price,
		input.Stock,
		input.ImageURL,
		input.Description,
		input.BookID,
		sellerID,
	)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repository) Delete(ctx context.Context, bookID, sellerID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM books WHERE id = $1 AND seller_id = $2`, bookID, sellerID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrBookNotFound
	}

	return nil
}

func (r *repository) StockOf(ctx context.Context, bookID string) (int, error) {
	var stock int
	err := r.db.QueryRowContext(ctx,
		`SELECT stock FROM books WHERE id = $1`, bookID).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrBookNotFound
	}
	return stock, err
}

// DecrementStock performs the check-and-decrement as one conditional update.
// Zero rows affected means the live stock no longer covers qty; callers must
// not trust an earlier read instead.
func (r *repository) DecrementStock(ctx context.Context, bookID string, qty int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE books
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1
	`, qty, bookID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrStockConflict
	}

	return nil
}

// RestoreStock reverses a previously applied decrement during compensation.
func (r *repository) RestoreStock(ctx context.Context, bookID string, qty int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE books
		SET stock = stock + $1
		WHERE id = $2
	`, qty, bookID)
	return err
}

func (r *repository) CountBySeller(ctx context.Context, sellerID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM books WHERE seller_id = $1`, sellerID).Scan(&count)
	return count, err
}
