package address

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addressRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "buyer_id", "address", "phone_no", "created_at"})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`FROM buyer_addresses`).
		WithArgs("buyer-1").
		WillReturnRows(addressRows().
			AddRow("addr-2", "buyer-1", "2 Oak Ave", "555-0101", now).
			AddRow("addr-1", "buyer-1", "1 Main St", "555-0100", now.Add(-time.Hour)))

	addresses, err := repo.List(ctx, "buyer-1")

	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, "addr-2", addresses[0].ID)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO buyer_addresses`).
		WithArgs("buyer-1", "1 Main St", "555-0100").
		WillReturnRows(addressRows().
			AddRow("addr-1", "buyer-1", "1 Main St", "555-0100", time.Now()))

	a, err := repo.Create(ctx, "buyer-1", CreateAddressInput{
		Address: "1 Main St", PhoneNo: "555-0100",
	})

	require.NoError(t, err)
	assert.Equal(t, "addr-1", a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM buyer_addresses`).
			WithArgs("addr-1", "buyer-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "addr-1", "buyer-1"))
	})

	t.Run("Error - wrong buyer", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM buyer_addresses`).
			WithArgs("addr-1", "buyer-2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, "addr-1", "buyer-2")

		assert.ErrorIs(t, err, ErrAddressNotFound)
	})
}
