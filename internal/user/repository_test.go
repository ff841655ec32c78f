package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "name", "role", "password_hash", "created_at"})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("a@example.com", "A", RoleBuyer, "hashed").
		WillReturnRows(userRows().
			AddRow("user-1", "a@example.com", "A", "buyer", "hashed", time.Now()))

	u, err := repo.Create(ctx, RegisterParams{
		Email: "a@example.com", Name: "A", Role: RoleBuyer,
	}, "hashed")

	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, RoleBuyer, u.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`FROM users WHERE email = \$1`).
			WithArgs("a@example.com").
			WillReturnRows(userRows().
				AddRow("user-1", "a@example.com", "A", "buyer", "hashed", time.Now()))

		u, err := repo.FindByEmail(ctx, "a@example.com")

		require.NoError(t, err)
		assert.Equal(t, "user-1", u.ID)
	})

	t.Run("Error - Not found", func(t *testing.T) {
		mock.ExpectQuery(`FROM users WHERE email = \$1`).
			WithArgs("missing@example.com").
			WillReturnRows(userRows())

		_, err := repo.FindByEmail(ctx, "missing@example.com")

		assert.Error(t, err)
	})
}

func TestRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("user-1").
		WillReturnRows(userRows().
			AddRow("user-1", "a@example.com", "A", "seller", "hashed", time.Now()))

	u, err := repo.FindByID(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, RoleSeller, u.Role)
}
