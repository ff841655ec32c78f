package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReader is a mock of the Reader interface
type MockReader struct {
	mock.Mock
}

func (m *MockReader) StockOf(ctx context.Context, bookID string) (int, error) {
	args := m.Called(ctx, bookID)
	return args.Int(0), args.Error(1)
}

func TestChecker_Available(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		reader := new(MockReader)
		reader.On("StockOf", ctx, "book-1").Return(7, nil).Once()

		available, err := NewChecker(reader).Available(ctx, "book-1")

		require.NoError(t, err)
		assert.Equal(t, 7, available)
	})

	t.Run("Error - read failure propagates", func(t *testing.T) {
		reader := new(MockReader)
		reader.On("StockOf", ctx, "book-1").Return(0, errors.New("db error")).Once()

		_, err := NewChecker(reader).Available(ctx, "book-1")

		assert.Error(t, err)
	})
}

func TestChecker_Sufficient(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		stock int
		err   error
		qty   int
		want  bool
	}{
		{name: "stock covers quantity", stock: 5, qty: 3, want: true},
		{name: "stock equals quantity", stock: 3, qty: 3, want: true},
		{name: "stock below quantity", stock: 2, qty: 3, want: false},
		{name: "zero stock", stock: 0, qty: 1, want: false},
		{name: "read failure gates closed", stock: 99, err: errors.New("db error"), qty: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := new(MockReader)
			reader.On("StockOf", ctx, "book-1").Return(tt.stock, tt.err).Once()

			got := NewChecker(reader).Sufficient(ctx, "book-1", tt.qty)

			assert.Equal(t, tt.want, got)
		})
	}
}
