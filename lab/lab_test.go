package lab_test

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/portfolio-lab/internal/errors"
	"github.com/jrsteele09/portfolio-lab/lab"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	c := lab.NewCatalog()
	require.Len(t, c.Products(), 6)

	p, err := c.Product(3)
	require.NoError(t, err)
	require.Equal(t, "Headphones", p.Name)
	require.Equal(t, "149.99", p.Price.StringFixed(2))

	_, err = c.Product(42)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestOrderBook(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	book, err := lab.NewOrderBook(lab.NewCatalog(), func() time.Time { return now })
	require.NoError(t, err)

	t.Run("totals are exact", func(t *testing.T) {
		order, err := book.Create("practice@example.com", []lab.OrderItem{
			{ProductID: 1, Quantity: 3},
			{ProductID: 4},
			{ProductID: 999, Quantity: 7},
		})
		require.NoError(t, err)
		require.Equal(t, 1, order.ID)
		require.Equal(t, "3019.96", order.TotalAmount.StringFixed(2))
		require.Equal(t, "pending", order.Status)
		require.Equal(t, now, order.CreatedAt)
		require.Equal(t, 1, order.Items[1].Quantity, "zero quantity counts as one")
	})

	t.Run("ids increase", func(t *testing.T) {
		order, err := book.Create("admin@example.com", []lab.OrderItem{{ProductID: 2, Quantity: 1}})
		require.NoError(t, err)
		require.Equal(t, 2, order.ID)
		require.Len(t, book.Orders("practice@example.com"), 1)
		require.Len(t, book.Orders("admin@example.com"), 1)
		require.Equal(t, 2, book.Count())
	})

	t.Run("rejects bad orders", func(t *testing.T) {
		_, err := book.Create("x", nil)
		require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		_, err = book.Create("x", []lab.OrderItem{{ProductID: 1, Quantity: -1}})
		require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})

	_, err = lab.NewOrderBook(nil, nil)
	require.Error(t, err)
}

func TestRunQuery(t *testing.T) {
	res, err := lab.RunQuery("", "  SELECT * FROM products")
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name", "price", "category", "in_stock"}, res.Columns)
	require.Len(t, res.Rows, 5)

	res, err = lab.RunQuery("hr", "select first_name from employees")
	require.NoError(t, err)
	require.Equal(t, "Alice", res.Rows[0][1])

	res, err = lab.RunQuery("library", "select 1")
	require.NoError(t, err)
	require.Equal(t, []string{"result"}, res.Columns)
	require.Equal(t, [][]any{{"No data found for this query"}}, res.Rows)

	for _, stmt := range []string{"DELETE FROM products", "drop table x", "", "update t set a=1"} {
		_, err = lab.RunQuery("ecommerce", stmt)
		require.ErrorIs(t, err, lab.ErrNotSelect, stmt)
		require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	}
}

func TestUsers(t *testing.T) {
	users := lab.Users()
	require.Len(t, users, 2)
	require.Empty(t, users[0].CreatedAt)

	u, err := lab.User(2)
	require.NoError(t, err)
	require.Equal(t, "Jane Smith", u.Name)
	require.NotEmpty(t, u.LastLogin)

	_, err = lab.User(3)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDelay(t *testing.T) {
	require.NoError(t, lab.Delay(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, lab.Delay(ctx, time.Hour), context.Canceled)
}
