package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dwikikusuma/phone-shop/internal/order/domain"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
	"github.com/dwikikusuma/phone-shop/pkg/sqldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqldb.DB {
	t.Helper()
	ctx := context.Background()
	db, err := sqldb.Open(ctx, "sqlite:"+filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(ctx, `INSERT INTO users (username, email, password_hash, is_active, created_at) VALUES (?, ?, ?, 1, ?)`,
		"testuser1", "testuser1@example.com", "x", sqldb.ToMillis(time.Now()))
	require.NoError(t, err)
	for _, name := range []string{"iPhone 15 Pro", "Galaxy S24"} {
		_, err = db.Exec(ctx, `INSERT INTO products (name, price, stock) VALUES (?, ?, ?)`, name, 999.99, 10)
		require.NoError(t, err)
	}
	return db
}

func TestOrderRepoLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepo(openTestDB(t))
	now := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	created, err := repo.CreateOrderTx(ctx, domain.Order{
		UserID:      1,
		Status:      "pending",
		TotalAmount: 2999.97,
		Items: []domain.OrderItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Len(t, created.Items, 2)
	for _, it := range created.Items {
		assert.NotZero(t, it.ID)
		assert.Equal(t, created.ID, it.OrderID)
	}

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	empty, err := repo.CreateOrderTx(ctx, domain.Order{UserID: 1, Status: "pending", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Len(t, all[0].Items, 2)
	assert.Empty(t, all[1].Items)
	assert.Equal(t, empty.ID, all[1].ID)

	status := "shipped"
	later := now.Add(time.Hour)
	updated, err := repo.Update(ctx, created.ID, domain.OrderPatch{Status: &status}, later)
	require.NoError(t, err)
	assert.Equal(t, "shipped", updated.Status)
	assert.True(t, updated.UpdatedAt.Equal(later))
	assert.True(t, updated.CreatedAt.Equal(now))

	ok, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestOrderRepoCreateRollsBackOnBadItem(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepo(openTestDB(t))
	now := time.Now()

	_, err := repo.CreateOrderTx(ctx, domain.Order{
		UserID: 1,
		Status: "pending",
		Items: []domain.OrderItem{
			{ProductID: 1, Quantity: 1},
			{ProductID: 999, Quantity: 1},
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOrderRepoUpdateMissing(t *testing.T) {
	repo := NewOrderRepo(openTestDB(t))
	status := "paid"
	_, err := repo.Update(context.Background(), 77, domain.OrderPatch{Status: &status}, time.Now())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
