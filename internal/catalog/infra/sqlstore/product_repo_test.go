package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dwikikusuma/phone-shop/internal/catalog/domain"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
	"github.com/dwikikusuma/phone-shop/pkg/sqldb"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqldb.DB {
	t.Helper()
	db, err := sqldb.Open(context.Background(), "sqlite:"+filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func ptr[T any](v T) *T { return &v }

func TestProductRepoCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepo(openTestDB(t))

	img := "https://example.com/pixel8pro.jpg"
	created, err := repo.Create(ctx, domain.Product{Name: "Google Pixel 8 Pro", Description: "Tensor G3", Price: 999.99, Stock: 60, ImageURL: &img})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.NotNil(t, created.ImageURL)
	assert.Equal(t, img, *created.ImageURL)

	second, err := repo.Create(ctx, domain.Product{Name: "Nothing Phone (2)", Price: 599.99, Stock: 55})
	require.NoError(t, err)
	assert.Nil(t, second.ImageURL)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, created.ID, all[0].ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	updated, err := repo.Update(ctx, created.ID, domain.ProductPatch{Price: ptr(899.99), Stock: ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, "Google Pixel 8 Pro", updated.Name)
	assert.Equal(t, 899.99, updated.Price)
	assert.Equal(t, 5, updated.Stock)

	reread, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, reread)

	ok, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)

	_, err = repo.Update(ctx, created.ID, domain.ProductPatch{Stock: ptr(1)})
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
}

func TestProductRepoEmptyList(t *testing.T) {
	repo := NewProductRepo(openTestDB(t))
	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestProductRepoPostgresQueries(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	repo := NewProductRepo(sqldb.New(sqlDB, sqldb.Postgres))
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "price", "stock", "image_url"}).
		AddRow(1, "iPhone 15", "A16 Bionic", 799.99, 75, nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, price, stock, image_url FROM products WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	p, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "iPhone 15", p.Name)
	assert.Nil(t, p.ImageURL)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, price, stock, image_url FROM products WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "stock", "image_url"}))

	_, err = repo.Get(ctx, 2)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnError(&pq.Error{Code: "23503", Message: `update or delete on table "products" violates foreign key constraint`})

	_, err = repo.Delete(ctx, 3)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument), "got %v", err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, price, stock, image_url FROM products ORDER BY id")).
		WillReturnError(errors.New("pq: connection refused"))

	_, err = repo.List(ctx)
	assert.True(t, errors.Is(err, apperr.ErrStoreFailure), "got %v", err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
