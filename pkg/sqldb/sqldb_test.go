package sqldb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := "SELECT id FROM products WHERE name = ? AND note <> '?' AND stock > ?"
	assert.Equal(t, "SELECT id FROM products WHERE name = $1 AND note <> '?' AND stock > $2", Rebind(Postgres, q))
	assert.Equal(t, q, Rebind(SQLite, q))
}

func TestParseURL(t *testing.T) {
	cases := []struct {
		in      string
		driver  string
		dialect Dialect
		dsn     string
	}{
		{"postgres://u:p@localhost:5432/shop?sslmode=disable", "postgres", Postgres, "postgres://u:p@localhost:5432/shop?sslmode=disable"},
		{"sqlite:///./phone_ecommerce.db", "sqlite", SQLite, "./phone_ecommerce.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"sqlite::memory:", "sqlite", SQLite, ":memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"/tmp/shop.db", "sqlite", SQLite, "/tmp/shop.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"file:shop.db?cache=shared", "sqlite", SQLite, "file:shop.db?cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			driver, dsn, dialect, err := parseURL(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.driver, driver)
			assert.Equal(t, tc.dialect, dialect)
			assert.Equal(t, tc.dsn, dsn)
		})
	}

	_, _, _, err := parseURL("  ")
	assert.Error(t, err)
	_, _, _, err = parseURL("sqlite:")
	assert.Error(t, err)
}

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), "sqlite:"+filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenAppliesMigrationsOnce(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()

	require.NoError(t, db.Migrate(ctx))

	var n int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)

	_, err := db.Exec(ctx, `INSERT INTO products (name, description, price, stock) VALUES (?, ?, ?, ?)`, "Pixel 8a", "", 499.99, 80)
	require.NoError(t, err)
}

func TestInTxRollsBack(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.InTx(ctx, func(c Conn) error {
		if _, err := c.Exec(ctx, `INSERT INTO products (name, description, price, stock) VALUES (?, ?, ?, ?)`, "Tmp", "", 1.0, 1); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n))
	assert.Zero(t, n)
}

func TestViolationMatchers(t *testing.T) {
	t.Run("postgres codes", func(t *testing.T) {
		unique := fmt.Errorf("insert user: %w", &pq.Error{Code: "23505", Message: "anything"})
		fk := &pq.Error{Code: "23503"}
		assert.True(t, IsUniqueViolation(unique))
		assert.False(t, IsForeignKeyViolation(unique))
		assert.True(t, IsForeignKeyViolation(fk))
		assert.False(t, IsUniqueViolation(fk))
	})

	t.Run("sqlite codes", func(t *testing.T) {
		db := openTemp(t)
		ctx := context.Background()
		insertUser := `INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)`

		_, err := db.Exec(ctx, insertUser, "alice", "alice@example.com", "x", 1)
		require.NoError(t, err)
		_, err = db.Exec(ctx, insertUser, "alice2", "alice@example.com", "x", 1)
		require.Error(t, err)
		assert.True(t, IsUniqueViolation(err), err.Error())
		assert.False(t, IsForeignKeyViolation(err))

		_, err = db.Exec(ctx, `INSERT INTO orders (user_id, status, total_amount, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`, 999, "pending", 0, 1, 1)
		require.Error(t, err)
		assert.True(t, IsForeignKeyViolation(err), err.Error())
		assert.False(t, IsUniqueViolation(err))
	})

	t.Run("message text alone does not match", func(t *testing.T) {
		assert.False(t, IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "users_email_key"`)))
		assert.False(t, IsForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")))
		assert.False(t, IsUniqueViolation(nil))
	})
}

func TestMillisRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 30, 0, 123_000_000, time.UTC)
	assert.True(t, now.Equal(FromMillis(ToMillis(now))))
}
