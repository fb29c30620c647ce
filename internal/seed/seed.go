// Package seed loads the sample phone catalog and accounts.
package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	catalogapp "github.com/dwikikusuma/phone-shop/internal/catalog/app"
	userapp "github.com/dwikikusuma/phone-shop/internal/user/app"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
	"github.com/dwikikusuma/phone-shop/pkg/sqldb"
)

type Seeder struct {
	db      *sqldb.DB
	catalog *catalogapp.Service
	users   *userapp.Service
	log     *slog.Logger
}

func New(db *sqldb.DB, catalog *catalogapp.Service, users *userapp.Service, log *slog.Logger) *Seeder {
	return &Seeder{db: db, catalog: catalog, users: users, log: log}
}

type Result struct {
	Products int
	Users    int
}

// Seed inserts the sample data. Each entity is skipped when its table already has rows.
func (s *Seeder) Seed(ctx context.Context) (Result, error) {
	var res Result

	n, err := s.catalog.CountProducts(ctx)
	if err != nil {
		return res, err
	}
	if n > 0 {
		s.log.InfoContext(ctx, "skipping product seeding", slog.Int("existing", n))
	} else {
		for _, p := range Phones {
			if _, err := s.catalog.CreateProduct(ctx, p); err != nil {
				return res, fmt.Errorf("seed product %q: %w", p.Name, err)
			}
			res.Products++
		}
		s.log.InfoContext(ctx, "seeded products", slog.Int("count", res.Products))
	}

	n, err = s.users.CountUsers(ctx)
	if err != nil {
		return res, err
	}
	if n > 0 {
		s.log.InfoContext(ctx, "skipping user seeding", slog.Int("existing", n))
	} else {
		for _, u := range Users {
			if _, err := s.users.CreateUser(ctx, u); err != nil {
				return res, fmt.Errorf("seed user %q: %w", u.Username, err)
			}
			res.Users++
		}
		s.log.InfoContext(ctx, "seeded users", slog.Int("count", res.Users))
	}

	return res, nil
}

// Clear deletes every product and user. Orders go with them since they
// reference both.
func (s *Seeder) Clear(ctx context.Context) error {
	err := s.db.InTx(ctx, func(c sqldb.Conn) error {
		for _, table := range []string{"order_items", "orders", "products", "users"} {
			if _, err := c.Exec(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return apperr.Store(err, "clearing database")
	}
	s.log.InfoContext(ctx, "database cleared")
	return nil
}

// ListProducts writes a human readable listing of the catalog to w.
func (s *Seeder) ListProducts(ctx context.Context, w io.Writer) error {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "--- Current Products in Database ---")
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return nil
	}
	for _, p := range products {
		desc := truncate(p.Description, 100)
		fmt.Fprintf(w, "ID: %d\n  Name: %s\n  Price: $%.2f\n  Stock: %d\n  Description: %s\n\n",
			p.ID, p.Name, p.Price, p.Stock, desc)
	}
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
