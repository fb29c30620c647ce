package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dwikikusuma/phone-shop/internal/catalog/domain"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
	"github.com/dwikikusuma/phone-shop/pkg/sqldb"
)

const productColumns = `id, name, description, price, stock, image_url`

type ProductRepo struct {
	db *sqldb.DB
}

func NewProductRepo(db *sqldb.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p   domain.Product
		img sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &img); err != nil {
		return domain.Product{}, err
	}
	if img.Valid {
		p.ImageURL = &img.String
	}
	return p, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO products (name, description, price, stock, image_url)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING `+productColumns,
		p.Name, p.Description, p.Price, p.Stock, nullString(p.ImageURL),
	)
	created, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, apperr.Store(err, "creating product")
	}
	return created, nil
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	return r.get(ctx, r.db.Conn, id)
}

func (r *ProductRepo) get(ctx context.Context, c sqldb.Conn, id int64) (domain.Product, error) {
	p, err := scanProduct(c.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperr.NotFound("Product with ID %d not found", id)
	}
	if err != nil {
		return domain.Product{}, apperr.Store(err, "fetching product")
	}
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, apperr.Store(err, "fetching products")
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, apperr.Store(err, "fetching products")
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store(err, "fetching products")
	}
	return out, nil
}

func (r *ProductRepo) Update(ctx context.Context, id int64, patch domain.ProductPatch) (domain.Product, error) {
	var updated domain.Product

	err := r.db.InTx(ctx, func(c sqldb.Conn) error {
		current, err := r.get(ctx, c, id)
		if err != nil {
			return err
		}

		next := patch.Apply(current)
		_, err = c.Exec(ctx,
			`UPDATE products SET name = ?, description = ?, price = ?, stock = ?, image_url = ? WHERE id = ?`,
			next.Name, next.Description, next.Price, next.Stock, nullString(next.ImageURL), id,
		)
		if err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return domain.Product{}, apperr.Store(err, "updating product")
	}
	return updated, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = ?`, id)
	if sqldb.IsForeignKeyViolation(err) {
		return false, apperr.Invalid("Product with ID %d is referenced by existing orders", id)
	}
	if err != nil {
		return false, apperr.Store(err, "deleting product")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperr.Store(err, "deleting product")
	}
	return n > 0, nil
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, apperr.Store(err, "counting products")
	}
	return n, nil
}
