package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dwikikusuma/phone-shop/internal/order/domain"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
	"github.com/dwikikusuma/phone-shop/pkg/sqldb"
)

const orderColumns = `id, user_id, status, total_amount, created_at, updated_at`

type OrderRepo struct {
	db *sqldb.DB
}

func NewOrderRepo(db *sqldb.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o                  domain.Order
		created, updatedAt int64
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &created, &updatedAt); err != nil {
		return domain.Order{}, err
	}
	o.CreatedAt = sqldb.FromMillis(created)
	o.UpdatedAt = sqldb.FromMillis(updatedAt)
	o.Items = []domain.OrderItem{}
	return o, nil
}

func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	var created domain.Order

	err := r.db.InTx(ctx, func(c sqldb.Conn) error {
		o, err := scanOrder(c.QueryRow(ctx,
			`INSERT INTO orders (user_id, status, total_amount, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?)
			 RETURNING `+orderColumns,
			order.UserID, order.Status, order.TotalAmount, sqldb.ToMillis(order.CreatedAt), sqldb.ToMillis(order.UpdatedAt),
		))
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i, item := range order.Items {
			var id int64
			err := c.QueryRow(ctx,
				`INSERT INTO order_items (order_id, product_id, quantity) VALUES (?, ?, ?) RETURNING id`,
				o.ID, item.ProductID, item.Quantity,
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("failed to insert item %d: %w", i, err)
			}

			o.Items = append(o.Items, domain.OrderItem{
				ID:        id,
				OrderID:   o.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		created = o
		return nil
	})
	if sqldb.IsForeignKeyViolation(err) {
		return domain.Order{}, apperr.Invalid("order references a user or product that does not exist")
	}
	if err != nil {
		return domain.Order{}, apperr.Store(err, "creating order")
	}
	return created, nil
}

func (r *OrderRepo) Get(ctx context.Context, id int64) (domain.Order, error) {
	return r.get(ctx, r.db.Conn, id)
}

func (r *OrderRepo) get(ctx context.Context, c sqldb.Conn, id int64) (domain.Order, error) {
	o, err := scanOrder(c.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, apperr.NotFound("Order with ID %d not found", id)
	}
	if err != nil {
		return domain.Order{}, apperr.Store(err, "fetching order")
	}

	byOrder, err := r.items(ctx, c, `WHERE order_id = ?`, id)
	if err != nil {
		return domain.Order{}, err
	}
	if items, ok := byOrder[o.ID]; ok {
		o.Items = items
	}
	return o, nil
}

func (r *OrderRepo) items(ctx context.Context, c sqldb.Conn, where string, args ...any) (map[int64][]domain.OrderItem, error) {
	rows, err := c.Query(ctx, `SELECT id, order_id, product_id, quantity FROM order_items `+where+` ORDER BY order_id, id`, args...)
	if err != nil {
		return nil, apperr.Store(err, "fetching order items")
	}
	defer rows.Close()

	out := make(map[int64][]domain.OrderItem)
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity); err != nil {
			return nil, apperr.Store(err, "fetching order items")
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store(err, "fetching order items")
	}
	return out, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
	if err != nil {
		return nil, apperr.Store(err, "fetching orders")
	}

	orders := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, apperr.Store(err, "fetching orders")
		}
		orders = append(orders, o)
	}
	// close before the items query; SQLite runs on a single connection
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperr.Store(err, "fetching orders")
	}
	if len(orders) == 0 {
		return orders, nil
	}

	byOrder, err := r.items(ctx, r.db.Conn, "")
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if items, ok := byOrder[orders[i].ID]; ok {
			orders[i].Items = items
		}
	}
	return orders, nil
}

func (r *OrderRepo) Update(ctx context.Context, id int64, patch domain.OrderPatch, at time.Time) (domain.Order, error) {
	var updated domain.Order

	err := r.db.InTx(ctx, func(c sqldb.Conn) error {
		current, err := r.get(ctx, c, id)
		if err != nil {
			return err
		}

		next := patch.Apply(current)
		next.UpdatedAt = at.UTC()
		_, err = c.Exec(ctx, `UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
			next.Status, sqldb.ToMillis(next.UpdatedAt), id)
		if err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return domain.Order{}, apperr.Store(err, "updating order")
	}
	return updated, nil
}

func (r *OrderRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool

	err := r.db.InTx(ctx, func(c sqldb.Conn) error {
		if _, err := c.Exec(ctx, `DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
			return err
		}
		res, err := c.Exec(ctx, `DELETE FROM orders WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		return false, apperr.Store(err, "deleting order")
	}
	return deleted, nil
}
