package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dwikikusuma/phone-shop/internal/user/domain"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
	"github.com/dwikikusuma/phone-shop/pkg/sqldb"
)

const userColumns = `id, username, email, password_hash, is_active, created_at`

type UserRepo struct {
	db *sqldb.DB
}

func NewUserRepo(db *sqldb.DB) *UserRepo {
	return &UserRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u       domain.User
		created int64
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &created); err != nil {
		return domain.User{}, err
	}
	u.CreatedAt = sqldb.FromMillis(created)
	return u, nil
}

func mapWriteErr(err error, op string) error {
	if sqldb.IsUniqueViolation(err) {
		return apperr.Invalid("Username or email already registered")
	}
	return apperr.Store(err, op)
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING `+userColumns,
		u.Username, u.Email, u.PasswordHash, u.IsActive, sqldb.ToMillis(u.CreatedAt),
	)
	created, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapWriteErr(err, "creating user")
	}
	return created, nil
}

func (r *UserRepo) Get(ctx context.Context, id int64) (domain.User, error) {
	return r.get(ctx, r.db.Conn, id)
}

func (r *UserRepo) get(ctx context.Context, c sqldb.Conn, id int64) (domain.User, error) {
	u, err := scanUser(c.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperr.NotFound("User with ID %d not found", id)
	}
	if err != nil {
		return domain.User{}, apperr.Store(err, "fetching user")
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperr.NotFound("User with email %s not found", email)
	}
	if err != nil {
		return domain.User{}, apperr.Store(err, "fetching user")
	}
	return u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, apperr.Store(err, "fetching users")
	}
	defer rows.Close()

	out := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperr.Store(err, "fetching users")
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store(err, "fetching users")
	}
	return out, nil
}

func (r *UserRepo) Update(ctx context.Context, id int64, patch domain.UserPatch) (domain.User, error) {
	var updated domain.User

	err := r.db.InTx(ctx, func(c sqldb.Conn) error {
		current, err := r.get(ctx, c, id)
		if err != nil {
			return err
		}

		next := patch.Apply(current)
		_, err = c.Exec(ctx,
			`UPDATE users SET username = ?, email = ?, password_hash = ?, is_active = ? WHERE id = ?`,
			next.Username, next.Email, next.PasswordHash, next.IsActive, id,
		)
		if err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return domain.User{}, mapWriteErr(err, "updating user")
	}
	return updated, nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, apperr.Store(err, "deleting user")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperr.Store(err, "deleting user")
	}
	return n > 0, nil
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, apperr.Store(err, "counting users")
	}
	return n, nil
}
