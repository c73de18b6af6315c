package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/swiftride/portal/internal/domain/identity"
	"github.com/swiftride/portal/internal/observability"
)

var ErrUserNotFound = errors.New("user not found")

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

const userColumns = `
	u.id, u.email, u.password_hash, u.name, u.role, u.created_at, u.updated_at,
	d.is_available`

// scanUser maps one joined row. The driver_profiles join is LEFT so
// non-drivers scan a NULL availability and get no DriverInfo.
func scanUser(row pgx.Row) (identity.User, error) {
	var u identity.User
	var role string
	var isAvailable *bool

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Profile.Name,
		&role,
		&u.CreatedAt,
		&u.UpdatedAt,
		&isAvailable,
	)

	if err != nil {
		return identity.User{}, err
	}

	u.Role = identity.Role(role)

	if u.Role == identity.RoleDriver && isAvailable != nil {
		u.DriverInfo = &identity.DriverInfo{IsAvailable: *isAvailable}
	}

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (identity.User, error) {
	var u identity.User

	err := r.prom.ObserveDB("users.get_by_id", func() error {
		var err error
		u, err = scanUser(r.pool.QueryRow(
			ctx,
			`SELECT `+userColumns+`
			 FROM users u
			 LEFT JOIN driver_profiles d ON d.user_id = u.id
			 WHERE u.id = $1`,
			id,
		))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.User{}, ErrUserNotFound
		}

		return identity.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (identity.User, error) {
	var u identity.User

	err := r.prom.ObserveDB("users.get_by_email", func() error {
		var err error
		u, err = scanUser(r.pool.QueryRow(
			ctx,
			`SELECT `+userColumns+`
			 FROM users u
			 LEFT JOIN driver_profiles d ON d.user_id = u.id
			 WHERE u.email = $1`,
			email,
		))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.User{}, ErrUserNotFound
		}

		return identity.User{}, err
	}
	return u, nil
}

// List returns users ordered by creation time, newest first. Admin area only.
func (r *UsersRepo) List(ctx context.Context, limit int) ([]identity.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var users []identity.User

	err := r.prom.ObserveDB("users.list", func() error {
		rows, err := r.pool.Query(
			ctx,
			`SELECT `+userColumns+`
			 FROM users u
			 LEFT JOIN driver_profiles d ON d.user_id = u.id
			 ORDER BY u.created_at DESC, u.id DESC
			 LIMIT $1`,
			limit,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			u, err := scanUser(rows)

			if err != nil {
				return err
			}

			users = append(users, u)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return users, nil
}

// SetDriverAvailability upserts the driver profile row. The caller is
// responsible for checking the user actually is a driver.
func (r *UsersRepo) SetDriverAvailability(ctx context.Context, userID string, available bool) error {
	return r.prom.ObserveDB("users.set_driver_availability", func() error {
		tag, err := r.pool.Exec(
			ctx,
			`INSERT INTO driver_profiles (user_id, is_available, updated_at)
			 VALUES ($1, $2, now())
			 ON CONFLICT (user_id)
			 DO UPDATE SET is_available = EXCLUDED.is_available, updated_at = now()`,
			userID, available,
		)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}
