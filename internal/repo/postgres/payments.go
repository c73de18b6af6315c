package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/swiftride/portal/internal/domain/payment"
	"github.com/swiftride/portal/internal/observability"
	"github.com/swiftride/portal/internal/utils"
)

type PaymentsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewPaymentsRepo(pool *pgxpool.Pool, prom *observability.Prom) *PaymentsRepo {
	return &PaymentsRepo{pool: pool, prom: prom}
}

// ListByUser pages through a viewer's payments, newest first, keyset on
// (created_at, id). A zero afterCreatedAt means "from the top".
func (r *PaymentsRepo) ListByUser(
	ctx context.Context,
	userID string,
	afterCreatedAt time.Time,
	afterID string,
	limit int,
) ([]payment.Payment, *string, bool, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var payments []payment.Payment

	err := r.prom.ObserveDB("payments.list_by_user", func() error {
		// fetch one extra row to learn whether more pages exist
		rows, err := r.pool.Query(
			ctx,
			`SELECT id, user_id, ride_id, amount_cents, currency, method, status, created_at
			 FROM payments
			 WHERE user_id = $1
			   AND ($2::timestamptz IS NULL OR (created_at, id) < ($2, $3))
			 ORDER BY created_at DESC, id DESC
			 LIMIT $4`,
			userID, nullableTime(afterCreatedAt), afterID, limit+1,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var p payment.Payment
			var method, status string

			err := rows.Scan(
				&p.ID,
				&p.UserID,
				&p.RideID,
				&p.AmountCents,
				&p.Currency,
				&method,
				&status,
				&p.CreatedAt,
			)

			if err != nil {
				return err
			}

			p.Method = payment.Method(method)
			p.Status = payment.Status(status)

			payments = append(payments, p)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, nil, false, err
	}

	hasMore := len(payments) > limit

	if hasMore {
		payments = payments[:limit]
	}

	var next *string

	if hasMore && len(payments) > 0 {
		last := payments[len(payments)-1]

		cursor, err := utils.EncodePaymentCursor(last.CreatedAt, last.ID)

		if err != nil {
			return nil, nil, false, err
		}

		next = &cursor
	}

	return payments, next, hasMore, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
