package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/swiftride/portal/internal/domain/payment"
	"github.com/swiftride/portal/internal/utils"
)

// PaymentsRepo is the in-memory twin of the postgres repo. Used in tests
// and in dev mode when no database is around.
type PaymentsRepo struct {
	mu       sync.RWMutex
	payments []payment.Payment
}

func NewPaymentsRepo() *PaymentsRepo {
	return &PaymentsRepo{}
}

func (r *PaymentsRepo) Add(p payment.Payment) {
	r.mu.Lock()
	r.payments = append(r.payments, p)
	r.mu.Unlock()
}

func (r *PaymentsRepo) ListByUser(
	_ context.Context,
	userID string,
	afterCreatedAt time.Time,
	afterID string,
	limit int,
) ([]payment.Payment, *string, bool, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	r.mu.RLock()

	matched := make([]payment.Payment, 0)

	for _, p := range r.payments {
		if p.UserID != userID {
			continue
		}

		matched = append(matched, p)
	}

	r.mu.RUnlock()

	// newest first, same ordering contract as the SQL version
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if !afterCreatedAt.IsZero() {
		filtered := matched[:0]

		for _, p := range matched {
			if p.CreatedAt.After(afterCreatedAt) {
				continue
			}

			if p.CreatedAt.Equal(afterCreatedAt) && p.ID >= afterID {
				continue
			}

			filtered = append(filtered, p)
		}

		matched = filtered
	}

	hasMore := len(matched) > limit

	if hasMore {
		matched = matched[:limit]
	}

	var next *string

	if hasMore && len(matched) > 0 {
		last := matched[len(matched)-1]

		cursor, err := utils.EncodePaymentCursor(last.CreatedAt, last.ID)

		if err != nil {
			return nil, nil, false, err
		}

		next = &cursor
	}

	return matched, next, hasMore, nil
}
