package payment

import "time"

type Status string

const (
	StatusCompleted Status = "completed"
	StatusRefunded  Status = "refunded"
	StatusFailed    Status = "failed"
)

type Method string

const (
	MethodCard   Method = "card"
	MethodCash   Method = "cash"
	MethodWallet Method = "wallet"
)

// Payment is one row of the payment-history panel. Amounts are integer
// cents; never floats.
type Payment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	RideID      string    `json:"rideId"`
	AmountCents int64     `json:"amountCents"`
	Currency    string    `json:"currency"`
	Method      Method    `json:"method"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
