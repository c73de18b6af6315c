package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

type PaymentCursor struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
}

func EncodePaymentCursor(createdAt time.Time, id string) (string, error) {
	b, err := json.Marshal(PaymentCursor{CreatedAt: createdAt, ID: id})
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func DecodePaymentCursor(cursor string) (PaymentCursor, error) {
	if cursor == "" {
		return PaymentCursor{}, errors.New("empty cursor")
	}

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return PaymentCursor{}, err
	}

	var c PaymentCursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return PaymentCursor{}, err
	}
	if c.ID == "" || c.CreatedAt.IsZero() {
		return PaymentCursor{}, errors.New("invalid cursor payload")
	}
	return c, nil
}
