package model

import "time"

// PaymentStatus is the lifecycle of an external payment session.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentInitiated PaymentStatus = "initiated"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// PaymentTransaction links an order to an external payment session.
// The transition into completed happens at most once.
type PaymentTransaction struct {
	ID            string        `json:"id" db:"id"`
	UserID        string        `json:"userId" db:"user_id"`
	OrderID       string        `json:"orderId" db:"order_id"`
	SessionID     string        `json:"sessionId" db:"session_id"`
	Amount        float64       `json:"amount" db:"amount"`
	Currency      string        `json:"currency" db:"currency"`
	PaymentStatus PaymentStatus `json:"paymentStatus" db:"payment_status"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`
}

// CheckoutSessionRequest is the payload for starting an external payment.
type CheckoutSessionRequest struct {
	OrderID   string `json:"orderId"`
	OriginURL string `json:"originUrl"`
}

// CheckoutSessionResponse is returned when a payment session is created.
type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CheckoutStatusResponse is returned when polling a payment session.
type CheckoutStatusResponse struct {
	PaymentStatus string  `json:"paymentStatus"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	OrderID       string  `json:"orderId"`
}
