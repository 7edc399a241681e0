package payment

import "context"

// Session is a hosted checkout session created at the payment provider.
type Session struct {
	ID  string
	URL string
}

// Status is the provider-side state of a checkout session.
type Status struct {
	PaymentStatus string
	Amount        float64
	Currency      string
}

// WebhookEvent is a verified provider callback.
type WebhookEvent struct {
	Type      string
	SessionID string
}

// Gateway abstracts the external payment provider. The rest of the
// application never talks to the provider's API directly.
type Gateway interface {
	// CreateSession creates a hosted checkout session for the given
	// amount. Metadata is echoed back on webhooks and status polls.
	CreateSession(ctx context.Context, amount float64, currency, successURL, cancelURL string, metadata map[string]string) (*Session, error)

	// GetStatus fetches the current payment status of a session.
	GetStatus(ctx context.Context, sessionID string) (*Status, error)

	// VerifyWebhook checks the provider signature over the raw payload
	// and decodes the event. An invalid or stale signature is an error.
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}
