package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	stripeAPIBase = "https://api.stripe.com/v1"

	// Webhook timestamps further than this from now, in either
	// direction, are rejected to limit replay.
	signatureTolerance = 5 * time.Minute
)

// stripeGateway implements Gateway against the Stripe Checkout API using
// form-encoded HTTP calls.
type stripeGateway struct {
	apiKey        string
	webhookSecret string
	baseURL       string
	client        *http.Client
	logger        zerolog.Logger
	now           func() time.Time
}

// NewStripeGateway creates a Stripe-backed payment gateway.
func NewStripeGateway(apiKey, webhookSecret string, logger zerolog.Logger) Gateway {
	return &stripeGateway{
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		baseURL:       stripeAPIBase,
		client:        &http.Client{Timeout: 10 * time.Second},
		logger:        logger.With().Str("gateway", "stripe").Logger(),
		now:           time.Now,
	}
}

type stripeSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (g *stripeGateway) CreateSession(ctx context.Context, amount float64, currency, successURL, cancelURL string, metadata map[string]string) (*Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", currency)
	form.Set("line_items[0][price_data][product_data][name]", "Order payment")
	// Stripe amounts are in the currency's smallest unit.
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(int64(amount*100+0.5), 10))
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var session stripeSession
	if err := g.post(ctx, "/checkout/sessions", form, &session); err != nil {
		return nil, err
	}

	g.logger.Debug().Str("session_id", session.ID).Msg("checkout session created")
	return &Session{ID: session.ID, URL: session.URL}, nil
}

func (g *stripeGateway) GetStatus(ctx context.Context, sessionID string) (*Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+"/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	var session stripeSession
	if err := g.do(req, &session); err != nil {
		return nil, err
	}

	return &Status{
		PaymentStatus: session.PaymentStatus,
		Amount:        float64(session.AmountTotal) / 100,
		Currency:      session.Currency,
	}, nil
}

// VerifyWebhook validates Stripe's "t=...,v1=..." signature header: the
// v1 value is HMAC-SHA256(secret, "<t>.<payload>").
func (g *stripeGateway) VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	var timestamp string
	var candidates []string
	for _, part := range strings.Split(signature, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			candidates = append(candidates, value)
		}
	}
	if timestamp == "" || len(candidates) == 0 {
		return nil, fmt.Errorf("malformed webhook signature header")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook timestamp: %w", err)
	}
	if skew := g.now().Sub(time.Unix(ts, 0)); skew > signatureTolerance || skew < -signatureTolerance {
		return nil, fmt.Errorf("webhook timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	valid := false
	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("webhook signature mismatch")
	}

	var event struct {
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID string `json:"id"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to decode webhook event: %w", err)
	}

	return &WebhookEvent{Type: event.Type, SessionID: event.Data.Object.ID}, nil
}

func (g *stripeGateway) post(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return g.do(req, out)
}

func (g *stripeGateway) do(req *http.Request, out any) error {
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr stripeError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			g.logger.Error().
				Int("status", resp.StatusCode).
				Str("type", apiErr.Error.Type).
				Msg("stripe API error")
			return fmt.Errorf("stripe API error: %s", apiErr.Error.Message)
		}
		return fmt.Errorf("stripe API error: status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode stripe response: %w", err)
	}
	return nil
}
