package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shopfront/internal/model"

	"github.com/rs/zerolog"
)

const graphAPIBase = "https://graph.facebook.com/v18.0"

// whatsAppNotifier sends order notifications through the WhatsApp
// Business Cloud API. Delivery is fire-and-forget.
type whatsAppNotifier struct {
	token         string
	phoneNumberID string
	baseURL       string
	client        *http.Client
	logger        zerolog.Logger
}

// NewWhatsApp creates a WhatsApp-backed order notifier.
func NewWhatsApp(token, phoneNumberID string, logger zerolog.Logger) Notifier {
	return &whatsAppNotifier{
		token:         token,
		phoneNumberID: phoneNumberID,
		baseURL:       graphAPIBase,
		client:        &http.Client{Timeout: 10 * time.Second},
		logger:        logger.With().Str("notifier", "whatsapp").Logger(),
	}
}

func (n *whatsAppNotifier) OrderCreated(ctx context.Context, order *model.Order) {
	text := fmt.Sprintf(
		"New order %s\nCustomer: %s (%s)\nItems: %d\nTotal: %.2f (shipping %.2f)\nShip to: %s, %s",
		order.ID, order.CustomerName, order.CustomerPhone,
		len(order.Items), order.TotalAmount, order.ShippingCost,
		order.ShippingAddress, order.ShippingRegion,
	)

	payload, err := json.Marshal(map[string]any{
		"messaging_product": "whatsapp",
		"to":                order.CustomerPhone,
		"type":              "text",
		"text":              map[string]string{"body": text},
	})
	if err != nil {
		n.logger.Error().Err(err).Msg("failed to encode notification")
		return
	}

	url := fmt.Sprintf("%s/%s/messages", n.baseURL, n.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		n.logger.Error().Err(err).Msg("failed to build notification request")
		return
	}
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn().Err(err).Str("order_id", order.ID.String()).Msg("order notification failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		n.logger.Warn().
			Int("status", resp.StatusCode).
			Str("order_id", order.ID.String()).
			Msg("order notification rejected")
		return
	}

	n.logger.Debug().Str("order_id", order.ID.String()).Msg("order notification sent")
}
