package cartgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/logger"
)

const serviceName = "cart-service"

// LineItem is the payload sent when adding a line item to a cart.
type LineItem struct {
	VariantID string                       `json:"variant_id"`
	Quantity  int                          `json:"quantity"`
	Metadata  *domain.LineItemAugmentation `json:"metadata,omitempty"`
}

// StatusError is returned when the cart service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cart service returned %d: %s", e.StatusCode, e.Body)
}

// Client talks to the external cart service.
type Client struct {
	baseURL        string
	publishableKey string
	http           *http.Client
}

func NewClient(baseURL, publishableKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		publishableKey: publishableKey,
		http:           &http.Client{Timeout: timeout},
	}
}

// AddLineItem posts item to the cart and returns the raw cart document.
func (c *Client) AddLineItem(ctx context.Context, cartID string, item LineItem) (json.RawMessage, error) {
	logger.ExternalServiceCall(serviceName, "AddLineItem", "cartID", cartID, "variantID", item.VariantID)

	body, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("failed to encode line item: %w", err)
	}

	endpoint := fmt.Sprintf("%s/store/carts/%s/line-items", c.baseURL, url.PathEscape(cartID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.publishableKey != "" {
		req.Header.Set("x-publishable-api-key", c.publishableKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.ExternalServiceResult(serviceName, "AddLineItem", err, "cartID", cartID)
		return nil, fmt.Errorf("cart service request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read cart service response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
		logger.ExternalServiceResult(serviceName, "AddLineItem", err, "cartID", cartID)
		return nil, err
	}

	logger.ExternalServiceResult(serviceName, "AddLineItem", nil, "cartID", cartID, "status", resp.StatusCode)
	return json.RawMessage(respBody), nil
}
