// Package webhook posts order events to the internal integration endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/integration"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/logger"
)

// SecretHeader carries the shared secret on every delivery
const SecretHeader = "X-Webhook-Secret"

// Emitter delivers order status webhooks. Deliveries are single attempt.
type Emitter struct {
	url        string
	secret     string
	httpClient *http.Client
}

// NewEmitter creates a webhook emitter for the given endpoint
func NewEmitter(url, secret string, timeout time.Duration) *Emitter {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Emitter{
		url:        url,
		secret:     secret,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// OrderStatusChanged posts the payload and fails on any non-2xx answer
func (e *Emitter) OrderStatusChanged(ctx context.Context, payload integration.OrderStatusPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.secret != "" {
		req.Header.Set(SecretHeader, e.secret)
	}
	if requestID := logger.RequestIDFrom(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	logger.FromCtx(ctx).Info("order status webhook delivered",
		zap.String("order_id", payload.OrderID),
		zap.String("new_status", payload.NewStatus),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
