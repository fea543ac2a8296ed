package alerts

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Notifier delivers a low-stock alert somewhere a person will see it.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// Alert is the payload sent for one low-stock check.
type Alert struct {
	Threshold int         `json:"threshold"`
	Message   string      `json:"message"`
	Items     []AlertItem `json:"items"`
	CheckedAt time.Time   `json:"checked_at"`
}

// AlertItem is one item below the threshold.
type AlertItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Supplier string `json:"supplier"`
}

// WebhookNotifier POSTs alerts as JSON to a fixed URL.
type WebhookNotifier struct {
	httpClient *resty.Client
	url        string
}

// NewWebhookNotifier builds a resty-backed notifier for url.
func NewWebhookNotifier(url string) *WebhookNotifier {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookNotifier{httpClient: client, url: url}
}

func (n *WebhookNotifier) Notify(ctx context.Context, alert Alert) error {
	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("post low-stock alert: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("alert webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}
	return nil
}

// LogNotifier writes alerts to the log when no webhook is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, alert Alert) error {
	n.logger.Warn(alert.Message, zap.Int("threshold", alert.Threshold), zap.Int("items", len(alert.Items)))
	return nil
}
