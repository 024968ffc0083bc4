package forward

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"tradegate/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/trace"
)

const defaultTimeout = 30 * time.Second

// Event is the envelope posted to the downstream agent.
type Event struct {
	ReceivedAt int64           `json:"received_at"`
	Source     string          `json:"source"`
	Payload    domain.Alert    `json:"payload"`
	Decision   domain.Decision `json:"decision"`
}

// Forwarder posts accepted decisions to a downstream agent URL, signing the
// body with HMAC-SHA256 when a secret is configured.
type Forwarder struct {
	tracer trace.Tracer
	client *resty.Client
	url    string
	secret string
}

func New(tracer trace.Tracer, url, secret string) *Forwarder {
	if url == "" {
		return nil
	}
	client := resty.New().SetTimeout(defaultTimeout)
	return &Forwarder{tracer: tracer, client: client, url: url, secret: secret}
}

func (f *Forwarder) Forward(ctx context.Context, alert domain.Alert, decision domain.Decision) error {
	if f == nil {
		return nil
	}

	_, span := f.tracer.Start(ctx, "forward.post-event")
	defer span.End()

	event := Event{
		ReceivedAt: decision.ReceivedAt.Unix(),
		Source:     "tradingview",
		Payload:    alert,
		Decision:   decision,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req := f.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if f.secret != "" {
		req.SetHeader("X-Signature", Sign(f.secret, body))
	}

	resp, err := req.Post(f.url)
	if err != nil {
		return fmt.Errorf("post event: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("post event: downstream returned %s", resp.Status())
	}
	return nil
}

// Sign returns the hex HMAC-SHA256 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
