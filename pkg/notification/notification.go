// Package notification dispatches application notifications through
// outbound channels. The only channel wired today is "webhook", used to
// push order events to an external system (kitchen display, bot bridge).
//
// Define a Notification:
//
//	type OrderCreated struct { Order models.Order }
//	func (n *OrderCreated) Via() []string { return []string{"webhook"} }
//	func (n *OrderCreated) ToWebhook() notification.WebhookData {
//	    return notification.WebhookData{
//	        URL:     config.OrderWebhookURL(),
//	        Payload: map[string]any{"event": "order.created", "order": n.Order},
//	    }
//	}
//
// Send:
//
//	notification.SendAsync(&OrderCreated{Order: order})
package notification

import (
	"fmt"
	"time"

	"github.com/putrawardana/warungsaji/pkg/http"
	"github.com/putrawardana/warungsaji/pkg/logger"
)

// WebhookData carries an arbitrary JSON payload to POST to a URL.
type WebhookData struct {
	URL     string
	Payload interface{}
	Headers map[string]string
}

// Notification is the interface every notification must satisfy.
type Notification interface {
	// Via returns the list of channel names. Supported: "webhook".
	Via() []string
}

// Webhookable can be implemented to support the webhook channel.
type Webhookable interface {
	ToWebhook() WebhookData
}

// Send dispatches the notification through all channels returned by Via().
func Send(n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := dispatch(channel, n); err != nil {
			logger.Error("notification: channel failed",
				"channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// SendAsync dispatches the notification in a background goroutine.
// Errors are logged, never returned.
func SendAsync(n Notification) {
	go func() {
		if errs := Send(n); len(errs) > 0 {
			for _, e := range errs {
				logger.Error("notification: async error", "error", e)
			}
		}
	}()
}

func dispatch(channel string, n Notification) error {
	switch channel {
	case "webhook":
		wh, ok := n.(Webhookable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Webhookable", n)
		}
		return sendWebhook(wh.ToWebhook())

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

func sendWebhook(d WebhookData) error {
	if d.URL == "" {
		return fmt.Errorf("notification: webhook URL is empty")
	}

	resp, err := http.Post(d.URL).
		Headers(d.Headers).
		Body(d.Payload).
		Timeout(10 * time.Second).
		Retry(3, 500*time.Millisecond).
		Send()
	if err != nil {
		return fmt.Errorf("notification: webhook send: %w", err)
	}
	return resp.Throw()
}
