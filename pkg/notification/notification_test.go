package notification_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/putrawardana/warungsaji/pkg/http"
	"github.com/putrawardana/warungsaji/pkg/notification"
	"github.com/putrawardana/warungsaji/pkg/testkit"
)

type orderPing struct {
	URL     string
	OrderID string
}

func (n *orderPing) Via() []string { return []string{"webhook"} }

func (n *orderPing) ToWebhook() notification.WebhookData {
	return notification.WebhookData{
		URL:     n.URL,
		Payload: map[string]string{"event": "order.created", "order_id": n.OrderID},
		Headers: map[string]string{"X-Warung-Token": "secret"},
	}
}

func TestSendWebhook(t *testing.T) {
	rec := &testkit.RequestRecorder{}
	http.DefaultClient.Transport = rec
	defer http.ResetTransport()

	errs := notification.Send(&orderPing{URL: "https://hooks.example.com/orders", OrderID: "abcdef12"})
	require.Empty(t, errs)
	require.Equal(t, 1, rec.Count())

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.LastBody(), &payload))
	assert.Equal(t, "order.created", payload["event"])
	assert.Equal(t, "abcdef12", payload["order_id"])
}

func TestSendWebhookNon2xx(t *testing.T) {
	rec := &testkit.RequestRecorder{Status: 500}
	http.DefaultClient.Transport = rec
	defer http.ResetTransport()

	errs := notification.Send(&orderPing{URL: "https://hooks.example.com/orders", OrderID: "abcdef12"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "500")
	// A non-2xx reply is a delivered response, not a transport failure,
	// so it is not retried.
	assert.Equal(t, 1, rec.Count())
}

func TestSendWebhookEmptyURL(t *testing.T) {
	rec := &testkit.RequestRecorder{}
	http.DefaultClient.Transport = rec
	defer http.ResetTransport()

	errs := notification.Send(&orderPing{URL: ""})
	require.Len(t, errs, 1)
	assert.Equal(t, 0, rec.Count())
}

type silent struct{}

func (silent) Via() []string { return []string{"carrier-pigeon"} }

func TestSendUnknownChannel(t *testing.T) {
	errs := notification.Send(silent{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "carrier-pigeon")
}
