// Package wa builds WhatsApp share-intent links. Checkout does not
// talk to any WhatsApp API; it renders the order as text and hands the
// customer a wa.me deep link with the message pre-filled.
package wa

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Item is one order line rendered into the message.
type Item struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Subtotal returns price * quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// FormatRupiah renders an amount in Indonesian convention:
// Rp prefix, dot thousand separators, no decimals (15000 -> "Rp 15.000").
func FormatRupiah(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	digits := amount.Abs().Round(0).String()

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("Rp ")

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// BuildOrderMessage renders the order text sent to the restaurant.
// orderID is truncated to its first 8 characters.
func BuildOrderMessage(orderID string, items []Item, total decimal.Decimal, table string) string {
	ref := orderID
	if len(ref) > 8 {
		ref = ref[:8]
	}

	var b strings.Builder
	b.WriteString("*Pesanan Baru #" + ref + "*\n")
	if table != "" {
		b.WriteString("Meja: " + table + "\n")
	}
	b.WriteString("\n")

	for _, it := range items {
		b.WriteString("- " + it.Name +
			" (" + strconv.Itoa(it.Quantity) + "x) @ " + FormatRupiah(it.Price) +
			" = " + FormatRupiah(it.Subtotal()) + "\n")
	}

	b.WriteString("\n*Total Akhir: " + FormatRupiah(total) + "*")
	return b.String()
}

// ShareURI builds the wa.me deep link carrying the message.
// phone must be in international format without the leading plus.
func ShareURI(phone, message string) string {
	// QueryEscape encodes spaces as '+', which WhatsApp renders
	// literally. Swap to %20 to match browser encodeURIComponent.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + phone + "?text=" + encoded
}
