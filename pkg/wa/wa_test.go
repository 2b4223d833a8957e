package wa

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func rp(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{5000, "Rp 5.000"},
		{15000, "Rp 15.000"},
		{35000, "Rp 35.000"},
		{150000, "Rp 150.000"},
		{1500000, "Rp 1.500.000"},
		{1234567890, "Rp 1.234.567.890"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatRupiah(rp(c.in)), "amount %d", c.in)
	}
}

func TestFormatRupiahNegative(t *testing.T) {
	assert.Equal(t, "-Rp 15.000", FormatRupiah(rp(-15000)))
}

func TestBuildOrderMessage(t *testing.T) {
	items := []Item{
		{Name: "Nasi Goreng", Price: rp(15000), Quantity: 2},
		{Name: "Es Teh", Price: rp(5000), Quantity: 1},
	}
	msg := BuildOrderMessage("abcdef1234567890", items, rp(35000), "")

	assert.Contains(t, msg, "#abcdef12")
	assert.NotContains(t, msg, "abcdef123") // truncated to 8 chars
	assert.Contains(t, msg, "(2x)")
	assert.Contains(t, msg, "Rp 30.000")
	assert.Contains(t, msg, "*Total Akhir: Rp 35.000*")
	assert.Contains(t, msg, "- Nasi Goreng (2x) @ Rp 15.000 = Rp 30.000")
}

func TestBuildOrderMessageWithTable(t *testing.T) {
	msg := BuildOrderMessage("11112222", []Item{{Name: "Es Teh", Price: rp(5000), Quantity: 1}}, rp(5000), "A3")
	assert.Contains(t, msg, "Meja: A3")
}

func TestShareURI(t *testing.T) {
	uri := ShareURI("6281226821148", "*Pesanan Baru #abcdef12*\n\n- Es Teh (1x)")

	assert.True(t, strings.HasPrefix(uri, "https://wa.me/6281226821148?text="))
	assert.NotContains(t, uri, " ")
	assert.NotContains(t, uri, "+") // spaces become %20, not '+'
	assert.Contains(t, uri, "%20")
	assert.Contains(t, uri, "%0A") // newlines survive encoding
}
