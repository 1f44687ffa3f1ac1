package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		currency string
		want     string
	}{
		{name: "dollar symbol", price: 999, currency: "$", want: "$999"},
		{name: "rupee symbol", price: 45999, currency: "₹", want: "₹45,999"},
		{name: "INR code", price: 45999, currency: "INR", want: "₹45,999"},
		{name: "lowercase code", price: 1500, currency: "usd", want: "$1,500"},
		{name: "indian grouping", price: 1234567, currency: "INR", want: "₹12,34,567"},
		{name: "us grouping", price: 1234567, currency: "USD", want: "$1,234,567"},
		{name: "euro", price: 2500, currency: "EUR", want: "€2,500"},
		{name: "unknown ISO code", price: 999, currency: "AED", want: "AED 999"},
		{name: "unknown symbol falls back raw", price: 999.5, currency: "₿", want: "₿ 999.5"},
		{name: "zero", price: 0, currency: "INR", want: "₹0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.price, tt.currency))
		})
	}
}
