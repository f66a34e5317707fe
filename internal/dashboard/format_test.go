package dashboard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	cases := map[string]string{
		"0":         "₹0.00",
		"5000":      "₹5,000.00",
		"123456":    "₹1,23,456.00",
		"1234567.5": "₹12,34,567.50",
		"999":       "₹999.00",
		"-25000.25": "-₹25,000.25",
		"100000000": "₹10,00,00,000.00",
		"-0.004":    "₹0.00",
		"0.015":     "₹0.02",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatINR(decimal.RequireFromString(in)), in)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Mar 5, 2024", FormatDate(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)))
}
