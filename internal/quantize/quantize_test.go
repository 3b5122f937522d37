package quantize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney_RoundsHalfToEven(t *testing.T) {
	cases := []struct {
		in       string
		scale    int32
		expected string
	}{
		{"1.005", 2, "1.00"},
		{"1.015", 2, "1.02"},
		{"2.5", 0, "2"},
		{"3.5", 0, "4"},
	}
	for _, c := range cases {
		got := Money(decimal.RequireFromString(c.in), c.scale)
		assert.True(t, got.Equal(decimal.RequireFromString(c.expected)), "Money(%s, %d) = %s, want %s", c.in, c.scale, got, c.expected)
	}
}

func TestMoney_Idempotent(t *testing.T) {
	x := decimal.RequireFromString("123.456789")
	once := Money(x, 2)
	twice := Money(once, 2)
	assert.True(t, once.Equal(twice))
}

func TestRate_DefaultScaleIsSix(t *testing.T) {
	x := decimal.RequireFromString("1.1234567")
	got := Rate(x, DefaultRateScale)
	assert.True(t, got.Equal(decimal.RequireFromString("1.123457")))
}
