package openalgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", "₹0.00"},
		{"zero", "0", "₹0.00"},
		{"small", "750.5", "₹750.50"},
		{"thousands", "125000", "₹125,000.00"},
		{"lakhs", "1250000.75", "₹1,250,000.75"},
		{"invalid", "abc", "₹abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRupees(tt.value))
		})
	}
}

func TestFormatPNL(t *testing.T) {
	assert.Equal(t, "+₹1,500.00", FormatPNL("1500"))
	assert.Equal(t, "-₹250.75", FormatPNL("-250.75"))
	assert.Equal(t, "+₹0.00", FormatPNL("0"))
	assert.Equal(t, "₹0.00", FormatPNL(""))
}

func TestFormatVolume(t *testing.T) {
	assert.Equal(t, "-", FormatVolume(0))
	assert.Equal(t, "999", FormatVolume(999))
	assert.Equal(t, "1,000", FormatVolume(1000))
	assert.Equal(t, "12,345,678", FormatVolume(12345678))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "23450.00", FormatPrice(23450))
	assert.Equal(t, "101.55", FormatPrice(101.55))
}
