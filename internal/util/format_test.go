package util

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		value    int64
		thousand string
		decimal  string
		expected string
	}{
		{
			name:     "positive value with default separators",
			value:    1234567,
			thousand: ".",
			decimal:  ",",
			expected: "12.345,67",
		},
		{
			name:     "negative value with default separators",
			value:    -1234567,
			thousand: ".",
			decimal:  ",",
			expected: "-12.345,67",
		},
		{
			name:     "zero value",
			value:    0,
			thousand: ".",
			decimal:  ",",
			expected: "0,00",
		},
		{
			name:     "value less than 100",
			value:    99,
			thousand: ".",
			decimal:  ",",
			expected: "0,99",
		},
		{
			name:     "value with custom separators",
			value:    1234567,
			thousand: ",",
			decimal:  ".",
			expected: "12,345.67",
		},
		{
			name:     "large value",
			value:    1234567890,
			thousand: ".",
			decimal:  ",",
			expected: "12.345.678,90",
		},
		{
			name:     "value with no thousands separator",
			value:    1234,
			thousand: "",
			decimal:  ",",
			expected: "12,34",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatMoney(tt.value, tt.thousand, tt.decimal)
			if result != tt.expected {
				t.Errorf("FormatMoney() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{value: "0", expected: "$0.00"},
		{value: "50", expected: "$50.00"},
		{value: "12.5", expected: "$12.50"},
		{value: "1234.567", expected: "$1,234.57"},
		{value: "1000000", expected: "$1,000,000.00"},
		{value: "-3.1", expected: "-$3.10"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			result := FormatCurrency(decimal.RequireFromString(tt.value))
			if result != tt.expected {
				t.Errorf("FormatCurrency() = %v, want %v", result, tt.expected)
			}
		})
	}
}
