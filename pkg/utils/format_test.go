package utils

import "testing"

func TestFormatIndianCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0.00"},
		{999, "₹999.00"},
		{1000, "₹1,000.00"},
		{24500, "₹24,500.00"},
		{100000, "₹1,00,000.00"},
		{2550000, "₹25,50,000.00"},
		{10000000, "₹1,00,00,000.00"},
		{1234567.89, "₹12,34,567.89"},
		{-1500, "-₹1,500.00"},
	}
	for _, tt := range tests {
		if got := FormatIndianCurrency(tt.amount); got != tt.want {
			t.Errorf("FormatIndianCurrency(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{2.5, "+2.50%"},
		{-1.25, "-1.25%"},
		{0, "0.00%"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.value); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		qty  int64
		want string
	}{
		{0, "0"},
		{500, "500"},
		{4575, "4,575"},
		{123456, "1,23,456"},
		{98765432, "9,87,65,432"},
		{-4575, "-4,575"},
	}
	for _, tt := range tests {
		if got := FormatQuantity(tt.qty); got != tt.want {
			t.Errorf("FormatQuantity(%d) = %q, want %q", tt.qty, got, tt.want)
		}
	}
}
