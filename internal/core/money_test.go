package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"548.9715", "548.9715", true},
		{"1,23", "1.23", true},
		{"12,5", "12.5", true},
		{"1,234", "", false},
		{"1,234.56", "", false},
		{"1,234,567", "", false},
		{"12,", "", false},
		{"12,a", "", false},
		{"0", "0", true},
		{" 2.50 ", "2.5", true},
		{"-1", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.ok {
			if err != nil || got.Amount.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got.Amount, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		m        Money
		currency string
		want     string
	}{
		{NewMoney(123.45), "Rs.", "Rs.123.45"},
		{NewMoney(150), "Rs.", "Rs.150.00"},
		{NewMoney(0.005), "$", "$0.01"},
		{Money{}, "", "0.00"},
	}
	for _, tc := range cases {
		if got := tc.m.Format(tc.currency); got != tc.want {
			t.Errorf("Format(%s, %q) = %q, want %q", tc.m.Amount, tc.currency, got, tc.want)
		}
	}
	if got := NewMoney(7).String(); got != "Rs.7.00" {
		t.Errorf("String() = %q", got)
	}
}

func TestMoneyAverage(t *testing.T) {
	if got := NewMoney(150).Average(2); !got.Equal(NewMoney(75)) {
		t.Fatalf("expected 75, got %s", got.Amount)
	}
	if got := NewMoney(150).Average(0); !got.IsZero() {
		t.Fatalf("expected zero for empty group, got %s", got.Amount)
	}
}

func TestMoneyPercentOf(t *testing.T) {
	if got := FormatPercent(NewMoney(50).PercentOf(NewMoney(200))); got != "25.00%" {
		t.Fatalf("expected 25.00%%, got %s", got)
	}
	if got := NewMoney(50).PercentOf(Money{}); !got.Equal(decimal.Zero) {
		t.Fatalf("expected zero share for zero total, got %s", got)
	}
	if got := FormatPercent(NewMoney(1).PercentOf(NewMoney(3))); got != "33.33%" {
		t.Fatalf("expected 33.33%%, got %s", got)
	}
}
