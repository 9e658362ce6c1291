package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCalculateDiscount_Percentage(t *testing.T) {
	code := &DiscountCode{
		Code:          "SAVE10",
		DiscountType:  DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
	}

	got := code.CalculateDiscount(decimal.NewFromFloat(49.00))
	if want := decimal.NewFromFloat(4.90); !got.Equal(want) {
		t.Fatalf("10%% of 49 = %s, want %s", got, want)
	}
}

func TestCalculateDiscount_PercentageWithCap(t *testing.T) {
	cap := decimal.NewFromInt(40)
	code := &DiscountCode{
		Code:              "HALF",
		DiscountType:      DiscountTypePercentage,
		DiscountValue:     decimal.NewFromInt(50),
		MaxDiscountAmount: &cap,
	}

	got := code.CalculateDiscount(decimal.NewFromInt(200))
	if want := decimal.NewFromInt(40); !got.Equal(want) {
		t.Fatalf("capped 50%% of 200 = %s, want %s", got, want)
	}
}

func TestCalculateDiscount_FixedClampedToGross(t *testing.T) {
	code := &DiscountCode{
		Code:          "TAKE30",
		DiscountType:  DiscountTypeFixed,
		DiscountValue: decimal.NewFromInt(30),
	}

	got := code.CalculateDiscount(decimal.NewFromInt(20))
	if want := decimal.NewFromInt(20); !got.Equal(want) {
		t.Fatalf("fixed 30 on gross 20 = %s, want %s", got, want)
	}
}

func TestIsWithinValidity(t *testing.T) {
	now := time.Now()
	code := &DiscountCode{
		IsActive:   true,
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
	}

	if !code.IsWithinValidity(now) {
		t.Fatalf("expected code to be valid now")
	}
	if code.IsWithinValidity(now.Add(2 * time.Hour)) {
		t.Fatalf("expected code to be invalid after window")
	}
	code.IsActive = false
	if code.IsWithinValidity(now) {
		t.Fatalf("expected inactive code to be invalid")
	}
}

func TestIsExhausted(t *testing.T) {
	code := &DiscountCode{CurrentUses: 100}
	if code.IsExhausted() {
		t.Fatalf("nil max_uses must never exhaust")
	}

	max := 1
	code = &DiscountCode{MaxUses: &max, CurrentUses: 0}
	if code.IsExhausted() {
		t.Fatalf("unused code must not be exhausted")
	}
	code.CurrentUses = 1
	if !code.IsExhausted() {
		t.Fatalf("expected code at cap to be exhausted")
	}
}

func TestNormalizeDiscountCode(t *testing.T) {
	if got := NormalizeDiscountCode("  save10 "); got != "SAVE10" {
		t.Fatalf("NormalizeDiscountCode = %q, want SAVE10", got)
	}
}
