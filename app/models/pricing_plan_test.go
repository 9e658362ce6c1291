package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testPlusPlan() *PricingPlan {
	return &PricingPlan{
		Name:         "Plan +",
		PlanType:     PlanTypePlus,
		PriceMonthly: decimal.NewFromFloat(49.00),
		PriceYearly:  decimal.NewFromFloat(490.00),
		LocationMultipliers: MultiplierMap{
			"sydney":    decimal.NewFromFloat(1.2),
			"melbourne": decimal.NewFromFloat(1.1),
		},
		TimelineMultipliers: MultiplierMap{
			"urgent":   decimal.NewFromFloat(1.5),
			"flexible": decimal.NewFromFloat(0.9),
		},
		MoveTypeMultipliers: MultiplierMap{
			"interstate": decimal.NewFromFloat(1.3),
		},
		IsActive: true,
	}
}

func TestCalculatePrice_BaseRates(t *testing.T) {
	plan := testPlusPlan()

	if got := plan.CalculatePrice(BillingCycleMonthly, "", "", ""); !got.Equal(decimal.NewFromFloat(49.00)) {
		t.Fatalf("monthly base price = %s, want 49", got)
	}
	if got := plan.CalculatePrice(BillingCycleYearly, "", "", ""); !got.Equal(decimal.NewFromFloat(490.00)) {
		t.Fatalf("yearly base price = %s, want 490", got)
	}
}

func TestCalculatePrice_Multipliers(t *testing.T) {
	plan := testPlusPlan()

	tests := []struct {
		name     string
		location string
		timeline string
		moveType string
		want     string
	}{
		{name: "location only", location: "sydney", want: "58.8"},
		{name: "case insensitive", location: "SYDNEY", want: "58.8"},
		{name: "unknown key is no-op", location: "hobart", want: "49"},
		{name: "all three", location: "sydney", timeline: "urgent", moveType: "interstate", want: "114.66"},
		{name: "discounting timeline", timeline: "flexible", want: "44.1"},
	}

	for _, tt := range tests {
		want, err := decimal.NewFromString(tt.want)
		if err != nil {
			t.Fatalf("bad want %q: %v", tt.want, err)
		}
		got := plan.CalculatePrice(BillingCycleMonthly, tt.location, tt.timeline, tt.moveType)
		if !got.Equal(want) {
			t.Fatalf("%s: CalculatePrice = %s, want %s", tt.name, got, want)
		}
	}
}

func TestCalculatePrice_SingleRounding(t *testing.T) {
	// 49 * 1.2 * 1.5 * 1.3 = 114.66 exactly when rounded once at the end.
	plan := testPlusPlan()
	got := plan.CalculatePrice(BillingCycleMonthly, "sydney", "urgent", "interstate")
	want := decimal.NewFromFloat(114.66)
	if !got.Equal(want) {
		t.Fatalf("CalculatePrice = %s, want %s", got, want)
	}
}

func TestIsValidBillingCycle(t *testing.T) {
	if !IsValidBillingCycle("monthly") || !IsValidBillingCycle("yearly") {
		t.Fatalf("expected monthly and yearly to be valid cycles")
	}
	if IsValidBillingCycle("weekly") || IsValidBillingCycle("") {
		t.Fatalf("expected unknown cycles to be invalid")
	}
}
