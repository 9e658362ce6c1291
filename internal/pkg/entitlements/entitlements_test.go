package entitlements

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want Plan
	}{
		{in: "free", want: PlanFree},
		{in: "plus", want: PlanPlus},
		{in: "concierge", want: PlanConcierge},
		{in: " CONCIERGE ", want: PlanConcierge},
		{in: "invalid", want: PlanFree},
		{in: "", want: PlanFree},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDateChanges(t *testing.T) {
	if DateChangesAllowed(PlanFree) != 0 {
		t.Fatalf("free plan must not allow date changes")
	}
	if DateChangesAllowed(PlanPlus) != 2 {
		t.Fatalf("plus plan must allow 2 date changes")
	}
	if DateChangesAllowed(PlanConcierge) != DateChangesUnlimited {
		t.Fatalf("concierge plan must be unlimited")
	}

	if CanChangeDate(PlanFree, 0) {
		t.Fatalf("free plan may never change date")
	}
	if !CanChangeDate(PlanPlus, 1) || CanChangeDate(PlanPlus, 2) {
		t.Fatalf("plus plan allowance of 2 not enforced")
	}
	if !CanChangeDate(PlanConcierge, 1000) {
		t.Fatalf("concierge plan must always allow changes")
	}

	if got := RemainingDateChanges(PlanPlus, 1); got != 1 {
		t.Fatalf("RemainingDateChanges(plus, 1) = %d, want 1", got)
	}
	if got := RemainingDateChanges(PlanPlus, 5); got != 0 {
		t.Fatalf("RemainingDateChanges(plus, 5) = %d, want 0", got)
	}
	if got := RemainingDateChanges(PlanConcierge, 5); got != DateChangesUnlimited {
		t.Fatalf("RemainingDateChanges(concierge, 5) = %d, want unlimited", got)
	}
}
