package entitlements

import "strings"

type Plan string

const (
	PlanFree      Plan = "free"
	PlanPlus      Plan = "plus"
	PlanConcierge Plan = "concierge"
)

// DateChangesUnlimited marks a plan with no cap on move-date changes.
const DateChangesUnlimited = -1

// Normalize maps arbitrary tier strings onto a known plan, defaulting to free.
func Normalize(plan string) Plan {
	switch strings.ToLower(strings.TrimSpace(plan)) {
	case string(PlanPlus):
		return PlanPlus
	case string(PlanConcierge):
		return PlanConcierge
	default:
		return PlanFree
	}
}

// DateChangesAllowed returns the move-date change allowance for a plan.
func DateChangesAllowed(plan Plan) int {
	switch plan {
	case PlanConcierge:
		return DateChangesUnlimited
	case PlanPlus:
		return 2
	default:
		return 0
	}
}

// RemainingDateChanges returns how many date changes a user has left.
func RemainingDateChanges(plan Plan, used int) int {
	allowed := DateChangesAllowed(plan)
	if allowed == DateChangesUnlimited {
		return DateChangesUnlimited
	}
	remaining := allowed - used
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanChangeDate reports whether a user on the given plan may change their
// move date again.
func CanChangeDate(plan Plan, used int) bool {
	allowed := DateChangesAllowed(plan)
	if allowed == DateChangesUnlimited {
		return true
	}
	return used < allowed
}
