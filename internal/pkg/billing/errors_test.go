package billing

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindAndCode(t *testing.T) {
	err := ConflictError(CodeDuplicateActiveSubscription, "already subscribed")

	if KindOf(err) != KindConflict {
		t.Fatalf("KindOf = %q, want %q", KindOf(err), KindConflict)
	}
	if CodeOf(err) != CodeDuplicateActiveSubscription {
		t.Fatalf("CodeOf = %q, want %q", CodeOf(err), CodeDuplicateActiveSubscription)
	}
}

func TestErrorWrapping(t *testing.T) {
	inner := CapacityExceededError(CodeDiscountGlobalLimitReached, "code exhausted")
	wrapped := fmt.Errorf("create subscription: %w", inner)

	if KindOf(wrapped) != KindCapacityExceeded {
		t.Fatalf("KindOf through wrap = %q, want %q", KindOf(wrapped), KindCapacityExceeded)
	}
	if !errors.Is(wrapped, &Error{Kind: KindCapacityExceeded}) {
		t.Fatalf("errors.Is should match on kind alone")
	}
	if !errors.Is(wrapped, &Error{Code: CodeDiscountGlobalLimitReached}) {
		t.Fatalf("errors.Is should match on code alone")
	}
	if errors.Is(wrapped, &Error{Kind: KindNotFound}) {
		t.Fatalf("errors.Is must not match a different kind")
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if KindOf(errors.New("boom")) != "" {
		t.Fatalf("plain errors have no kind")
	}
	if CodeOf(nil) != "" {
		t.Fatalf("nil errors have no code")
	}
}
