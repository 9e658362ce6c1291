package billing

import (
	"errors"
	"fmt"
)

// Kind classifies a billing error for callers and the API layer.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindCapacityExceeded Kind = "capacity_exceeded"
	KindExternal         Kind = "external_dependency"
)

// Stable machine-readable error codes surfaced to API clients.
const (
	CodeInvalidBillingCycle         = "INVALID_BILLING_CYCLE"
	CodeInvalidUser                 = "INVALID_USER"
	CodeInvalidDiscountCode         = "INVALID_DISCOUNT_CODE"
	CodePlanNotFound                = "PLAN_NOT_FOUND"
	CodeSubscriptionNotFound        = "SUBSCRIPTION_NOT_FOUND"
	CodeDiscountNotFound            = "NOT_FOUND"
	CodeDiscountExpiredOrInactive   = "EXPIRED_OR_INACTIVE"
	CodeDiscountGlobalLimitReached  = "GLOBAL_LIMIT_REACHED"
	CodeDiscountPerUserLimitReached = "PER_USER_LIMIT_REACHED"
	CodeDiscountPlanNotApplicable   = "PLAN_NOT_APPLICABLE"
	CodeDuplicateActiveSubscription = "DUPLICATE_ACTIVE_SUBSCRIPTION"
	CodeSubscriptionNotActive       = "NOT_ACTIVE"
	CodePaymentFailed               = "PAYMENT_FAILED"
)

// Error carries an error kind and a stable code alongside a human message so
// callers can branch on structure without parsing prose.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is makes errors.Is match on kind and code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

func newError(kind Kind, code, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

func ValidationError(code, format string, args ...interface{}) *Error {
	return newError(KindValidation, code, format, args...)
}

func NotFoundError(code, format string, args ...interface{}) *Error {
	return newError(KindNotFound, code, format, args...)
}

func ConflictError(code, format string, args ...interface{}) *Error {
	return newError(KindConflict, code, format, args...)
}

func CapacityExceededError(code, format string, args ...interface{}) *Error {
	return newError(KindCapacityExceeded, code, format, args...)
}

func ExternalError(code, format string, args ...interface{}) *Error {
	return newError(KindExternal, code, format, args...)
}

// KindOf returns the kind of a billing error, or an empty kind for other
// error values.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// CodeOf returns the stable code of a billing error, or an empty string.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
