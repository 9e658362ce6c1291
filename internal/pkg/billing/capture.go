package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CaptureRequest describes one charge handed to the payment provider.
type CaptureRequest struct {
	UserID       uint
	PlanType     string
	BillingCycle string
	Amount       decimal.Decimal
	Currency     string
}

// CaptureResult carries the provider correlation ids for a successful charge.
type CaptureResult struct {
	ProviderCustomerID     string
	ProviderSubscriptionID string
	ProviderPaymentID      string
	ProviderChargeID       string
}

// CaptureProvider is the seam to the external payment processor. The core
// never retries a failed capture; the whole create transaction rolls back
// and the caller decides what to do.
type CaptureProvider interface {
	Capture(ctx context.Context, req CaptureRequest) (*CaptureResult, error)
}

// StubCaptureProvider accepts every charge and synthesizes correlation ids.
// Stands in until a real processor integration replaces it.
type StubCaptureProvider struct{}

func NewStubCaptureProvider() *StubCaptureProvider {
	return &StubCaptureProvider{}
}

func (p *StubCaptureProvider) Capture(ctx context.Context, req CaptureRequest) (*CaptureResult, error) {
	_ = ctx
	ref := uuid.NewString()
	return &CaptureResult{
		ProviderCustomerID:     fmt.Sprintf("cus_stub_%d", req.UserID),
		ProviderSubscriptionID: "sub_stub_" + ref,
		ProviderPaymentID:      "pi_stub_" + ref,
		ProviderChargeID:       "ch_stub_" + ref,
	}, nil
}
