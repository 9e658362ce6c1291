package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

const DefaultCurrency = "AUD"

// PaymentHistory is an append-only record of one billing period charge.
// Rows are written when a period completes; later status changes are driven
// by payment provider callbacks.
type PaymentHistory struct {
	ID             uint   `gorm:"primaryKey" json:"-"`
	UUID           string `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"id"`
	SubscriptionID uint   `gorm:"not null;index" json:"-"`

	Subscription UserSubscription `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE" json:"-"`

	Amount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency string          `gorm:"type:char(3);not null;default:'AUD'" json:"currency"`
	Status   string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	ProviderPaymentID *string `gorm:"type:varchar(255);default:null" json:"-"`
	ProviderChargeID  *string `gorm:"type:varchar(255);default:null" json:"-"`

	BillingPeriodStart time.Time `gorm:"not null" json:"billing_period_start"`
	BillingPeriodEnd   time.Time `gorm:"not null" json:"billing_period_end"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
