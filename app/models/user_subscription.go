package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SubscriptionStatusPending   = "pending"
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
)

// UserSubscription is a user's paid subscription to a pricing plan. Each user
// has at most one subscription row and at most one in active status.
type UserSubscription struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	UUID   string `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"id"`
	UserID uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	PlanID uint   `gorm:"not null;index" json:"-"`

	Plan PricingPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`

	BillingCycle string          `gorm:"type:varchar(20);not null;default:'monthly'" json:"billing_cycle"`
	PricePaid    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_paid"`

	StartDate       time.Time  `gorm:"not null" json:"start_date"`
	EndDate         time.Time  `gorm:"not null" json:"end_date"`
	NextBillingDate *time.Time `gorm:"default:null" json:"next_billing_date,omitempty"`

	Status    string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AutoRenew bool   `gorm:"default:true" json:"auto_renew"`

	ProviderSubscriptionID *string `gorm:"type:varchar(255);default:null" json:"-"`
	ProviderCustomerID     *string `gorm:"type:varchar(255);default:null" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsCurrentlyActive reports whether the subscription is active and the given
// time falls within its start/end window.
func (s *UserSubscription) IsCurrentlyActive(now time.Time) bool {
	return s.Status == SubscriptionStatusActive &&
		!now.Before(s.StartDate) &&
		!now.After(s.EndDate)
}

// DaysRemaining returns whole days left in the current period, or 0 when the
// subscription is not currently active.
func (s *UserSubscription) DaysRemaining(now time.Time) int {
	if !s.IsCurrentlyActive(now) {
		return 0
	}
	return int(s.EndDate.Sub(now).Hours() / 24)
}
