package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountUsage is the append-only redemption ledger. The (code, user,
// billing period) triple is unique and rows are the source of truth for
// per-user usage counts. Subscription rows are reused across periods, so
// the triple keys on the per-period subscription UUID, not the row id;
// a code with max_uses_per_user > 1 stays redeemable on re-subscribe.
type DiscountUsage struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	UUID string `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"id"`

	DiscountCodeID   uint   `gorm:"not null;index:ux_discount_usage_triple,unique,priority:1" json:"-"`
	UserID           uint   `gorm:"not null;index:ux_discount_usage_triple,unique,priority:2;index" json:"user_id"`
	SubscriptionID   uint   `gorm:"not null;index" json:"-"`
	SubscriptionUUID string `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;not null;index:ux_discount_usage_triple,unique,priority:3" json:"subscription_id"`

	DiscountCode DiscountCode     `gorm:"foreignKey:DiscountCodeID;constraint:OnDelete:CASCADE" json:"-"`
	Subscription UserSubscription `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE" json:"-"`

	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount_amount"`
	OriginalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"original_amount"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"final_amount"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
