package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// PlanTypeList stores the plan tiers a discount code applies to as a JSON
// column. An empty list means the code applies to all plans.
type PlanTypeList []string

// Value implements the driver.Valuer interface
func (l PlanTypeList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *PlanTypeList) Scan(value interface{}) error {
	if value == nil {
		*l = PlanTypeList{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("invalid scan source")
	}
	return json.Unmarshal(bytes, l)
}

// Contains reports whether the list names the given plan tier.
func (l PlanTypeList) Contains(planType string) bool {
	for _, t := range l {
		if t == planType {
			return true
		}
	}
	return false
}

// DiscountCode is a promotional code. Codes are stored normalized upper-case
// and mutated only by incrementing CurrentUses on redemption.
type DiscountCode struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	UUID string `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"id"`

	Code        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Description string `gorm:"type:text" json:"description"`

	DiscountType      string           `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue     decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"discount_value"`
	MaxDiscountAmount *decimal.Decimal `gorm:"type:decimal(10,2);default:null" json:"max_discount_amount,omitempty"`

	MaxUses        *int `gorm:"default:null" json:"max_uses,omitempty"` // nil for unlimited
	MaxUsesPerUser int  `gorm:"not null;default:1" json:"max_uses_per_user"`
	CurrentUses    int  `gorm:"not null;default:0" json:"current_uses"`

	ValidFrom  time.Time `gorm:"not null" json:"valid_from"`
	ValidUntil time.Time `gorm:"not null" json:"valid_until"`

	ApplicablePlans PlanTypeList `gorm:"type:json" json:"applicable_plans"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// NormalizeDiscountCode maps user input to the stored code form.
func NormalizeDiscountCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CalculateDiscount returns the discount amount for a gross price. Percentage
// discounts are clamped to MaxDiscountAmount when set; the final amount never
// exceeds the gross price.
func (d *DiscountCode) CalculateDiscount(amount decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	if d.DiscountType == DiscountTypePercentage {
		discount = amount.Mul(d.DiscountValue.Div(decimal.NewFromInt(100)))
		if d.MaxDiscountAmount != nil && discount.GreaterThan(*d.MaxDiscountAmount) {
			discount = *d.MaxDiscountAmount
		}
	} else {
		discount = d.DiscountValue
	}

	if discount.GreaterThan(amount) {
		discount = amount
	}
	return discount.Round(2)
}

// IsWithinValidity reports whether the code is active and the given time is
// inside its validity window.
func (d *DiscountCode) IsWithinValidity(now time.Time) bool {
	return d.IsActive && !now.Before(d.ValidFrom) && !now.After(d.ValidUntil)
}

// IsExhausted reports whether the global usage cap has been reached.
func (d *DiscountCode) IsExhausted() bool {
	return d.MaxUses != nil && d.CurrentUses >= *d.MaxUses
}
