package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	PlanTypeFree      = "free"
	PlanTypePlus      = "plus"
	PlanTypeConcierge = "concierge"
)

const (
	BillingCycleMonthly = "monthly"
	BillingCycleYearly  = "yearly"
)

// MultiplierMap stores modifier-key -> price multiplier mappings as a JSON column.
type MultiplierMap map[string]decimal.Decimal

// Value implements the driver.Valuer interface
func (m MultiplierMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (m *MultiplierMap) Scan(value interface{}) error {
	if value == nil {
		*m = MultiplierMap{}
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
	return json.Unmarshal(bytes, m)
}

// FeatureList stores a plan's feature descriptions as a JSON column.
type FeatureList []string

// Value implements the driver.Valuer interface
func (f FeatureList) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (f *FeatureList) Scan(value interface{}) error {
	if value == nil {
		*f = FeatureList{}
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
	return json.Unmarshal(bytes, f)
}

// PricingPlan is a catalog entry for a subscription tier. Plans are seeded and
// maintained out-of-band; the billing core only reads them.
type PricingPlan struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	UUID     string `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=1,max=100"`
	PlanType string `gorm:"type:varchar(20);uniqueIndex;not null" json:"plan_type" validate:"oneof=free plus concierge"`

	Description  string          `gorm:"type:text" json:"description"`
	PriceMonthly decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"price_monthly"`
	PriceYearly  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"price_yearly"`

	Features           FeatureList `gorm:"type:json" json:"features"`
	DateChangesAllowed int         `gorm:"default:0" json:"date_changes_allowed"` // -1 for unlimited

	LocationMultipliers MultiplierMap `gorm:"type:json" json:"location_multipliers"`
	TimelineMultipliers MultiplierMap `gorm:"type:json" json:"timeline_multipliers"`
	MoveTypeMultipliers MultiplierMap `gorm:"type:json" json:"move_type_multipliers"`

	IsActive  bool `gorm:"default:true;index" json:"is_active"`
	IsPopular bool `gorm:"default:false" json:"is_popular"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *PricingPlan) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// CalculatePrice returns the plan price for a billing cycle with contextual
// multipliers applied. Multipliers are applied in a fixed order (location,
// timeline, move type) and the result is rounded to 2 decimal places once at
// the end; unknown or empty modifier values are no-ops.
func (p *PricingPlan) CalculatePrice(billingCycle, location, timeline, moveType string) decimal.Decimal {
	price := p.PriceMonthly
	if billingCycle == BillingCycleYearly {
		price = p.PriceYearly
	}

	if m, ok := p.LocationMultipliers[strings.ToLower(location)]; ok && location != "" {
		price = price.Mul(m)
	}
	if m, ok := p.TimelineMultipliers[strings.ToLower(timeline)]; ok && timeline != "" {
		price = price.Mul(m)
	}
	if m, ok := p.MoveTypeMultipliers[strings.ToLower(moveType)]; ok && moveType != "" {
		price = price.Mul(m)
	}

	return price.Round(2)
}

// IsValidBillingCycle reports whether the given cycle is a known billing cycle.
func IsValidBillingCycle(cycle string) bool {
	return cycle == BillingCycleMonthly || cycle == BillingCycleYearly
}
