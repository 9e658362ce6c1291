package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	STATUS_ACTIVE   = "active"
	STATUS_INACTIVE = "inactive"
	STATUS_DISABLED = "disabled"
)

// User mirrors the identity provider's account record locally. The billing
// core only reads identity fields and writes the denormalized plan tier and
// date-change counters; account management lives elsewhere.
type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"type:varchar(150)" json:"name" validate:"required,min=3,max=150"`
	Email      string `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,min=5,max=200"`
	Status     string `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active inactive disabled"`
	APIKeyHash string `gorm:"type:char(64);index;default:''" json:"-"`

	// Denormalized subscription state, kept in lock-step with the user's
	// subscription by the billing service. Single write path: billing.Repository.SetUserPlan.
	PricingPlan     string `gorm:"type:varchar(20);not null;default:'free';index" json:"pricing_plan"`
	DateChangesUsed int    `gorm:"not null;default:0" json:"date_changes_used"`

	LastSeenAt *time.Time     `gorm:"type:timestamp;default:null" json:"-"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// HashAPIKey returns the sha256 hex digest used for API key lookups.
func HashAPIKey(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}
