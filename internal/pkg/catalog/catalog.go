package catalog

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/removealist/removealist/app/models"
	"github.com/removealist/removealist/internal/pkg/cache"
)

const (
	activePlansCacheKey = "catalog:plans:active"
	cacheTTL            = 5 * time.Minute
)

// GetActivePlans returns the active plan catalog ordered by monthly price.
// Reads go through a short-lived cache so each request prices against an
// immutable snapshot instead of hitting the catalog tables every time.
func GetActivePlans(db *gorm.DB) ([]models.PricingPlan, error) {
	if raw, err := cache.Get(activePlansCacheKey); err == nil {
		var plans []models.PricingPlan
		if err := json.Unmarshal([]byte(raw), &plans); err == nil {
			return plans, nil
		}
		// Corrupt cache entry: drop it and fall through to the DB.
		_ = cache.Delete(activePlansCacheKey)
	} else if !cache.IsNotFound(err) {
		log.Printf("catalog cache read failed: %v", err)
	}

	var plans []models.PricingPlan
	if err := db.Where("is_active = ?", true).Order("price_monthly ASC").Find(&plans).Error; err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(plans); err == nil {
		if err := cache.Set(activePlansCacheKey, string(raw), cacheTTL); err != nil {
			log.Printf("catalog cache write failed: %v", err)
		}
	}
	return plans, nil
}

// Invalidate drops the cached snapshot. Called after catalog administration
// changes plan rows.
func Invalidate() {
	if err := cache.Delete(activePlansCacheKey); err != nil {
		log.Printf("catalog cache invalidate failed: %v", err)
	}
}
