package main

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/removealist/removealist/app/models"
	"github.com/removealist/removealist/internal/pkg/cache"
	"github.com/removealist/removealist/internal/pkg/catalog"
	"github.com/removealist/removealist/internal/pkg/database"
	"github.com/removealist/removealist/internal/pkg/entitlements"
	"github.com/removealist/removealist/internal/pkg/env"
)

func main() {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	db := database.GetDB()

	seedPlans(db)
	seedDiscountCodes(db)
	catalog.Invalidate()

	log.Println("Seed completed")
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func multipliers(m map[string]string) models.MultiplierMap {
	out := make(models.MultiplierMap, len(m))
	for k, v := range m {
		out[k] = d(v)
	}
	return out
}

// seedPlans creates the three standard pricing plans. Existing plans are left
// untouched so manual price changes survive a re-run.
func seedPlans(db *gorm.DB) {
	plans := []models.PricingPlan{
		{
			UUID:         uuid.New().String(),
			PlanType:     models.PlanTypeFree,
			Name:         "Free",
			Description:  "Basic moving features to get you started",
			PriceMonthly: d("0.00"),
			PriceYearly:  d("0.00"),
			Features: models.FeatureList{
				"Basic move planning",
				"Simple inventory tracking",
				"Basic timeline",
				"Community support",
			},
			DateChangesAllowed:  0,
			LocationMultipliers: models.MultiplierMap{},
			TimelineMultipliers: models.MultiplierMap{},
			MoveTypeMultipliers: models.MultiplierMap{},
			IsActive:            true,
			IsPopular:           false,
		},
		{
			UUID:         uuid.New().String(),
			PlanType:     models.PlanTypePlus,
			Name:         "Plan +",
			Description:  "Enhanced features for a smoother moving experience",
			PriceMonthly: d("49.00"),
			PriceYearly:  d("490.00"),
			Features: models.FeatureList{
				"Everything in Free",
				"Advanced inventory with QR codes",
				"Task management with timers",
				"Service provider marketplace",
				"Priority support",
				"1-2 date changes allowed",
				"Export inventory to PDF/Excel",
			},
			DateChangesAllowed: 2,
			LocationMultipliers: multipliers(map[string]string{
				"sydney":    "1.2",
				"melbourne": "1.1",
				"brisbane":  "1.05",
				"perth":     "1.15",
				"adelaide":  "1.0",
				"canberra":  "1.1",
			}),
			TimelineMultipliers: multipliers(map[string]string{
				"urgent":   "1.5",
				"standard": "1.0",
				"flexible": "0.9",
			}),
			MoveTypeMultipliers: multipliers(map[string]string{
				"interstate":    "1.3",
				"local":         "1.0",
				"international": "1.5",
			}),
			IsActive:  true,
			IsPopular: true,
		},
		{
			UUID:         uuid.New().String(),
			PlanType:     models.PlanTypeConcierge,
			Name:         "Concierge +",
			Description:  "Premium white-glove moving experience",
			PriceMonthly: d("149.00"),
			PriceYearly:  d("1490.00"),
			Features: models.FeatureList{
				"Everything in Plan+",
				"Dedicated move coordinator",
				"Unlimited date changes",
				"Premium service providers",
				"Insurance coordination",
				"Storage management",
				"Post-move support",
				"24/7 priority support",
				"Custom moving timeline",
				"Professional packing coordination",
			},
			DateChangesAllowed: entitlements.DateChangesUnlimited,
			LocationMultipliers: multipliers(map[string]string{
				"sydney":    "1.3",
				"melbourne": "1.2",
				"brisbane":  "1.15",
				"perth":     "1.25",
				"adelaide":  "1.1",
				"canberra":  "1.2",
			}),
			TimelineMultipliers: multipliers(map[string]string{
				"urgent":   "1.8",
				"standard": "1.0",
				"flexible": "0.85",
			}),
			MoveTypeMultipliers: multipliers(map[string]string{
				"interstate":    "1.5",
				"local":         "1.0",
				"international": "2.0",
			}),
			IsActive:  true,
			IsPopular: false,
		},
	}

	for i := range plans {
		plan := plans[i]
		var existing models.PricingPlan
		err := db.Where("plan_type = ?", plan.PlanType).First(&existing).Error
		if err == nil {
			log.Printf("Plan %q already exists, skipping", plan.PlanType)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check plan %q: %v", plan.PlanType, err)
		}
		if err := db.Create(&plan).Error; err != nil {
			log.Fatalf("Failed to create plan %q: %v", plan.PlanType, err)
		}
		log.Printf("Created plan %q", plan.PlanType)
	}
}

// seedDiscountCodes creates a couple of launch codes for paid plans.
func seedDiscountCodes(db *gorm.DB) {
	now := time.Now()
	maxUsesWelcome := 1000
	welcomeCap := d("25.00")

	codes := []models.DiscountCode{
		{
			Code:              "WELCOME10",
			Description:       "10% off the first billing period",
			DiscountType:      models.DiscountTypePercentage,
			DiscountValue:     d("10"),
			MaxDiscountAmount: &welcomeCap,
			MaxUses:           &maxUsesWelcome,
			MaxUsesPerUser:    1,
			ValidFrom:         now,
			ValidUntil:        now.AddDate(1, 0, 0),
			ApplicablePlans:   models.PlanTypeList{models.PlanTypePlus, models.PlanTypeConcierge},
			IsActive:          true,
		},
		{
			Code:            "MOVE20",
			Description:     "Flat $20 off any paid plan",
			DiscountType:    models.DiscountTypeFixed,
			DiscountValue:   d("20.00"),
			MaxUsesPerUser:  1,
			ValidFrom:       now,
			ValidUntil:      now.AddDate(0, 6, 0),
			ApplicablePlans: models.PlanTypeList{models.PlanTypePlus, models.PlanTypeConcierge},
			IsActive:        true,
		},
	}

	for i := range codes {
		code := codes[i]
		var existing models.DiscountCode
		err := db.Where("code = ?", code.Code).First(&existing).Error
		if err == nil {
			log.Printf("Discount code %q already exists, skipping", code.Code)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check discount code %q: %v", code.Code, err)
		}
		if err := db.Create(&code).Error; err != nil {
			log.Fatalf("Failed to create discount code %q: %v", code.Code, err)
		}
		log.Printf("Created discount code %q", code.Code)
	}
}
