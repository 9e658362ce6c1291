package repository

import (
	"github.com/removealist/removealist/app/models"
	"gorm.io/gorm"
)

// planRepository implements the PlanRepository interface
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new pricing plan repository instance
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// GetByUUID retrieves a pricing plan by its public UUID
func (r *planRepository) GetByUUID(uuid string) (*models.PricingPlan, error) {
	var plan models.PricingPlan
	err := r.db.Where("uuid = ?", uuid).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetByType retrieves a pricing plan by its plan type
func (r *planRepository) GetByType(planType string) (*models.PricingPlan, error) {
	var plan models.PricingPlan
	err := r.db.Where("plan_type = ?", planType).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListActive retrieves all active pricing plans ordered by monthly price
func (r *planRepository) ListActive() ([]models.PricingPlan, error) {
	var plans []models.PricingPlan
	err := r.db.Where("is_active = ?", true).Order("price_monthly ASC").Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}
