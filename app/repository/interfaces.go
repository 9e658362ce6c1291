package repository

import (
	"github.com/removealist/removealist/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, error)
	TouchLastSeen(id uint) error
}

// PlanRepository defines the interface for pricing plan catalog reads
type PlanRepository interface {
	GetByUUID(uuid string) (*models.PricingPlan, error)
	GetByType(planType string) (*models.PricingPlan, error)
	ListActive() ([]models.PricingPlan, error)
}

// Repositories holds all repository instances
type Repositories struct {
	User UserRepository
	Plan PlanRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User: NewUserRepository(db),
		Plan: NewPlanRepository(db),
	}
}
