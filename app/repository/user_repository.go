package repository

import (
	"time"

	"github.com/removealist/removealist/app/models"
	"gorm.io/gorm"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByAPIKeyHash retrieves a user by the SHA-256 hash of their API key
func (r *userRepository) GetByAPIKeyHash(hash string) (*models.User, error) {
	var user models.User
	err := r.db.Where("api_key_hash = ? AND status = ?", hash, models.STATUS_ACTIVE).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// TouchLastSeen updates the last seen timestamp for a user
func (r *userRepository) TouchLastSeen(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("last_seen_at", time.Now()).Error
}
