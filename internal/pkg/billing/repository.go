package billing

import (
	"time"

	"github.com/removealist/removealist/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides the DB operations used by the billing service. All
// writes that belong to one redemption happen inside InTransaction so the
// subscription row, the usage ledger row and the counter increment land
// together or not at all.
type Repository interface {
	// InTransaction runs fn against a repository bound to one transaction.
	InTransaction(fn func(Repository) error) error

	GetPlanByUUID(uuid string) (*models.PricingPlan, error)

	GetSubscriptionByUserID(userID uint) (*models.UserSubscription, error)
	GetSubscriptionByUserIDForUpdate(userID uint) (*models.UserSubscription, error)
	CreateSubscription(sub *models.UserSubscription) error
	SaveSubscription(sub *models.UserSubscription) error
	ListLapsedActiveSubscriptions(cutoff time.Time) ([]models.UserSubscription, error)

	GetDiscountByCode(code string) (*models.DiscountCode, error)
	GetDiscountByCodeForUpdate(code string) (*models.DiscountCode, error)
	CountDiscountUsageByUser(discountCodeID, userID uint) (int64, error)
	CreateDiscountUsage(usage *models.DiscountUsage) error
	IncrementDiscountUses(discountCodeID uint) error
	ListDiscountUsageByUser(userID uint) ([]models.DiscountUsage, error)

	CreatePayment(payment *models.PaymentHistory) error
	ListPaymentsBySubscriptionID(subscriptionID uint) ([]models.PaymentHistory, error)

	GetUser(userID uint) (*models.User, error)
	SetUserPlan(userID uint, planType string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) InTransaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) GetPlanByUUID(uuid string) (*models.PricingPlan, error) {
	var plan models.PricingPlan
	err := r.db.Where("uuid = ? AND is_active = ?", uuid, true).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *gormRepository) GetSubscriptionByUserID(userID uint) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := r.db.Preload("Plan").Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetSubscriptionByUserIDForUpdate locks the user's subscription row for the
// rest of the transaction. Serializes concurrent create attempts per user.
func (r *gormRepository) GetSubscriptionByUserIDForUpdate(userID uint) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) CreateSubscription(sub *models.UserSubscription) error {
	return r.db.Create(sub).Error
}

func (r *gormRepository) SaveSubscription(sub *models.UserSubscription) error {
	return r.db.Save(sub).Error
}

func (r *gormRepository) ListLapsedActiveSubscriptions(cutoff time.Time) ([]models.UserSubscription, error) {
	var subs []models.UserSubscription
	err := r.db.Where("status = ? AND end_date < ?", models.SubscriptionStatusActive, cutoff).Find(&subs).Error
	return subs, err
}

func (r *gormRepository) GetDiscountByCode(code string) (*models.DiscountCode, error) {
	var discount models.DiscountCode
	err := r.db.Where("code = ?", models.NormalizeDiscountCode(code)).First(&discount).Error
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

// GetDiscountByCodeForUpdate locks the code row so the usage counter cannot
// drift from the ledger under concurrent redemption.
func (r *gormRepository) GetDiscountByCodeForUpdate(code string) (*models.DiscountCode, error) {
	var discount models.DiscountCode
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", models.NormalizeDiscountCode(code)).First(&discount).Error
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *gormRepository) CountDiscountUsageByUser(discountCodeID, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.DiscountUsage{}).
		Where("discount_code_id = ? AND user_id = ?", discountCodeID, userID).
		Count(&count).Error
	return count, err
}

func (r *gormRepository) CreateDiscountUsage(usage *models.DiscountUsage) error {
	return r.db.Create(usage).Error
}

func (r *gormRepository) IncrementDiscountUses(discountCodeID uint) error {
	return r.db.Model(&models.DiscountCode{}).
		Where("id = ?", discountCodeID).
		UpdateColumn("current_uses", gorm.Expr("current_uses + 1")).Error
}

func (r *gormRepository) ListDiscountUsageByUser(userID uint) ([]models.DiscountUsage, error) {
	var usages []models.DiscountUsage
	err := r.db.Preload("DiscountCode").Preload("Subscription.Plan").
		Where("user_id = ?", userID).Order("created_at DESC").Find(&usages).Error
	return usages, err
}

func (r *gormRepository) CreatePayment(payment *models.PaymentHistory) error {
	return r.db.Create(payment).Error
}

func (r *gormRepository) ListPaymentsBySubscriptionID(subscriptionID uint) ([]models.PaymentHistory, error) {
	var payments []models.PaymentHistory
	err := r.db.Where("subscription_id = ?", subscriptionID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *gormRepository) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUserPlan is the single write path for the denormalized plan tier on the
// user profile.
func (r *gormRepository) SetUserPlan(userID uint, planType string) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("pricing_plan", planType).Error
}
