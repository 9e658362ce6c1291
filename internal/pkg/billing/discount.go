package billing

import (
	"errors"
	"time"

	"github.com/removealist/removealist/app/models"
	"gorm.io/gorm"
)

// checkDiscountCode runs the ordered validity checks for a discount code and
// returns the structured rejection for the first one that fails. The per-user
// count is derived from the usage ledger, not from a separate counter; the
// global count comes from the code row the caller loaded (locked FOR UPDATE
// on the redemption path).
func checkDiscountCode(repo Repository, discount *models.DiscountCode, userID uint, plan *models.PricingPlan, now time.Time) error {
	if !discount.IsWithinValidity(now) {
		return ValidationError(CodeDiscountExpiredOrInactive, "discount code %s is expired or inactive", discount.Code)
	}
	if discount.IsExhausted() {
		return CapacityExceededError(CodeDiscountGlobalLimitReached, "discount code %s has reached its usage limit", discount.Code)
	}

	used, err := repo.CountDiscountUsageByUser(discount.ID, userID)
	if err != nil {
		return err
	}
	if used >= int64(discount.MaxUsesPerUser) {
		return ConflictError(CodeDiscountPerUserLimitReached, "discount code %s already used the maximum number of times", discount.Code)
	}

	if plan != nil && len(discount.ApplicablePlans) > 0 && !discount.ApplicablePlans.Contains(plan.PlanType) {
		return ValidationError(CodeDiscountPlanNotApplicable, "discount code %s is not applicable to plan %s", discount.Code, plan.PlanType)
	}
	return nil
}

// lookupDiscountCode resolves a code string to its row, translating a missing
// row into the NOT_FOUND rejection.
func lookupDiscountCode(repo Repository, code string, forUpdate bool) (*models.DiscountCode, error) {
	normalized := models.NormalizeDiscountCode(code)
	if normalized == "" {
		return nil, ValidationError(CodeInvalidDiscountCode, "discount code must not be empty")
	}

	var (
		discount *models.DiscountCode
		err      error
	)
	if forUpdate {
		discount, err = repo.GetDiscountByCodeForUpdate(normalized)
	} else {
		discount, err = repo.GetDiscountByCode(normalized)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError(CodeDiscountNotFound, "discount code %s does not exist", normalized)
		}
		return nil, err
	}
	return discount, nil
}
