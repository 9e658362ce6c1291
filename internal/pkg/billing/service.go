package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/removealist/removealist/app/models"
	"github.com/removealist/removealist/internal/pkg/entitlements"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service owns the subscription lifecycle: pricing, discount redemption and
// status transitions, each executed as one atomic unit per user.
type Service struct {
	repo    Repository
	capture CaptureProvider
	now     func() time.Time
}

// NewService creates a billing service from an injected repository and
// payment capture provider.
func NewService(repo Repository, capture CaptureProvider) *Service {
	return &Service{
		repo:    repo,
		capture: capture,
		now:     time.Now,
	}
}

// NewServiceFromDB creates a billing service from a GORM DB handle with the
// stubbed capture provider.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db), NewStubCaptureProvider())
}

// CreateSubscriptionInput is the normalized input for subscription creation.
type CreateSubscriptionInput struct {
	UserID       uint
	PlanUUID     string
	BillingCycle string
	DiscountCode string
	AutoRenew    bool

	// Optional pricing context.
	Location string
	Timeline string
	MoveType string
}

// CreateSubscription prices the plan, redeems an optional discount code and
// activates the subscription, all inside one transaction. A failed payment
// capture rolls back every write, including the discount usage ledger row
// and the usage counter increment.
func (s *Service) CreateSubscription(ctx context.Context, in CreateSubscriptionInput) (*models.UserSubscription, error) {
	if in.UserID == 0 {
		return nil, ValidationError(CodeInvalidUser, "user is required")
	}
	if !models.IsValidBillingCycle(in.BillingCycle) {
		return nil, ValidationError(CodeInvalidBillingCycle, "invalid billing cycle %q, choose monthly or yearly", in.BillingCycle)
	}

	now := s.now()
	var created *models.UserSubscription

	err := s.repo.InTransaction(func(tx Repository) error {
		plan, err := tx.GetPlanByUUID(in.PlanUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError(CodePlanNotFound, "pricing plan not found or not active")
			}
			return err
		}

		// Lock the user's subscription row so concurrent creates serialize;
		// only one attempt can observe "no active subscription".
		existing, err := tx.GetSubscriptionByUserIDForUpdate(in.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil && existing.Status == models.SubscriptionStatusActive {
			return ConflictError(CodeDuplicateActiveSubscription, "you already have an active subscription")
		}

		grossPrice := plan.CalculatePrice(in.BillingCycle, in.Location, in.Timeline, in.MoveType)
		finalPrice := grossPrice
		discountAmount := decimal.Zero

		var discount *models.DiscountCode
		if in.DiscountCode != "" {
			discount, err = lookupDiscountCode(tx, in.DiscountCode, true)
			if err != nil {
				return err
			}
			if err := checkDiscountCode(tx, discount, in.UserID, plan, now); err != nil {
				return err
			}
			discountAmount = discount.CalculateDiscount(grossPrice)
			finalPrice = grossPrice.Sub(discountAmount)
		}

		captureResult, err := s.capture.Capture(ctx, CaptureRequest{
			UserID:       in.UserID,
			PlanType:     plan.PlanType,
			BillingCycle: in.BillingCycle,
			Amount:       finalPrice,
			Currency:     models.DefaultCurrency,
		})
		if err != nil {
			return ExternalError(CodePaymentFailed, "payment capture failed: %v", err)
		}

		startDate := now
		endDate := startDate.AddDate(0, 0, 30)
		if in.BillingCycle == models.BillingCycleYearly {
			endDate = startDate.AddDate(0, 0, 365)
		}
		nextBilling := endDate

		sub := existing
		if sub == nil {
			sub = &models.UserSubscription{UserID: in.UserID}
		}
		sub.UUID = uuid.NewString()
		sub.PlanID = plan.ID
		sub.BillingCycle = in.BillingCycle
		sub.PricePaid = finalPrice
		sub.StartDate = startDate
		sub.EndDate = endDate
		sub.NextBillingDate = &nextBilling
		sub.Status = models.SubscriptionStatusActive
		sub.AutoRenew = in.AutoRenew
		sub.ProviderSubscriptionID = &captureResult.ProviderSubscriptionID
		sub.ProviderCustomerID = &captureResult.ProviderCustomerID

		if existing == nil {
			err = tx.CreateSubscription(sub)
		} else {
			err = tx.SaveSubscription(sub)
		}
		if err != nil {
			// Two concurrent first-time creates both observe no row; the
			// unique user_id index breaks the tie for the loser.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ConflictError(CodeDuplicateActiveSubscription, "you already have an active subscription")
			}
			return err
		}

		if discount != nil {
			usage := &models.DiscountUsage{
				UUID:             uuid.NewString(),
				DiscountCodeID:   discount.ID,
				UserID:           in.UserID,
				SubscriptionID:   sub.ID,
				SubscriptionUUID: sub.UUID,
				DiscountAmount:   discountAmount,
				OriginalAmount:   grossPrice,
				FinalAmount:      finalPrice,
			}
			if err := tx.CreateDiscountUsage(usage); err != nil {
				return err
			}
			if err := tx.IncrementDiscountUses(discount.ID); err != nil {
				return err
			}
		}

		payment := &models.PaymentHistory{
			UUID:               uuid.NewString(),
			SubscriptionID:     sub.ID,
			Amount:             finalPrice,
			Currency:           models.DefaultCurrency,
			Status:             models.PaymentStatusCompleted,
			ProviderPaymentID:  &captureResult.ProviderPaymentID,
			ProviderChargeID:   &captureResult.ProviderChargeID,
			BillingPeriodStart: startDate,
			BillingPeriodEnd:   endDate,
		}
		if err := tx.CreatePayment(payment); err != nil {
			return err
		}

		if err := tx.SetUserPlan(in.UserID, plan.PlanType); err != nil {
			return err
		}

		sub.Plan = *plan
		created = sub
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetSubscription returns the user's subscription.
func (s *Service) GetSubscription(ctx context.Context, userID uint) (*models.UserSubscription, error) {
	_ = ctx
	sub, err := s.repo.GetSubscriptionByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError(CodeSubscriptionNotFound, "no subscription found")
		}
		return nil, err
	}
	return sub, nil
}

// UpdateSubscriptionInput is a restricted field-level patch. Only auto_renew
// is mutable after creation; unknown fields are dropped by the API layer.
type UpdateSubscriptionInput struct {
	AutoRenew *bool
}

// UpdateSubscription applies the allowed settings changes.
func (s *Service) UpdateSubscription(ctx context.Context, userID uint, in UpdateSubscriptionInput) (*models.UserSubscription, error) {
	_ = ctx
	var updated *models.UserSubscription
	err := s.repo.InTransaction(func(tx Repository) error {
		sub, err := tx.GetSubscriptionByUserIDForUpdate(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError(CodeSubscriptionNotFound, "no subscription found")
			}
			return err
		}

		if in.AutoRenew != nil {
			sub.AutoRenew = *in.AutoRenew
		}
		if err := tx.SaveSubscription(sub); err != nil {
			return err
		}
		updated = sub
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetSubscription(ctx, updated.UserID)
}

// CancelSubscription cancels the user's active subscription and forces
// auto-renew off. Cancelling a subscription that is not active fails with
// NOT_ACTIVE; cancel is not silently idempotent.
func (s *Service) CancelSubscription(ctx context.Context, userID uint) (*models.UserSubscription, error) {
	_ = ctx
	var cancelled *models.UserSubscription
	err := s.repo.InTransaction(func(tx Repository) error {
		sub, err := tx.GetSubscriptionByUserIDForUpdate(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError(CodeSubscriptionNotFound, "you do not have a subscription to cancel")
			}
			return err
		}
		if sub.Status != models.SubscriptionStatusActive {
			return ConflictError(CodeSubscriptionNotActive, "subscription is not active")
		}

		sub.Status = models.SubscriptionStatusCancelled
		sub.AutoRenew = false
		if err := tx.SaveSubscription(sub); err != nil {
			return err
		}
		if err := tx.SetUserPlan(userID, string(entitlements.PlanFree)); err != nil {
			return err
		}
		cancelled = sub
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// ExpireLapsed transitions active subscriptions whose end date has passed to
// expired. Driven by the background sweep worker, safe to call manually.
func (s *Service) ExpireLapsed(ctx context.Context) (int, error) {
	_ = ctx
	now := s.now()
	expired := 0
	err := s.repo.InTransaction(func(tx Repository) error {
		subs, err := tx.ListLapsedActiveSubscriptions(now)
		if err != nil {
			return err
		}
		for i := range subs {
			sub := &subs[i]
			sub.Status = models.SubscriptionStatusExpired
			if err := tx.SaveSubscription(sub); err != nil {
				return err
			}
			if err := tx.SetUserPlan(sub.UserID, string(entitlements.PlanFree)); err != nil {
				return err
			}
			expired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return expired, nil
}

// DiscountCheck is the dry-run validation result for a discount code.
type DiscountCheck struct {
	Discount       *models.DiscountCode
	DiscountAmount decimal.Decimal
}

// ValidateDiscountCode checks a code for a user without consuming it. When a
// plan is supplied the discount amount is computed against its monthly rate.
func (s *Service) ValidateDiscountCode(ctx context.Context, userID uint, code, planUUID string) (*DiscountCheck, error) {
	_ = ctx
	discount, err := lookupDiscountCode(s.repo, code, false)
	if err != nil {
		return nil, err
	}

	var plan *models.PricingPlan
	if planUUID != "" {
		plan, err = s.repo.GetPlanByUUID(planUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NotFoundError(CodePlanNotFound, "pricing plan not found or not active")
			}
			return nil, err
		}
	}

	if err := checkDiscountCode(s.repo, discount, userID, plan, s.now()); err != nil {
		return nil, err
	}

	amount := decimal.Zero
	if plan != nil {
		amount = discount.CalculateDiscount(plan.PriceMonthly)
	}
	return &DiscountCheck{Discount: discount, DiscountAmount: amount}, nil
}

// ListPayments returns the payment history for the user's subscription,
// newest first. Users without a subscription get an empty history.
func (s *Service) ListPayments(ctx context.Context, userID uint) ([]models.PaymentHistory, error) {
	_ = ctx
	sub, err := s.repo.GetSubscriptionByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.PaymentHistory{}, nil
		}
		return nil, err
	}
	return s.repo.ListPaymentsBySubscriptionID(sub.ID)
}

// ListDiscountUsage returns the user's redemption history, newest first.
func (s *Service) ListDiscountUsage(ctx context.Context, userID uint) ([]models.DiscountUsage, error) {
	_ = ctx
	return s.repo.ListDiscountUsageByUser(userID)
}

// PlanInfo summarizes the user's current plan, limits and subscription.
type PlanInfo struct {
	CurrentPlan          string                   `json:"current_plan"`
	DateChangesUsed      int                      `json:"date_changes_used"`
	DateChangesRemaining int                      `json:"date_changes_remaining"`
	CanChangeDate        bool                     `json:"can_change_date"`
	Subscription         *models.UserSubscription `json:"subscription"`
}

// GetPlanInfo builds the plan/limit summary for a user.
func (s *Service) GetPlanInfo(ctx context.Context, userID uint) (*PlanInfo, error) {
	_ = ctx
	user, err := s.repo.GetUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError(CodeInvalidUser, "user not found")
		}
		return nil, err
	}

	plan := entitlements.Normalize(user.PricingPlan)
	info := &PlanInfo{
		CurrentPlan:          string(plan),
		DateChangesUsed:      user.DateChangesUsed,
		DateChangesRemaining: entitlements.RemainingDateChanges(plan, user.DateChangesUsed),
		CanChangeDate:        entitlements.CanChangeDate(plan, user.DateChangesUsed),
	}

	if sub, err := s.repo.GetSubscriptionByUserID(userID); err == nil {
		info.Subscription = sub
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return info, nil
}
