package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ppsociety/membership-backend/internal/apperrors"
	"github.com/ppsociety/membership-backend/internal/models"
	"github.com/ppsociety/membership-backend/internal/repositories"
	"github.com/ppsociety/membership-backend/pkg/mailer"
)

// SubscriptionService handles the newsletter subscription lifecycle
type SubscriptionService struct {
	subRepo repositories.SubscriptionRepository
	mailer  mailer.Mailer
	logger  *zap.Logger
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(subRepo repositories.SubscriptionRepository, m mailer.Mailer, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		subRepo: subRepo,
		mailer:  m,
		logger:  logger,
	}
}

// Subscribe creates an active subscription for a new email, reactivates an
// unsubscribed one, and rejects an already-active one. The reactivated
// boolean distinguishes the first two outcomes for response wording.
func (s *SubscriptionService) Subscribe(ctx context.Context, email, source string) (*models.Subscription, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, false, apperrors.Validation("Please enter a valid email")
	}
	if source == "" {
		source = "website"
	} else if !models.ValidSubscriptionSource(source) {
		return nil, false, apperrors.Validation("Validation failed", "Invalid source")
	}

	existing, err := s.subRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, apperrors.Internal(err)
	}

	if existing != nil {
		if existing.Status == models.SubscriptionStatusActive {
			return nil, false, apperrors.Conflict("Email is already subscribed")
		}
		// Reactivate rather than create a duplicate record.
		existing.Status = models.SubscriptionStatusActive
		existing.UnsubscribedAt = nil
		existing.UnsubscribeToken = ""
		if err := s.subRepo.Update(ctx, existing); err != nil {
			return nil, false, apperrors.Internal(err)
		}
		return existing, true, nil
	}

	sub := models.NewSubscription(email, source)
	sub.UnsubscribeToken = uuid.NewString()
	if err := s.subRepo.Create(ctx, sub); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Lost a race with a concurrent subscribe for the same email.
			return nil, false, apperrors.Conflict("Email is already subscribed")
		}
		return nil, false, apperrors.Internal(err)
	}

	// Confirmation is best-effort; delivery failure does not fail the
	// subscription.
	if err := s.mailer.Send(sub.Email, "Newsletter subscription confirmed",
		fmt.Sprintf("You are subscribed to our newsletter. Use this token to unsubscribe at any time: %s", sub.UnsubscribeToken)); err != nil {
		s.logger.Warn("mail delivery failed",
			zap.String("to", sub.Email),
			zap.Error(err),
		)
	}

	return sub, false, nil
}

// Unsubscribe transitions an active subscription to unsubscribed, stamping
// the time.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	sub, err := s.subRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("Subscription not found")
		}
		return apperrors.Internal(err)
	}
	if sub.Status != models.SubscriptionStatusActive {
		return apperrors.NotFound("Subscription not found")
	}

	now := time.Now()
	sub.Status = models.SubscriptionStatusUnsubscribed
	sub.UnsubscribedAt = &now
	if err := s.subRepo.Update(ctx, sub); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// List retrieves subscriptions in a state with pagination.
func (s *SubscriptionService) List(ctx context.Context, status string, page, limit int) ([]*models.Subscription, models.Pagination, error) {
	if status == "" {
		status = string(models.SubscriptionStatusActive)
	}
	if status != string(models.SubscriptionStatusActive) && status != string(models.SubscriptionStatusUnsubscribed) {
		return nil, models.Pagination{}, apperrors.Validation("Validation failed", "Invalid status")
	}

	subs, total, err := s.subRepo.FindByStatus(ctx, models.SubscriptionStatus(status), page, limit)
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal(err)
	}
	return subs, models.NewPagination(page, limit, total), nil
}

// UpdatePreferences replaces the preference flags on a subscription.
func (s *SubscriptionService) UpdatePreferences(ctx context.Context, id primitive.ObjectID, prefs models.SubscriptionPreferences) (*models.Subscription, error) {
	sub, err := s.subRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("Subscription not found")
		}
		return nil, apperrors.Internal(err)
	}

	sub.Preferences = prefs
	if err := s.subRepo.Update(ctx, sub); err != nil {
		return nil, apperrors.Internal(err)
	}
	return sub, nil
}
