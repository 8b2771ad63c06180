package services

import (
	"context"
	"errors"
	"time"

	"creatormatch/internal/logger"
	"creatormatch/internal/models"
	"creatormatch/internal/repositories"
	"creatormatch/internal/services/dto"
	"creatormatch/pkg/apperrors"
)

// defaultPeriod covers provider events that omit period_end.
const defaultPeriod = 30 * 24 * time.Hour

type SubscriptionService interface {
	GetCurrent(ctx context.Context, userID string) (*dto.SubscriptionStatusResponse, error)
	// ApplyProviderEvent projects a payment-provider webhook onto local
	// subscription state.
	ApplyProviderEvent(ctx context.Context, event dto.ProviderEvent) error
}

type subscriptionService struct {
	subs repositories.SubscriptionRepository
}

func NewSubscriptionService(subs repositories.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subs: subs}
}

func (s *subscriptionService) GetCurrent(ctx context.Context, userID string) (*dto.SubscriptionStatusResponse, error) {
	sub, err := s.subs.FindCurrentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return &dto.SubscriptionStatusResponse{Active: false, Status: "none"}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.SubscriptionStatusResponse{
		Active:    sub.Status == models.SubscriptionStatusActive && sub.EndDate.After(time.Now()),
		Status:    string(sub.Status),
		PlanName:  sub.PlanName,
		EndDate:   sub.EndDate.Format(time.RFC3339),
		AutoRenew: sub.AutoRenew,
	}, nil
}

func (s *subscriptionService) ApplyProviderEvent(ctx context.Context, event dto.ProviderEvent) error {
	switch event.Type {
	case "subscription.created", "subscription.renewed":
		if event.UserID == "" {
			return apperrors.NewBadRequestError("user_id is required for subscription events")
		}

		endDate := time.Now().Add(defaultPeriod)
		if event.PeriodEnd != "" {
			parsed, err := time.Parse(time.RFC3339, event.PeriodEnd)
			if err != nil {
				return apperrors.NewBadRequestError("period_end must be RFC3339")
			}
			endDate = parsed
		}

		sub := &models.UserSubscription{
			UserID:    event.UserID,
			Status:    models.SubscriptionStatusActive,
			InvoiceID: event.InvoiceID,
			PlanName:  event.PlanName,
			StartDate: time.Now(),
			EndDate:   endDate,
			AutoRenew: true,
		}
		if err := s.subs.UpsertByInvoiceID(ctx, sub); err != nil {
			return apperrors.InternalError(err)
		}

	case "subscription.cancelled":
		if err := s.updateStatus(ctx, event.InvoiceID, models.SubscriptionStatusCancelled); err != nil {
			return err
		}

	case "payment.failed":
		if err := s.updateStatus(ctx, event.InvoiceID, models.SubscriptionStatusPastDue); err != nil {
			return err
		}

	default:
		return apperrors.NewBadRequestError("unknown event type")
	}

	logger.CtxInfo(ctx, "provider event applied",
		"type", event.Type, "invoice_id", event.InvoiceID)
	return nil
}

func (s *subscriptionService) updateStatus(ctx context.Context, invoiceID string, status models.SubscriptionStatus) error {
	err := s.subs.UpdateStatusByInvoiceID(ctx, invoiceID, status)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
