package repositories

import (
	"context"
	"errors"
	"time"

	"creatormatch/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionRepository interface {
	UpsertByInvoiceID(ctx context.Context, sub *models.UserSubscription) error
	FindCurrentByUserID(ctx context.Context, userID string) (*models.UserSubscription, error)
	UpdateStatusByInvoiceID(ctx context.Context, invoiceID string, status models.SubscriptionStatus) error
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) UpsertByInvoiceID(ctx context.Context, sub *models.UserSubscription) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "invoice_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "plan_name", "start_date", "end_date", "auto_renew", "updated_at",
		}),
	}).Create(sub).Error
}

func (r *SubscriptionRepositoryImpl) FindCurrentByUserID(ctx context.Context, userID string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) UpdateStatusByInvoiceID(ctx context.Context, invoiceID string, status models.SubscriptionStatus) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if status == models.SubscriptionStatusCancelled {
		updates["cancelled_at"] = time.Now()
	}

	result := r.db.WithContext(ctx).Model(&models.UserSubscription{}).
		Where("invoice_id = ?", invoiceID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.UserSubscription{}).
		Where("status = ? AND end_date < ?", models.SubscriptionStatusActive, now).
		Updates(map[string]interface{}{
			"status":     models.SubscriptionStatusExpired,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
