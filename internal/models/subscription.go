package models

import "time"

// UserSubscription mirrors the state reported by the external payment
// provider. The provider owns the lifecycle; this row is a projection.
type UserSubscription struct {
	BaseModel
	UserID      string             `gorm:"not null;index" json:"user_id"`
	Status      SubscriptionStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	InvoiceID   string             `gorm:"uniqueIndex" json:"invoice_id"` // provider-side reference
	PlanName    string             `json:"plan_name"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
	AutoRenew   bool               `gorm:"default:true" json:"auto_renew"`
	CancelledAt *time.Time         `json:"cancelled_at,omitempty"`
}
