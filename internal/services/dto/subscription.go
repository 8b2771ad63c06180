package dto

// ProviderEvent is the payment-provider webhook payload. The provider owns
// the subscription lifecycle; this service only projects state transitions.
type ProviderEvent struct {
	Type      string `json:"type" validate:"required,oneof=subscription.created subscription.renewed subscription.cancelled payment.failed"`
	UserID    string `json:"user_id"`
	InvoiceID string `json:"invoice_id" validate:"required"`
	PlanName  string `json:"plan_name"`
	PeriodEnd string `json:"period_end"` // RFC3339
}

type SubscriptionStatusResponse struct {
	Active    bool   `json:"active"`
	Status    string `json:"status"`
	PlanName  string `json:"plan_name,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	AutoRenew bool   `json:"auto_renew"`
}
