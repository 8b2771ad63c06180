package handlers

import (
	"creatormatch/internal/services"
	"creatormatch/internal/validator"
)

// AppHandlers groups every HTTP handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	Search       *SearchHandler
	Match        *MatchHandler
	Onboarding   *OnboardingHandler
	Subscription *SubscriptionHandler
	Creator      *CreatorHandler
}

func NewAppHandlers(svcs *services.ServiceContainer, v *validator.Validator, webhookSecret string) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:         NewAuthHandler(base, svcs.Auth),
		Search:       NewSearchHandler(base, svcs.Search),
		Match:        NewMatchHandler(base, svcs.Match),
		Onboarding:   NewOnboardingHandler(base, svcs.Onboarding),
		Subscription: NewSubscriptionHandler(base, svcs.Subscription, webhookSecret),
		Creator:      NewCreatorHandler(base, svcs.Creator),
	}
}
