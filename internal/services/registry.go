package services

import (
	"creatormatch/internal/auth"
	"creatormatch/internal/config"
	"creatormatch/internal/repositories"
)

// ServiceContainer wires every service with its repositories. Built once in
// app startup and handed to the handler layer.
type ServiceContainer struct {
	Auth         AuthService
	Search       SearchService
	Match        MatchService
	Onboarding   OnboardingService
	Subscription SubscriptionService
	Creator      CreatorService
}

// Repositories groups the constructed repository set. Matches is built on
// the elevated database handle; the rest use the regular one.
type Repositories struct {
	Users        repositories.UserRepository
	Creators     repositories.CreatorRepository
	Matches      repositories.MatchRepository
	Onboarding   repositories.OnboardingRepository
	Subscription repositories.SubscriptionRepository
}

func NewServiceContainer(repos Repositories, tokens *auth.TokenManager, matching config.MatchingConfig) *ServiceContainer {
	searchSvc := NewSearchService(repos.Creators, matching)
	matchSvc := NewMatchService(repos.Matches, repos.Creators, repos.Onboarding, repos.Users, matching)

	return &ServiceContainer{
		Auth:         NewAuthService(repos.Users, tokens),
		Search:       searchSvc,
		Match:        matchSvc,
		Onboarding:   NewOnboardingService(repos.Onboarding, NewKeywordClassifier(), searchSvc, matchSvc),
		Subscription: NewSubscriptionService(repos.Subscription),
		Creator:      NewCreatorService(repos.Creators),
	}
}
