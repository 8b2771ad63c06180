package services

import (
	"context"
	"errors"

	"creatormatch/internal/logger"
	"creatormatch/internal/models"
	"creatormatch/internal/repositories"
	"creatormatch/internal/services/dto"
	"creatormatch/pkg/apperrors"
)

// OnboardingService runs the full intake flow: classify the product text,
// persist the answer, resolve creators, record the match. Resolution and
// recording degrade gracefully so the user always gets their answer back.
type OnboardingService interface {
	Submit(ctx context.Context, userID string, req dto.SubmitOnboardingRequest) (*dto.OnboardingResult, error)
	LatestAnswer(ctx context.Context, userID string) (*models.OnboardingAnswer, error)
}

type onboardingService struct {
	answers    repositories.OnboardingRepository
	classifier Classifier
	search     SearchService
	matches    MatchService
}

func NewOnboardingService(
	answers repositories.OnboardingRepository,
	classifier Classifier,
	search SearchService,
	matches MatchService,
) OnboardingService {
	return &onboardingService{
		answers:    answers,
		classifier: classifier,
		search:     search,
		matches:    matches,
	}
}

func (s *onboardingService) Submit(ctx context.Context, userID string, req dto.SubmitOnboardingRequest) (*dto.OnboardingResult, error) {
	classification, err := s.classifier.Classify(ctx, dto.ProductInfo{
		Name:        req.ProductName,
		Description: req.ProductDescription,
		Audience:    req.TargetAudience,
	})
	fallbackEligible := classification.SuitabilityFlag
	if err != nil {
		// A dead classifier must not block onboarding; with no verdict the
		// request stays fallback-eligible so the pool can still serve it.
		logger.CtxWithError(ctx, "classifier failed, proceeding without categories", err)
		classification = dto.Classification{}
		fallbackEligible = true
	}

	categories := FilterCategories(classification.Categories)

	answer := &models.OnboardingAnswer{
		UserID:             userID,
		ProductName:        req.ProductName,
		ProductDescription: req.ProductDescription,
		TargetAudience:     req.TargetAudience,
	}
	answer.SetCategories(categories)

	if err := s.answers.CreateAnswer(ctx, answer); err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := &dto.OnboardingResult{
		OnboardingAnswerID: answer.ID,
		Categories:         categories,
		SuitabilityFlag:    classification.SuitabilityFlag,
		Creators:           []dto.CreatorMatch{},
	}

	creators, err := s.search.ResolveCreators(ctx, categories, fallbackEligible)
	if err != nil {
		logger.CtxWithError(ctx, "creator resolution failed during onboarding", err,
			"onboarding_answer_id", answer.ID)
		return result, nil
	}
	result.Creators = creators

	if len(creators) == 0 {
		return result, nil
	}

	creatorIDs := make([]string, 0, len(creators))
	var fallbackIDs []string
	for _, c := range creators {
		creatorIDs = append(creatorIDs, c.ID)
		if c.IsFallback {
			fallbackIDs = append(fallbackIDs, c.ID)
		}
	}

	criteria := categories
	recordErr := s.matches.RecordMatch(ctx, userID, dto.RecordMatchRequest{
		UserID:             userID,
		CreatorIDs:         creatorIDs,
		SearchCriteria:     &criteria,
		OnboardingAnswerID: answer.ID,
		FallbackCreatorIDs: fallbackIDs,
	})
	if recordErr != nil {
		logger.CtxWithError(ctx, "match recording failed during onboarding", recordErr,
			"onboarding_answer_id", answer.ID)
		return result, nil
	}

	result.MatchPersisted = true
	return result, nil
}

func (s *onboardingService) LatestAnswer(ctx context.Context, userID string) (*models.OnboardingAnswer, error) {
	answer, err := s.answers.FindLatestAnswerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAnswerNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return answer, nil
}
