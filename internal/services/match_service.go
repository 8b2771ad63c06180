package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"creatormatch/internal/config"
	"creatormatch/internal/logger"
	"creatormatch/internal/models"
	"creatormatch/internal/repositories"
	"creatormatch/internal/services/dto"
	"creatormatch/pkg/apperrors"
)

// MatchService owns the durable match records. Writes are idempotent per
// (user, onboarding answer); re-recording replaces the previous result set.
type MatchService interface {
	RecordMatch(ctx context.Context, sessionUserID string, req dto.RecordMatchRequest) error
	LatestMatch(ctx context.Context, userID string) (*dto.LatestMatch, error)
}

type matchService struct {
	matches    repositories.MatchRepository
	creators   repositories.CreatorRepository
	onboarding repositories.OnboardingRepository
	users      repositories.UserRepository
	cfg        config.MatchingConfig
}

func NewMatchService(
	matches repositories.MatchRepository,
	creators repositories.CreatorRepository,
	onboarding repositories.OnboardingRepository,
	users repositories.UserRepository,
	cfg config.MatchingConfig,
) MatchService {
	return &matchService{
		matches:    matches,
		creators:   creators,
		onboarding: onboarding,
		users:      users,
		cfg:        cfg,
	}
}

func (s *matchService) RecordMatch(ctx context.Context, sessionUserID string, req dto.RecordMatchRequest) error {
	// The body carries user_id for API symmetry but the session is the
	// authority on identity.
	if req.UserID != sessionUserID {
		return apperrors.ErrUserMismatch
	}
	if len(req.CreatorIDs) == 0 {
		return apperrors.NewBadRequestError("creator_ids must not be empty")
	}
	if len(req.CreatorIDs) > s.cfg.MaxResults {
		return apperrors.NewBadRequestError("creator_ids exceeds the result limit")
	}
	if req.SearchCriteria == nil {
		return apperrors.NewBadRequestError("search_criteria is required")
	}

	if _, err := s.users.FindUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	answer, err := s.onboarding.FindAnswerByID(ctx, req.OnboardingAnswerID)
	if err != nil {
		if errors.Is(err, repositories.ErrAnswerNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if answer.UserID != req.UserID {
		// Answer ownership is not disclosed to other users.
		return apperrors.ErrNotFound(repositories.ErrAnswerNotFound)
	}

	// Dangling ids would persist silently and only be dropped at read time;
	// reject them up front instead.
	creators, err := s.creators.FindByIDs(ctx, req.CreatorIDs)
	if err != nil {
		return apperrors.InternalError(err)
	}
	known := make(map[string]struct{}, len(creators))
	for i := range creators {
		known[creators[i].ID] = struct{}{}
	}
	for _, id := range req.CreatorIDs {
		if _, ok := known[id]; !ok {
			return apperrors.NewBadRequestError("creator_ids contains unknown creators")
		}
	}

	match := &models.UserMatch{
		UserID:             req.UserID,
		OnboardingAnswerID: req.OnboardingAnswerID,
	}
	match.SetCreatorIDs(req.CreatorIDs)
	match.SetSearchCriteria(*req.SearchCriteria)
	match.SetFallbackIDs(intersect(req.FallbackCreatorIDs, req.CreatorIDs))

	if err := s.matches.UpsertUserMatch(ctx, match); err != nil {
		logger.CtxWithError(ctx, "match upsert failed", err,
			"onboarding_answer_id", req.OnboardingAnswerID)
		return apperrors.ErrPersistence(err)
	}

	logger.CtxInfo(ctx, "match recorded",
		"onboarding_answer_id", req.OnboardingAnswerID,
		"creator_count", len(req.CreatorIDs))
	return nil
}

func (s *matchService) LatestMatch(ctx context.Context, userID string) (*dto.LatestMatch, error) {
	match, err := s.matches.FindLatestMatchByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	ids := match.GetCreatorIDs()
	creators, err := s.creators.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	byID := make(map[string]*models.Creator, len(creators))
	for i := range creators {
		byID[creators[i].ID] = &creators[i]
	}
	fallbackSet := make(map[string]struct{})
	for _, id := range match.GetFallbackIDs() {
		fallbackSet[id] = struct{}{}
	}

	criteria := match.GetSearchCriteria()

	// Stored order is the resolver's ranking; creators deleted since the
	// match was recorded are dropped.
	hydrated := make([]dto.MatchedCreator, 0, len(ids))
	for _, id := range ids {
		creator, ok := byID[id]
		if !ok {
			continue
		}
		_, isFallback := fallbackSet[id]
		entry := dto.MatchedCreator{
			CreatorMatch: toCreatorMatch(creator, isFallback),
		}
		if isFallback {
			entry.MatchScore = s.cfg.FallbackScorePercent
		} else {
			entry.MatchScore = matchScore(creator.GetCategories(), criteria)
		}
		hydrated = append(hydrated, entry)
	}

	return &dto.LatestMatch{
		OnboardingAnswerID: match.OnboardingAnswerID,
		SearchCriteria:     criteria,
		Creators:           hydrated,
		CreatedAt:          match.CreatedAt.Format(time.RFC3339),
	}, nil
}

// matchScore counts the creator's categories that case-insensitively
// substring-match any requested criterion (either direction, so "bitcoin"
// matches "btc-only bitcoin" style compound labels), relative to the number
// of criteria. Several category variants hitting one criterion each count,
// so the score can exceed 100.
func matchScore(creatorCategories, criteria []string) int {
	if len(criteria) == 0 {
		return 0
	}

	matched := 0
	for _, have := range creatorCategories {
		have = strings.ToLower(have)
		for _, want := range criteria {
			want = strings.ToLower(want)
			if strings.Contains(have, want) || strings.Contains(want, have) {
				matched++
				break
			}
		}
	}

	return int(math.Round(float64(matched) / float64(len(criteria)) * 100))
}

func intersect(subset, within []string) []string {
	if len(subset) == 0 {
		return nil
	}
	allowed := make(map[string]struct{}, len(within))
	for _, id := range within {
		allowed[id] = struct{}{}
	}
	out := make([]string, 0, len(subset))
	for _, id := range subset {
		if _, ok := allowed[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
