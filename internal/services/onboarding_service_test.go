package services

import (
	"context"
	"errors"
	"testing"

	"creatormatch/internal/models"
	"creatormatch/internal/services/dto"
	"creatormatch/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearchService struct {
	resolve func(ctx context.Context, categories []string, fallbackEligible bool) ([]dto.CreatorMatch, error)
}

func (f *fakeSearchService) ResolveCreators(ctx context.Context, categories []string, fallbackEligible bool) ([]dto.CreatorMatch, error) {
	return f.resolve(ctx, categories, fallbackEligible)
}

type fakeMatchService struct {
	record func(ctx context.Context, sessionUserID string, req dto.RecordMatchRequest) error
}

func (f *fakeMatchService) RecordMatch(ctx context.Context, sessionUserID string, req dto.RecordMatchRequest) error {
	return f.record(ctx, sessionUserID, req)
}

func (f *fakeMatchService) LatestMatch(context.Context, string) (*dto.LatestMatch, error) {
	return nil, apperrors.ErrNotFound(errors.New("not implemented"))
}

type capturingOnboardingRepo struct {
	fakeOnboardingRepo
	created *models.OnboardingAnswer
	fail    bool
}

func (r *capturingOnboardingRepo) CreateAnswer(_ context.Context, answer *models.OnboardingAnswer) error {
	if r.fail {
		return errors.New("insert failed")
	}
	answer.ID = "answer-generated"
	r.created = answer
	return nil
}

func submitRequest() dto.SubmitOnboardingRequest {
	return dto.SubmitOnboardingRequest{
		ProductName:        "Bitcoin savings app",
		ProductDescription: "Automated DCA into bitcoin with self-custody withdrawals",
		TargetAudience:     "retail investors",
	}
}

func TestSubmit_FullFlow(t *testing.T) {
	answers := &capturingOnboardingRepo{}
	search := &fakeSearchService{resolve: func(_ context.Context, categories []string, fallbackEligible bool) ([]dto.CreatorMatch, error) {
		assert.Contains(t, categories, "bitcoin")
		assert.True(t, fallbackEligible)
		return []dto.CreatorMatch{
			{ID: "c1"},
			{ID: "c2", IsFallback: true},
		}, nil
	}}

	var recorded dto.RecordMatchRequest
	matches := &fakeMatchService{record: func(_ context.Context, sessionUserID string, req dto.RecordMatchRequest) error {
		assert.Equal(t, "user-1", sessionUserID)
		recorded = req
		return nil
	}}

	svc := NewOnboardingService(answers, NewKeywordClassifier(), search, matches)

	result, err := svc.Submit(context.Background(), "user-1", submitRequest())
	require.NoError(t, err)

	assert.Equal(t, "answer-generated", result.OnboardingAnswerID)
	assert.True(t, result.SuitabilityFlag)
	assert.True(t, result.MatchPersisted)
	assert.Len(t, result.Creators, 2)

	assert.Equal(t, "answer-generated", recorded.OnboardingAnswerID)
	assert.Equal(t, []string{"c1", "c2"}, recorded.CreatorIDs)
	assert.Equal(t, []string{"c2"}, recorded.FallbackCreatorIDs)

	// The persisted answer carries the filtered categories.
	require.NotNil(t, answers.created)
	assert.Contains(t, answers.created.GetCategories(), "bitcoin")
}

func TestSubmit_NonSuitableProductIneligibleForFallback(t *testing.T) {
	answers := &capturingOnboardingRepo{}
	search := &fakeSearchService{resolve: func(_ context.Context, _ []string, fallbackEligible bool) ([]dto.CreatorMatch, error) {
		assert.False(t, fallbackEligible)
		return []dto.CreatorMatch{}, nil
	}}
	svc := NewOnboardingService(answers, NewKeywordClassifier(), search, &fakeMatchService{})

	result, err := svc.Submit(context.Background(), "user-1", dto.SubmitOnboardingRequest{
		ProductName:        "Pottery studio booking tool",
		ProductDescription: "Schedule kiln time and classes",
		TargetAudience:     "hobbyists",
	})
	require.NoError(t, err)
	assert.False(t, result.SuitabilityFlag)
}

func TestSubmit_AnswerPersistFailureIsFatal(t *testing.T) {
	answers := &capturingOnboardingRepo{fail: true}
	svc := NewOnboardingService(answers, NewKeywordClassifier(), &fakeSearchService{}, &fakeMatchService{})

	_, err := svc.Submit(context.Background(), "user-1", submitRequest())
	require.Error(t, err)
}

func TestSubmit_ResolutionFailureDegrades(t *testing.T) {
	answers := &capturingOnboardingRepo{}
	search := &fakeSearchService{resolve: func(context.Context, []string, bool) ([]dto.CreatorMatch, error) {
		return nil, errors.New("store down")
	}}
	svc := NewOnboardingService(answers, NewKeywordClassifier(), search, &fakeMatchService{})

	result, err := svc.Submit(context.Background(), "user-1", submitRequest())
	require.NoError(t, err)
	assert.Empty(t, result.Creators)
	assert.False(t, result.MatchPersisted)
	assert.NotEmpty(t, result.OnboardingAnswerID)
}

func TestSubmit_RecordingFailureDegrades(t *testing.T) {
	answers := &capturingOnboardingRepo{}
	search := &fakeSearchService{resolve: func(context.Context, []string, bool) ([]dto.CreatorMatch, error) {
		return []dto.CreatorMatch{{ID: "c1"}}, nil
	}}
	matches := &fakeMatchService{record: func(context.Context, string, dto.RecordMatchRequest) error {
		return apperrors.ErrPersistence(errors.New("permission denied"))
	}}
	svc := NewOnboardingService(answers, NewKeywordClassifier(), search, matches)

	result, err := svc.Submit(context.Background(), "user-1", submitRequest())
	require.NoError(t, err)
	assert.False(t, result.MatchPersisted)
	assert.Len(t, result.Creators, 1)
}

func TestSubmit_NoCreatorsSkipsRecording(t *testing.T) {
	answers := &capturingOnboardingRepo{}
	search := &fakeSearchService{resolve: func(context.Context, []string, bool) ([]dto.CreatorMatch, error) {
		return []dto.CreatorMatch{}, nil
	}}
	matches := &fakeMatchService{record: func(context.Context, string, dto.RecordMatchRequest) error {
		t.Fatal("recording should not run with no creators")
		return nil
	}}
	svc := NewOnboardingService(answers, NewKeywordClassifier(), search, matches)

	result, err := svc.Submit(context.Background(), "user-1", submitRequest())
	require.NoError(t, err)
	assert.False(t, result.MatchPersisted)
}
