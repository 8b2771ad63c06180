package repositories

import (
	"context"
	"errors"

	"creatormatch/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrMatchNotFound = errors.New("match not found")

// MatchRepository is the write side of the matching pipeline. It is
// constructed with the elevated database handle because the acting user has
// no direct grants on user_matches; callers never reach it except through
// the validated service boundary.
type MatchRepository interface {
	// UpsertUserMatch inserts or replaces the match keyed on
	// (user_id, onboarding_answer_id). Concurrent retries for the same
	// onboarding answer converge to one row.
	UpsertUserMatch(ctx context.Context, match *models.UserMatch) error

	FindLatestMatchByUserID(ctx context.Context, userID string) (*models.UserMatch, error)
	FindMatchByAnswerID(ctx context.Context, userID, onboardingAnswerID string) (*models.UserMatch, error)
	CountMatchesByUserID(ctx context.Context, userID string) (int64, error)
}

type MatchRepositoryImpl struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &MatchRepositoryImpl{db: db}
}

func (r *MatchRepositoryImpl) UpsertUserMatch(ctx context.Context, match *models.UserMatch) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "onboarding_answer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"search_criteria", "creator_ids", "fallback_ids", "updated_at",
		}),
	}).Create(match).Error
}

func (r *MatchRepositoryImpl) FindLatestMatchByUserID(ctx context.Context, userID string) (*models.UserMatch, error) {
	var match models.UserMatch
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *MatchRepositoryImpl) FindMatchByAnswerID(ctx context.Context, userID, onboardingAnswerID string) (*models.UserMatch, error) {
	var match models.UserMatch
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND onboarding_answer_id = ?", userID, onboardingAnswerID).
		First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *MatchRepositoryImpl) CountMatchesByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserMatch{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
