package repositories

import (
	"context"
	"errors"

	"creatormatch/internal/models"

	"gorm.io/gorm"
)

var ErrAnswerNotFound = errors.New("onboarding answer not found")

type OnboardingRepository interface {
	CreateAnswer(ctx context.Context, answer *models.OnboardingAnswer) error
	FindAnswerByID(ctx context.Context, id string) (*models.OnboardingAnswer, error)
	FindLatestAnswerByUserID(ctx context.Context, userID string) (*models.OnboardingAnswer, error)
}

type OnboardingRepositoryImpl struct {
	db *gorm.DB
}

func NewOnboardingRepository(db *gorm.DB) OnboardingRepository {
	return &OnboardingRepositoryImpl{db: db}
}

func (r *OnboardingRepositoryImpl) CreateAnswer(ctx context.Context, answer *models.OnboardingAnswer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

func (r *OnboardingRepositoryImpl) FindAnswerByID(ctx context.Context, id string) (*models.OnboardingAnswer, error) {
	var answer models.OnboardingAnswer
	err := r.db.WithContext(ctx).First(&answer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, err
	}
	return &answer, nil
}

func (r *OnboardingRepositoryImpl) FindLatestAnswerByUserID(ctx context.Context, userID string) (*models.OnboardingAnswer, error) {
	var answer models.OnboardingAnswer
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, err
	}
	return &answer, nil
}
