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

// CreatorService covers the admin ingestion side of the creator catalog.
// Categories are vocabulary-filtered on the way in so the search tiers only
// ever see known labels.
type CreatorService interface {
	UpsertCreator(ctx context.Context, req dto.UpsertCreatorRequest) (*models.Creator, error)
	GetCreator(ctx context.Context, id string) (*models.Creator, error)
}

type creatorService struct {
	creators repositories.CreatorRepository
}

func NewCreatorService(creators repositories.CreatorRepository) CreatorService {
	return &creatorService{creators: creators}
}

func (s *creatorService) UpsertCreator(ctx context.Context, req dto.UpsertCreatorRequest) (*models.Creator, error) {
	creator := &models.Creator{
		Handle:            req.Handle,
		DisplayName:       req.DisplayName,
		YouTubeFollowers:  req.YouTubeFollowers,
		TikTokFollowers:   req.TikTokFollowers,
		EngagementRate:    req.EngagementRate,
		AvgViewCount:      req.AvgViewCount,
		IsBitcoinSuitable: req.IsBitcoinSuitable,
	}
	creator.SetCategories(FilterCategories(req.Categories))

	total := int64(0)
	if req.YouTubeFollowers != nil {
		total += *req.YouTubeFollowers
	}
	if req.TikTokFollowers != nil {
		total += *req.TikTokFollowers
	}
	if req.YouTubeFollowers != nil || req.TikTokFollowers != nil {
		creator.TotalFollowers = &total
	}

	if err := s.creators.UpsertCreator(ctx, creator); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "creator upserted", "handle", creator.Handle)
	return creator, nil
}

func (s *creatorService) GetCreator(ctx context.Context, id string) (*models.Creator, error) {
	creator, err := s.creators.FindCreatorByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCreatorNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return creator, nil
}
