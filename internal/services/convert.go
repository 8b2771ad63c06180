package services

import (
	"creatormatch/internal/models"
	"creatormatch/internal/services/dto"
)

func toCreatorMatch(creator *models.Creator, fallback bool) dto.CreatorMatch {
	return dto.CreatorMatch{
		ID:               creator.ID,
		Handle:           creator.Handle,
		DisplayName:      creator.DisplayName,
		Categories:       creator.GetCategories(),
		TotalFollowers:   creator.FollowerCount(),
		YouTubeFollowers: creator.YouTubeFollowers,
		TikTokFollowers:  creator.TikTokFollowers,
		EngagementRate:   creator.EngagementRate,
		AvgViewCount:     creator.AvgViewCount,
		IsFallback:       fallback,
	}
}

func toCreatorMatches(creators []models.Creator, fallback bool) []dto.CreatorMatch {
	out := make([]dto.CreatorMatch, 0, len(creators))
	for i := range creators {
		out = append(out, toCreatorMatch(&creators[i], fallback))
	}
	return out
}
