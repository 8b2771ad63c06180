package dto

// UpsertCreatorRequest is the admin ingestion payload. Keyed on handle:
// re-submitting a handle replaces the profile.
type UpsertCreatorRequest struct {
	Handle            string   `json:"handle" validate:"required,max=100"`
	DisplayName       string   `json:"display_name" validate:"required,max=200"`
	Categories        []string `json:"categories" validate:"required"`
	YouTubeFollowers  *int64   `json:"youtube_followers"`
	TikTokFollowers   *int64   `json:"tiktok_followers"`
	EngagementRate    *float64 `json:"engagement_rate"`
	AvgViewCount      *int64   `json:"avg_view_count"`
	IsBitcoinSuitable bool     `json:"is_bitcoin_suitable"`
}
