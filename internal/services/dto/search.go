package dto

// SearchCreatorsRequest is the UI-facing search payload. Categories may be
// empty or omitted entirely; that is a valid degenerate input which returns
// the fallback pool only. A non-array value fails JSON binding.
type SearchCreatorsRequest struct {
	Categories []string `json:"categories"`
}

// CreatorMatch is one resolved creator in a search response. IsFallback marks
// low-confidence entries appended from the bitcoin-suitable pool; the UI must
// render them differently from primary matches.
type CreatorMatch struct {
	ID               string   `json:"id"`
	Handle           string   `json:"handle"`
	DisplayName      string   `json:"display_name"`
	Categories       []string `json:"categories"`
	TotalFollowers   int64    `json:"total_followers"`
	YouTubeFollowers *int64   `json:"youtube_followers,omitempty"`
	TikTokFollowers  *int64   `json:"tiktok_followers,omitempty"`
	EngagementRate   *float64 `json:"engagement_rate,omitempty"`
	AvgViewCount     *int64   `json:"avg_view_count,omitempty"`
	IsFallback       bool     `json:"is_fallback"`
}

type SearchCreatorsResponse struct {
	Creators []CreatorMatch `json:"creators"`
	Total    int            `json:"total"`
}
