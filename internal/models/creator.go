package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Creator is a content-creator profile. Rows are written by an external
// ingestion process and read-only from the search resolver's perspective.
type Creator struct {
	BaseModel
	Handle      string         `gorm:"uniqueIndex;not null" json:"handle"`
	DisplayName string         `gorm:"not null" json:"display_name"`
	Categories  datatypes.JSON `gorm:"type:jsonb" json:"categories"` // ["bitcoin", "trading"]

	// Per-platform metrics. All optional: a creator may be YouTube-only,
	// TikTok-only, or both.
	YouTubeFollowers *int64   `json:"youtube_followers,omitempty"`
	TikTokFollowers  *int64   `json:"tiktok_followers,omitempty"`
	EngagementRate   *float64 `json:"engagement_rate,omitempty"`
	AvgViewCount     *int64   `json:"avg_view_count,omitempty"`

	// TotalFollowers is the aggregate ranking key. NULL sorts last.
	TotalFollowers *int64 `gorm:"index" json:"total_followers,omitempty"`

	// IsBitcoinSuitable marks membership in the fallback pool, derived from
	// categorization at ingestion time.
	IsBitcoinSuitable bool `gorm:"default:false;index" json:"is_bitcoin_suitable"`
}

// GetCategories returns the category set as a string slice.
func (c *Creator) GetCategories() []string {
	var categories []string
	if len(c.Categories) > 0 {
		_ = json.Unmarshal(c.Categories, &categories)
	}
	return categories
}

func (c *Creator) SetCategories(categories []string) {
	data, _ := json.Marshal(categories)
	c.Categories = datatypes.JSON(data)
}

// FollowerCount treats a missing total as zero so absent metrics never
// raise rank.
func (c *Creator) FollowerCount() int64 {
	if c.TotalFollowers == nil {
		return 0
	}
	return *c.TotalFollowers
}
