package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// UserMatch is the persisted result of one creator search. At most one row
// exists per (user_id, onboarding_answer_id); writes are upserts on that key.
type UserMatch struct {
	BaseModel
	UserID             string         `gorm:"not null;uniqueIndex:idx_user_matches_user_answer" json:"user_id"`
	OnboardingAnswerID string         `gorm:"not null;uniqueIndex:idx_user_matches_user_answer" json:"onboarding_answer_id"`
	SearchCriteria     datatypes.JSON `gorm:"type:jsonb" json:"search_criteria"`
	CreatorIDs         datatypes.JSON `gorm:"type:jsonb" json:"creator_ids"` // ordered, capped at the configured max
	// FallbackIDs is the subset of CreatorIDs that came from the fallback
	// pool, so the read path can pin their display score.
	FallbackIDs datatypes.JSON `gorm:"type:jsonb" json:"fallback_ids"`
}

func (m *UserMatch) GetSearchCriteria() []string {
	var criteria []string
	if len(m.SearchCriteria) > 0 {
		_ = json.Unmarshal(m.SearchCriteria, &criteria)
	}
	return criteria
}

func (m *UserMatch) SetSearchCriteria(criteria []string) {
	if criteria == nil {
		criteria = []string{}
	}
	data, _ := json.Marshal(criteria)
	m.SearchCriteria = datatypes.JSON(data)
}

func (m *UserMatch) GetCreatorIDs() []string {
	var ids []string
	if len(m.CreatorIDs) > 0 {
		_ = json.Unmarshal(m.CreatorIDs, &ids)
	}
	return ids
}

func (m *UserMatch) SetCreatorIDs(ids []string) {
	data, _ := json.Marshal(ids)
	m.CreatorIDs = datatypes.JSON(data)
}

func (m *UserMatch) GetFallbackIDs() []string {
	var ids []string
	if len(m.FallbackIDs) > 0 {
		_ = json.Unmarshal(m.FallbackIDs, &ids)
	}
	return ids
}

func (m *UserMatch) SetFallbackIDs(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	data, _ := json.Marshal(ids)
	m.FallbackIDs = datatypes.JSON(data)
}
