package dto

// RecordMatchRequest persists one search result set. All of user_id,
// creator_ids, search_criteria and onboarding_answer_id are required;
// search_criteria is a pointer so that "present but empty" and "missing"
// are distinguishable. The creator_ids size cap is the configured result
// limit, enforced in the service.
type RecordMatchRequest struct {
	UserID             string    `json:"user_id" validate:"required"`
	CreatorIDs         []string  `json:"creator_ids" validate:"required,min=1"`
	SearchCriteria     *[]string `json:"search_criteria" validate:"required"`
	OnboardingAnswerID string    `json:"onboarding_answer_id" validate:"required"`
	// FallbackCreatorIDs is the subset of creator_ids that came from the
	// fallback pool. Optional; absent means no fallback entries.
	FallbackCreatorIDs []string `json:"fallback_creator_ids"`
}

type RecordMatchResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// MatchedCreator is a hydrated creator in the latest-match read path, with
// the display score computed for the presenter.
type MatchedCreator struct {
	CreatorMatch
	MatchScore int `json:"match_score"` // percentage
}

type LatestMatchResponse struct {
	Match *LatestMatch `json:"match"`
}

type LatestMatch struct {
	OnboardingAnswerID string           `json:"onboarding_answer_id"`
	SearchCriteria     []string         `json:"search_criteria"`
	Creators           []MatchedCreator `json:"creators"`
	CreatedAt          string           `json:"created_at"`
}
