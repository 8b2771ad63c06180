package dto

// SubmitOnboardingRequest carries the free-text product description the
// classifier turns into category labels.
type SubmitOnboardingRequest struct {
	ProductName        string `json:"product_name" validate:"required,max=200"`
	ProductDescription string `json:"product_description" validate:"max=5000"`
	TargetAudience     string `json:"target_audience" validate:"max=1000"`
}

type OnboardingResult struct {
	OnboardingAnswerID string         `json:"onboarding_answer_id"`
	Categories         []string       `json:"categories"`
	SuitabilityFlag    bool           `json:"suitability_flag"`
	Creators           []CreatorMatch `json:"creators"`
	// MatchPersisted is false when the durable write failed; the search
	// result is still returned to the caller.
	MatchPersisted bool `json:"match_persisted"`
}

// ProductInfo is the classifier boundary input.
type ProductInfo struct {
	Name        string
	Description string
	Audience    string
}

// Classification is the classifier boundary output. Categories may contain
// labels outside the fixed vocabulary; callers must filter before use.
type Classification struct {
	Categories      []string
	SuitabilityFlag bool
}
