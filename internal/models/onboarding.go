package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// OnboardingAnswer is one product description submitted by a user. Its ID is
// the idempotence key for persisted matches: re-running a search for the same
// answer must converge to a single UserMatch row.
type OnboardingAnswer struct {
	BaseModel
	UserID             string         `gorm:"not null;index" json:"user_id"`
	ProductName        string         `gorm:"not null" json:"product_name"`
	ProductDescription string         `json:"product_description"`
	TargetAudience     string         `json:"target_audience"`
	Categories         datatypes.JSON `gorm:"type:jsonb" json:"categories"` // classifier output, vocabulary-filtered
}

func (a *OnboardingAnswer) GetCategories() []string {
	var categories []string
	if len(a.Categories) > 0 {
		_ = json.Unmarshal(a.Categories, &categories)
	}
	return categories
}

func (a *OnboardingAnswer) SetCategories(categories []string) {
	data, _ := json.Marshal(categories)
	a.Categories = datatypes.JSON(data)
}
