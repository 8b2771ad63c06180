package services

import (
	"context"
	"strings"

	"creatormatch/internal/services/dto"
)

// Classifier maps a product description to category labels plus a coarse
// suitability flag. Implementations may call external models; the returned
// categories are untrusted and must pass FilterCategories before use.
type Classifier interface {
	Classify(ctx context.Context, info dto.ProductInfo) (dto.Classification, error)
}

// keywordClassifier is the built-in implementation. It scans the combined
// product text for vocabulary terms and a small synonym table. Deliberately
// simple; the interface exists so a model-backed classifier can replace it
// without touching the onboarding flow.
type keywordClassifier struct{}

func NewKeywordClassifier() Classifier {
	return &keywordClassifier{}
}

// synonyms maps free-text phrases to vocabulary labels that the literal
// vocabulary scan would miss.
var synonyms = map[string]string{
	"btc":                     "bitcoin",
	"crypto":                  "bitcoin",
	"cryptocurrency":          "bitcoin",
	"nft":                     "nfts",
	"eth":                     "ethereum",
	"wallet":                  "self-custody",
	"cold storage":            "hardware-wallets",
	"ledger":                  "hardware-wallets",
	"taxes":                   "tax",
	"podcast":                 "podcasts",
	"interview":               "interviews",
	"startup":                 "startups",
	"stablecoin":              "stablecoins",
	"altcoin":                 "altcoins",
	"finance":                 "personal-finance",
	"invest":                  "investing",
	"machine learning":        "ai",
	"artificial intelligence": "ai",
}

func (k *keywordClassifier) Classify(_ context.Context, info dto.ProductInfo) (dto.Classification, error) {
	text := strings.ToLower(info.Name + " " + info.Description + " " + info.Audience)

	seen := make(map[string]struct{})
	var categories []string
	add := func(label string) {
		if _, dup := seen[label]; dup {
			return
		}
		seen[label] = struct{}{}
		categories = append(categories, label)
	}

	for _, label := range CategoryVocabulary {
		if strings.Contains(text, label) {
			add(label)
		}
	}
	for phrase, label := range synonyms {
		if strings.Contains(text, phrase) {
			add(label)
		}
	}

	_, suitable := seen["bitcoin"]
	if !suitable {
		_, suitable = seen["lightning"]
	}

	return dto.Classification{
		Categories:      categories,
		SuitabilityFlag: suitable,
	}, nil
}
