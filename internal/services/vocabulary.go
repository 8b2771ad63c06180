package services

import "strings"

// CategoryVocabulary is the fixed set of labels the classifier is allowed to
// produce and the search resolver is allowed to query with. Labels outside
// this set are dropped silently at the classifier boundary.
var CategoryVocabulary = []string{
	"bitcoin",
	"btc-only",
	"trading",
	"defi",
	"nfts",
	"mining",
	"ethereum",
	"altcoins",
	"stablecoins",
	"macro",
	"investing",
	"personal-finance",
	"fintech",
	"payments",
	"privacy",
	"security",
	"self-custody",
	"hardware-wallets",
	"lightning",
	"ordinals",
	"regulation",
	"tax",
	"education",
	"news",
	"podcasts",
	"interviews",
	"technical-analysis",
	"on-chain-analysis",
	"gaming",
	"metaverse",
	"ai",
	"startups",
}

var vocabularySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(CategoryVocabulary))
	for _, c := range CategoryVocabulary {
		m[c] = struct{}{}
	}
	return m
}()

// FilterCategories normalizes labels (trim + lowercase) and keeps only those
// present in the vocabulary, deduplicated, preserving first-seen order.
// Always returns a non-nil slice.
func FilterCategories(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, c := range raw {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := vocabularySet[c]; !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
