package services

import (
	"context"
	"sort"
	"strings"

	"creatormatch/internal/config"
	"creatormatch/internal/logger"
	"creatormatch/internal/models"
	"creatormatch/internal/repositories"
	"creatormatch/internal/services/dto"
	"creatormatch/pkg/apperrors"

	"golang.org/x/sync/errgroup"
)

// SearchService resolves category criteria to a ranked creator list using a
// cascading widening strategy: exact overlap first, then full containment,
// then per-category union. A tier that errors counts as an empty tier so the
// cascade keeps going. The bitcoin-suitable pool tops up thin result sets,
// but only when the caller marks the request fallback-eligible.
type SearchService interface {
	ResolveCreators(ctx context.Context, categories []string, fallbackEligible bool) ([]dto.CreatorMatch, error)
}

type searchService struct {
	creators repositories.CreatorRepository
	cfg      config.MatchingConfig
}

func NewSearchService(creators repositories.CreatorRepository, cfg config.MatchingConfig) SearchService {
	return &searchService{creators: creators, cfg: cfg}
}

func (s *searchService) ResolveCreators(ctx context.Context, categories []string, fallbackEligible bool) ([]dto.CreatorMatch, error) {
	criteria := normalizeCriteria(categories)

	if len(criteria) == 0 {
		if !fallbackEligible {
			return []dto.CreatorMatch{}, nil
		}
		// Degenerate input. Nothing to match on, so serve the fallback pool
		// directly instead of failing the request.
		pool, err := s.creators.FindBitcoinSuitable(ctx, nil, s.cfg.MaxResults)
		if err != nil {
			logger.CtxWithError(ctx, "fallback pool query failed", err)
			return nil, apperrors.ErrUpstreamQuery(err)
		}
		return toCreatorMatches(pool, true), nil
	}

	resolved, cascadeFailed := s.runCascade(ctx, criteria)

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].FollowerCount() > resolved[j].FollowerCount()
	})
	if len(resolved) > s.cfg.MaxResults {
		resolved = resolved[:s.cfg.MaxResults]
	}

	matches := toCreatorMatches(resolved, false)

	if fallbackEligible && len(matches) < s.cfg.FallbackMinResults {
		augmented, err := s.augmentWithFallback(ctx, matches)
		if err != nil {
			// An error surfaces only when nothing at all could be computed:
			// every tier failed and so did the pool. Otherwise degrade to
			// whatever is in hand.
			if len(matches) == 0 && cascadeFailed {
				return nil, apperrors.ErrUpstreamQuery(err)
			}
			logger.CtxWithError(ctx, "fallback augmentation failed", err)
			return matches, nil
		}
		matches = augmented
	}
	return matches, nil
}

// runCascade tries each tier in turn and stops at the first one that yields
// rows. Tier errors are logged and treated as zero rows; the second return
// reports whether every tier query actually failed.
func (s *searchService) runCascade(ctx context.Context, criteria []string) ([]models.Creator, bool) {
	found, overlapErr := s.creators.FindByCategoryOverlap(ctx, criteria, s.cfg.MaxResults)
	if overlapErr != nil {
		logger.CtxWithError(ctx, "overlap tier failed", overlapErr, "categories", criteria)
	} else if len(found) > 0 {
		logger.CtxDebug(ctx, "resolved via overlap tier", "count", len(found))
		return found, false
	}

	found, containErr := s.creators.FindByCategoryContainment(ctx, criteria, s.cfg.MaxResults)
	if containErr != nil {
		logger.CtxWithError(ctx, "containment tier failed", containErr, "categories", criteria)
	} else if len(found) > 0 {
		logger.CtxDebug(ctx, "resolved via containment tier", "count", len(found))
		return found, false
	}

	found, unionFailed := s.unionTier(ctx, criteria)
	if len(found) > 0 {
		logger.CtxDebug(ctx, "resolved via union tier", "count", len(found))
	}
	return found, overlapErr != nil && containErr != nil && unionFailed
}

// unionTier queries each category independently and merges the results,
// first occurrence wins, in the order the categories were requested. The
// queries run concurrently; a failed branch contributes nothing. The second
// return reports whether every branch failed.
func (s *searchService) unionTier(ctx context.Context, criteria []string) ([]models.Creator, bool) {
	perCategory := make([][]models.Creator, len(criteria))
	branchErrs := make([]error, len(criteria))

	g, gctx := errgroup.WithContext(ctx)
	for i, category := range criteria {
		i, category := i, category
		g.Go(func() error {
			found, err := s.creators.FindByCategoryContainment(gctx, []string{category}, s.cfg.MaxResults)
			if err != nil {
				logger.CtxWithError(gctx, "union tier branch failed", err, "category", category)
				branchErrs[i] = err
				return nil
			}
			perCategory[i] = found
			return nil
		})
	}
	_ = g.Wait()

	allFailed := true
	for _, err := range branchErrs {
		if err == nil {
			allFailed = false
			break
		}
	}

	seen := make(map[string]struct{})
	var merged []models.Creator
	for _, found := range perCategory {
		for _, creator := range found {
			if _, dup := seen[creator.ID]; dup {
				continue
			}
			seen[creator.ID] = struct{}{}
			merged = append(merged, creator)
		}
	}
	return merged, allFailed
}

// augmentWithFallback tops the result set up to the configured minimum from
// the bitcoin-suitable pool.
func (s *searchService) augmentWithFallback(ctx context.Context, matches []dto.CreatorMatch) ([]dto.CreatorMatch, error) {
	exclude := make([]string, 0, len(matches))
	for _, m := range matches {
		exclude = append(exclude, m.ID)
	}

	pool, err := s.creators.FindBitcoinSuitable(ctx, exclude, s.cfg.FallbackMinResults-len(matches))
	if err != nil {
		return nil, err
	}
	return append(matches, toCreatorMatches(pool, true)...), nil
}

func normalizeCriteria(categories []string) []string {
	out := make([]string, 0, len(categories))
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
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
