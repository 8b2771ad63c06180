package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"creatormatch/internal/config"
	"creatormatch/internal/models"
	"creatormatch/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCreatorRepo lets each test script the repository behavior per method.
type fakeCreatorRepo struct {
	upsert      func(ctx context.Context, creator *models.Creator) error
	findByID    func(ctx context.Context, id string) (*models.Creator, error)
	findByIDs   func(ctx context.Context, ids []string) ([]models.Creator, error)
	overlap     func(ctx context.Context, categories []string, limit int) ([]models.Creator, error)
	containment func(ctx context.Context, categories []string, limit int) ([]models.Creator, error)
	fallback    func(ctx context.Context, excludeIDs []string, limit int) ([]models.Creator, error)
}

func (f *fakeCreatorRepo) UpsertCreator(ctx context.Context, creator *models.Creator) error {
	if f.upsert == nil {
		return nil
	}
	return f.upsert(ctx, creator)
}

func (f *fakeCreatorRepo) FindCreatorByID(ctx context.Context, id string) (*models.Creator, error) {
	return f.findByID(ctx, id)
}

func (f *fakeCreatorRepo) FindByIDs(ctx context.Context, ids []string) ([]models.Creator, error) {
	return f.findByIDs(ctx, ids)
}

func (f *fakeCreatorRepo) FindByCategoryOverlap(ctx context.Context, categories []string, limit int) ([]models.Creator, error) {
	if f.overlap == nil {
		return nil, nil
	}
	return f.overlap(ctx, categories, limit)
}

func (f *fakeCreatorRepo) FindByCategoryContainment(ctx context.Context, categories []string, limit int) ([]models.Creator, error) {
	if f.containment == nil {
		return nil, nil
	}
	return f.containment(ctx, categories, limit)
}

func (f *fakeCreatorRepo) FindBitcoinSuitable(ctx context.Context, excludeIDs []string, limit int) ([]models.Creator, error) {
	if f.fallback == nil {
		return nil, nil
	}
	return f.fallback(ctx, excludeIDs, limit)
}

func testMatchingConfig() config.MatchingConfig {
	return config.MatchingConfig{
		MaxResults:           50,
		FallbackMinResults:   6,
		FallbackScorePercent: 33,
	}
}

func newTestCreator(id string, followers int64, categories ...string) models.Creator {
	c := models.Creator{
		Handle:      "h-" + id,
		DisplayName: "Creator " + id,
	}
	c.ID = id
	c.TotalFollowers = &followers
	c.SetCategories(categories)
	return c
}

func TestResolveCreators_OverlapTierWins(t *testing.T) {
	repo := &fakeCreatorRepo{
		overlap: func(_ context.Context, categories []string, _ int) ([]models.Creator, error) {
			assert.Equal(t, []string{"bitcoin", "trading"}, categories)
			return []models.Creator{
				newTestCreator("a", 1000, "bitcoin"),
				newTestCreator("b", 9000, "trading"),
				newTestCreator("c", 5000, "bitcoin", "trading"),
				newTestCreator("d", 100, "bitcoin"),
				newTestCreator("e", 7000, "trading"),
				newTestCreator("f", 300, "bitcoin"),
			}, nil
		},
		containment: func(context.Context, []string, int) ([]models.Creator, error) {
			t.Fatal("containment tier should not run when overlap yields rows")
			return nil, nil
		},
	}

	svc := NewSearchService(repo, testMatchingConfig())
	matches, err := svc.ResolveCreators(context.Background(), []string{"Bitcoin", "trading", "bitcoin"}, true)
	require.NoError(t, err)
	require.Len(t, matches, 6)

	// Ranked by followers, descending.
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
		assert.False(t, m.IsFallback)
	}
	assert.Equal(t, []string{"b", "e", "c", "a", "f", "d"}, ids)
}

func TestResolveCreators_CascadesToContainment(t *testing.T) {
	repo := &fakeCreatorRepo{
		containment: func(_ context.Context, categories []string, _ int) ([]models.Creator, error) {
			require.Equal(t, []string{"defi", "nfts"}, categories)
			return []models.Creator{
				newTestCreator("x", 100, "defi", "nfts"),
				newTestCreator("y", 200, "defi", "nfts", "trading"),
				newTestCreator("z", 50, "defi", "nfts"),
				newTestCreator("w", 500, "defi", "nfts"),
				newTestCreator("v", 400, "defi", "nfts"),
				newTestCreator("u", 300, "defi", "nfts"),
			}, nil
		},
	}

	svc := NewSearchService(repo, testMatchingConfig())
	matches, err := svc.ResolveCreators(context.Background(), []string{"defi", "nfts"}, true)
	require.NoError(t, err)
	require.Len(t, matches, 6)
	assert.Equal(t, "w", matches[0].ID)
	assert.Equal(t, "z", matches[5].ID)
}

func TestResolveCreators_UnionTierDedupes(t *testing.T) {
	shared := newTestCreator("shared", 800, "bitcoin", "trading")
	repo := &fakeCreatorRepo{
		containment: func(_ context.Context, categories []string, _ int) ([]models.Creator, error) {
			// Full-set containment finds nothing; single-category branches do.
			if len(categories) != 1 {
				return nil, nil
			}
			switch categories[0] {
			case "bitcoin":
				return []models.Creator{shared, newTestCreator("b1", 100, "bitcoin")}, nil
			case "trading":
				return []models.Creator{shared, newTestCreator("t1", 9999, "trading")}, nil
			}
			return nil, nil
		},
	}

	svc := NewSearchService(repo, testMatchingConfig())
	matches, err := svc.ResolveCreators(context.Background(), []string{"bitcoin", "trading"}, true)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	seen := map[string]int{}
	for _, m := range matches {
		seen[m.ID]++
	}
	assert.Equal(t, 1, seen["shared"])
	assert.Equal(t, "t1", matches[0].ID) // highest followers after the union
}

func TestResolveCreators_UnknownCategoryServesFallback(t *testing.T) {
	repo := &fakeCreatorRepo{
		fallback: func(_ context.Context, excludeIDs []string, limit int) ([]models.Creator, error) {
			assert.Empty(t, excludeIDs)
			assert.Equal(t, 6, limit)
			return []models.Creator{
				newTestCreator("f1", 100, "bitcoin"),
				newTestCreator("f2", 90, "bitcoin"),
			}, nil
		},
	}

	svc := NewSearchService(repo, testMatchingConfig())
	matches, err := svc.ResolveCreators(context.Background(), []string{"no-such-category"}, true)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.True(t, m.IsFallback)
	}
}

func TestResolveCreators_EmptyCriteriaFallbackOnly(t *testing.T) {
	called := false
	repo := &fakeCreatorRepo{
		overlap: func(context.Context, []string, int) ([]models.Creator, error) {
			t.Fatal("no tier should run for empty criteria")
			return nil, nil
		},
		fallback: func(context.Context, []string, int) ([]models.Creator, error) {
			called = true
			return []models.Creator{newTestCreator("f1", 10, "bitcoin")}, nil
		},
	}

	svc := NewSearchService(repo, testMatchingConfig())
	matches, err := svc.ResolveCreators(context.Background(), []string{"  ", ""}, true)
	require.NoError(t, err)
	assert.True(t, called)
	require.Len(t, matches, 1)
	assert.True(t, matches[0].IsFallback)
}

func TestResolveCreators_IneligibleSkipsFallbackAugmentation(t *testing.T) {
	repo := &fakeCreatorRepo{
		overlap: func(context.Context, []string, int) ([]models.Creator, error) {
			return []models.Creator{
				newTestCreator("a", 100, "bitcoin"),
				newTestCreator("b", 50, "bitcoin"),
			}, nil
		},
		fallback: func(context.Context, []string, int) ([]models.Creator, error) {
			t.Fatal("fallback pool must not be queried for ineligible requests")
			return nil, nil
		},
	}

	svc := NewSearchService(repo, testMatchingConfig())
	matches, err := svc.ResolveCreators(context.Background(), []string{"bitcoin"}, false)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.False(t, m.IsFallback)
	}
}

func TestResolveCreators_IneligibleEmptyCriteriaYieldsNothing(t *testing.T) {
	repo := &fakeCreatorRepo{
		fallback: func(context.Context, []string, int) ([]models.Creator, error) {
			t.Fatal("fallback pool must not be queried for ineligible requests")
			return nil, nil
		},
	}

	svc := NewSearchService(repo, testMatchingConfig())
	matches, err := svc.ResolveCreators(context.Background(), nil, false)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestResolveCreators_TierErrorTreatedAsEmpty(t *testing.T) {
	repo := &fakeCreatorRepo{
		overlap: func(context.Context, []string, int) ([]models.Creator, error) {
			return nil, errors.New("connection reset")
		},
		containment: func(_ context.Context, categories []string, _ int) ([]models.Creator, error) {
			if len(categories) == 2 {
				return []models.Creator{
					newTestCreator("c1", 100, "bitcoin", "defi"),
					newTestCreator("c2", 200, "bitcoin", "defi"),
					newTestCreator("c3", 300, "bitcoin", "defi"),
					newTestCreator("c4", 400, "bitcoin", "defi"),
					newTestCreator("c5", 500, "bitcoin", "defi"),
					newTestCreator("c6", 600, "bitcoin", "defi"),
				}, nil
			}
			return nil, nil
		},
	}

	svc := NewSearchService(repo, testMatchingConfig())
	matches, err := svc.ResolveCreators(context.Background(), []string{"bitcoin", "defi"}, true)
	require.NoError(t, err)
	assert.Len(t, matches, 6)
}

func TestResolveCreators_FallbackErrorDegradesToPartial(t *testing.T) {
	repo := &fakeCreatorRepo{
		overlap: func(context.Context, []string, int) ([]models.Creator, error) {
			return []models.Creator{
				newTestCreator("a", 100, "bitcoin"),
				newTestCreator("b", 50, "bitcoin"),
			}, nil
		},
		fallback: func(context.Context, []string, int) ([]models.Creator, error) {
			return nil, errors.New("pool unavailable")
		},
	}

	svc := NewSearchService(repo, testMatchingConfig())
	matches, err := svc.ResolveCreators(context.Background(), []string{"bitcoin"}, true)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.False(t, matches[0].IsFallback)
}

func TestResolveCreators_AugmentsThinResults(t *testing.T) {
	repo := &fakeCreatorRepo{
		overlap: func(context.Context, []string, int) ([]models.Creator, error) {
			return []models.Creator{
				newTestCreator("a", 100, "bitcoin"),
				newTestCreator("b", 50, "bitcoin"),
			}, nil
		},
		fallback: func(_ context.Context, excludeIDs []string, limit int) ([]models.Creator, error) {
			assert.ElementsMatch(t, []string{"a", "b"}, excludeIDs)
			assert.Equal(t, 4, limit)
			return []models.Creator{
				newTestCreator("f1", 10, "bitcoin"),
				newTestCreator("f2", 9, "bitcoin"),
				newTestCreator("f3", 8, "bitcoin"),
				newTestCreator("f4", 7, "bitcoin"),
			}, nil
		},
	}

	svc := NewSearchService(repo, testMatchingConfig())
	matches, err := svc.ResolveCreators(context.Background(), []string{"bitcoin"}, true)
	require.NoError(t, err)
	require.Len(t, matches, 6)

	// Primary matches stay ahead of fallback entries.
	assert.False(t, matches[0].IsFallback)
	assert.False(t, matches[1].IsFallback)
	for _, m := range matches[2:] {
		assert.True(t, m.IsFallback)
	}
}

func TestResolveCreators_TruncatesToMaxResults(t *testing.T) {
	repo := &fakeCreatorRepo{
		overlap: func(context.Context, []string, int) ([]models.Creator, error) {
			creators := make([]models.Creator, 0, 60)
			for i := 0; i < 60; i++ {
				creators = append(creators, newTestCreator(fmt.Sprintf("c%02d", i), int64(i), "bitcoin"))
			}
			return creators, nil
		},
	}

	svc := NewSearchService(repo, testMatchingConfig())
	matches, err := svc.ResolveCreators(context.Background(), []string{"bitcoin"}, true)
	require.NoError(t, err)
	assert.Len(t, matches, 50)
	assert.Equal(t, "c59", matches[0].ID)
}

func TestResolveCreators_TotalFailureSurfacesError(t *testing.T) {
	down := errors.New("database unreachable")
	repo := &fakeCreatorRepo{
		overlap: func(context.Context, []string, int) ([]models.Creator, error) {
			return nil, down
		},
		containment: func(context.Context, []string, int) ([]models.Creator, error) {
			return nil, down
		},
		fallback: func(context.Context, []string, int) ([]models.Creator, error) {
			return nil, down
		},
	}

	svc := NewSearchService(repo, testMatchingConfig())
	_, err := svc.ResolveCreators(context.Background(), []string{"bitcoin", "defi"}, true)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeDatabaseError, appErr.Code)
	assert.Equal(t, "search", appErr.Domain)
}

func TestResolveCreators_MissingFollowersRankLast(t *testing.T) {
	noMetrics := newTestCreator("none", 0, "bitcoin")
	noMetrics.TotalFollowers = nil

	repo := &fakeCreatorRepo{
		overlap: func(context.Context, []string, int) ([]models.Creator, error) {
			return []models.Creator{
				noMetrics,
				newTestCreator("one", 1, "bitcoin"),
			}, nil
		},
		fallback: func(context.Context, []string, int) ([]models.Creator, error) {
			return nil, nil
		},
	}

	svc := NewSearchService(repo, testMatchingConfig())
	matches, err := svc.ResolveCreators(context.Background(), []string{"bitcoin"}, true)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "one", matches[0].ID)
	assert.Equal(t, int64(0), matches[1].TotalFollowers)
}
