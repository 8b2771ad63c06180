package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"creatormatch/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrCreatorNotFound = errors.New("creator not found")

// CreatorRepository is the read side of the matching pipeline. Category
// queries use PostgreSQL JSONB containment on the categories column.
type CreatorRepository interface {
	UpsertCreator(ctx context.Context, creator *models.Creator) error
	FindCreatorByID(ctx context.Context, id string) (*models.Creator, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Creator, error)

	// FindByCategoryOverlap returns creators whose category set intersects
	// the given categories (non-empty intersection).
	FindByCategoryOverlap(ctx context.Context, categories []string, limit int) ([]models.Creator, error)

	// FindByCategoryContainment returns creators whose category set contains
	// every given category (superset).
	FindByCategoryContainment(ctx context.Context, categories []string, limit int) ([]models.Creator, error)

	// FindBitcoinSuitable returns the fallback pool, excluding the given ids.
	FindBitcoinSuitable(ctx context.Context, excludeIDs []string, limit int) ([]models.Creator, error)
}

type CreatorRepositoryImpl struct {
	db *gorm.DB
}

func NewCreatorRepository(db *gorm.DB) CreatorRepository {
	return &CreatorRepositoryImpl{db: db}
}

// followerOrder keeps creators without metrics at the bottom of the ranking.
const followerOrder = "total_followers DESC NULLS LAST"

func (r *CreatorRepositoryImpl) UpsertCreator(ctx context.Context, creator *models.Creator) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "handle"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "categories",
			"you_tube_followers", "tik_tok_followers",
			"engagement_rate", "avg_view_count",
			"total_followers", "is_bitcoin_suitable",
			"updated_at",
		}),
	}).Create(creator).Error
}

func (r *CreatorRepositoryImpl) FindCreatorByID(ctx context.Context, id string) (*models.Creator, error) {
	var creator models.Creator
	err := r.db.WithContext(ctx).First(&creator, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, err
	}
	return &creator, nil
}

func (r *CreatorRepositoryImpl) FindByIDs(ctx context.Context, ids []string) ([]models.Creator, error) {
	var creators []models.Creator
	if len(ids) == 0 {
		return creators, nil
	}
	// Result order is whatever the store returns; callers re-map by id.
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&creators).Error
	return creators, err
}

func (r *CreatorRepositoryImpl) FindByCategoryOverlap(ctx context.Context, categories []string, limit int) ([]models.Creator, error) {
	var creators []models.Creator
	if len(categories) == 0 {
		return creators, nil
	}

	// JSONB overlap: categories contains any of the requested elements.
	conditions := []string{}
	args := []interface{}{}
	for _, category := range categories {
		conditions = append(conditions, "categories::jsonb @> ?")
		categoryJSON, _ := json.Marshal([]string{category})
		args = append(args, datatypes.JSON(categoryJSON))
	}

	err := r.db.WithContext(ctx).
		Where("("+strings.Join(conditions, " OR ")+")", args...).
		Order(followerOrder).
		Limit(limit).
		Find(&creators).Error
	return creators, err
}

func (r *CreatorRepositoryImpl) FindByCategoryContainment(ctx context.Context, categories []string, limit int) ([]models.Creator, error) {
	var creators []models.Creator
	if len(categories) == 0 {
		return creators, nil
	}

	// JSONB containment of the full requested set: every element present.
	categoriesJSON, _ := json.Marshal(categories)

	err := r.db.WithContext(ctx).
		Where("categories::jsonb @> ?", datatypes.JSON(categoriesJSON)).
		Order(followerOrder).
		Limit(limit).
		Find(&creators).Error
	return creators, err
}

func (r *CreatorRepositoryImpl) FindBitcoinSuitable(ctx context.Context, excludeIDs []string, limit int) ([]models.Creator, error) {
	var creators []models.Creator

	query := r.db.WithContext(ctx).Where("is_bitcoin_suitable = ?", true)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	err := query.Order(followerOrder).Limit(limit).Find(&creators).Error
	return creators, err
}
