package ingredient

import (
	"context"
	"fmt"
	"strings"

	"recipe-catalog/domain"
	"recipe-catalog/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	IngredientRepository interface {
		// WithTx returns a repository bound to tx, so ingredient writes commit or
		// roll back together with the caller's recipe write.
		WithTx(tx *gorm.DB) IngredientRepository
		GetOrCreate(ctx context.Context, names []string) ([]*entities.Ingredient, error)
		GetIngredients(ctx context.Context, search string, page, limit int) ([]domain.IngredientUsage, int64, error)
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) WithTx(tx *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: tx}
}

// GetOrCreate returns one ingredient per name, in the order given, creating
// the missing ones. Names match exactly and case-sensitively.
//
// Each insert is ON CONFLICT (name) DO NOTHING followed by a select by name,
// so concurrent writers racing on the same name all end up with the row the
// unique index kept.
func (r *ingredientRepository) GetOrCreate(ctx context.Context, names []string) ([]*entities.Ingredient, error) {
	ingredients := make([]*entities.Ingredient, 0, len(names))
	for _, name := range names {
		candidate := &entities.Ingredient{Name: name}
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).
			Create(candidate).Error
		if err != nil {
			return nil, fmt.Errorf("insert ingredient %q: %w", name, err)
		}

		var stored entities.Ingredient
		if err := r.db.WithContext(ctx).Where("name = ?", name).First(&stored).Error; err != nil {
			return nil, fmt.Errorf("fetch ingredient %q: %w", name, err)
		}
		ingredients = append(ingredients, &stored)
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetIngredients(ctx context.Context, search string, page, limit int) ([]domain.IngredientUsage, int64, error) {
	var (
		rows  []domain.IngredientUsage
		count int64
	)
	page, limit = domain.NormalizePage(page, limit)
	offset := domain.PageOffset(page, limit)

	search = strings.TrimSpace(search)
	byName := func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		return db.Where("LOWER(ingredients.name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if err := r.db.WithContext(ctx).Model(&entities.Ingredient{}).Scopes(byName).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Model(&entities.Ingredient{}).
		Scopes(byName).
		Select("ingredients.id AS id, ingredients.name AS name, COUNT(recipe_ingredients.recipe_id) AS recipe_count").
		Joins("LEFT JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
		Group("ingredients.id, ingredients.name").
		Order("recipe_count desc, ingredients.name asc").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, count, nil
}
