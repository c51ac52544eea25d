package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/pkg/ingredient"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var editableColumns = []string{"name", "description", "cooking_time", "static_image", "image_url"}

type (
	RecipeRepository interface {
		// SaveRecipe inserts or updates recipe in a single transaction. When
		// replaceIngredients is set the ingredient set becomes exactly names.
		// Difficulty is recomputed before the transaction commits.
		SaveRecipe(ctx context.Context, recipe *entities.Recipe, names []string, replaceIngredients bool) error
		RefreshDifficulty(ctx context.Context, tx *gorm.DB, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, page, limit int) ([]entities.Recipe, int64, error)
		GetAllRecipes(ctx context.Context) ([]entities.Recipe, error)
		FilterRecipes(ctx context.Context, filter domain.AdminRecipeFilter) ([]entities.Recipe, int64, error)
		UpdateImageURL(ctx context.Context, id string, imageURL string) error
		DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error
	}

	recipeRepository struct {
		db                   *gorm.DB
		ingredientRepository ingredient.IngredientRepository
	}
)

func NewRecipeRepository(db *gorm.DB, ingredientRepository ingredient.IngredientRepository) RecipeRepository {
	return &recipeRepository{
		db:                   db,
		ingredientRepository: ingredientRepository,
	}
}

func (r *recipeRepository) SaveRecipe(ctx context.Context, recipe *entities.Recipe, names []string, replaceIngredients bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if recipe.ID == uuid.Nil {
			if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
				return fmt.Errorf("create recipe: %w", err)
			}
		} else {
			if err := tx.Model(recipe).Select(editableColumns).Updates(recipe).Error; err != nil {
				return fmt.Errorf("update recipe: %w", err)
			}
		}

		if replaceIngredients {
			ingredients, err := r.ingredientRepository.WithTx(tx).GetOrCreate(ctx, names)
			if err != nil {
				return err
			}
			association := tx.Model(recipe).Association("Ingredients")
			if len(ingredients) == 0 {
				err = association.Clear()
			} else {
				err = association.Replace(ingredients)
			}
			if err != nil {
				return fmt.Errorf("replace ingredients: %w", err)
			}
			recipe.Ingredients = ingredients
		}

		return r.RefreshDifficulty(ctx, tx, recipe)
	})
}

// RefreshDifficulty classifies recipe from its stored ingredient count and
// writes the label back only when it differs from the current one.
func (r *recipeRepository) RefreshDifficulty(ctx context.Context, tx *gorm.DB, recipe *entities.Recipe) error {
	if tx == nil {
		tx = r.db
	}
	association := tx.WithContext(ctx).Model(recipe).Association("Ingredients")
	count := association.Count()
	if association.Error != nil {
		return fmt.Errorf("count ingredients: %w", association.Error)
	}

	difficulty := Classify(recipe.CookingTime, int(count))
	if difficulty == recipe.Difficulty {
		return nil
	}

	if err := tx.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", recipe.ID).
		Update("difficulty", difficulty).Error; err != nil {
		return fmt.Errorf("update difficulty: %w", err)
	}
	recipe.Difficulty = difficulty
	return nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("CreatedBy").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, page, limit int) ([]entities.Recipe, int64, error) {
	var recipes []entities.Recipe
	var count int64
	page, limit = domain.NormalizePage(page, limit)
	offset := domain.PageOffset(page, limit)

	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("CreatedBy").
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

// GetAllRecipes loads the whole catalog with ingredients, newest first. Search
// and reports run over this snapshot.
func (r *recipeRepository) GetAllRecipes(ctx context.Context) ([]entities.Recipe, error) {
	var recipes []entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("CreatedBy").
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) FilterRecipes(ctx context.Context, filter domain.AdminRecipeFilter) ([]entities.Recipe, int64, error) {
	var recipes []entities.Recipe
	var count int64
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)
	offset := domain.PageOffset(filter.Page, filter.Limit)

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Difficulty != "" {
			db = db.Where("recipes.difficulty = ?", filter.Difficulty)
		}
		if filter.CreatedBy != "" {
			db = db.Where("recipes.created_by_id = ?", filter.CreatedBy)
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			like := "%" + strings.ToLower(search) + "%"
			db = db.Where(
				"LOWER(recipes.name) LIKE ? OR recipes.id IN (?)",
				like,
				r.db.Table("recipe_ingredients").
					Select("recipe_ingredients.recipe_id").
					Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
					Where("LOWER(ingredients.name) LIKE ?", like),
			)
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Scopes(scope).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Ingredients").
		Preload("CreatedBy").
		Order("recipes.created_at desc").
		Offset(offset).
		Limit(filter.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) UpdateImageURL(ctx context.Context, id string, imageURL string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		Update("image_url", imageURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

// DeleteRecipe removes the recipe and its ingredient links. Ingredients
// themselves are kept.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(&entities.Recipe{}, "id = ?", recipe.ID).Error
	})
}
