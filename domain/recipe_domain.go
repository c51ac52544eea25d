package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	DifficultyEasy         = "Easy"
	DifficultyMedium       = "Medium"
	DifficultyIntermediate = "Intermediate"
	DifficultyHard         = "Hard"

	SearchQueryMaxLength = 100
	TopIngredientsLimit  = 8
)

// DifficultyLabels is ordered the way the classifier evaluates its branches.
var DifficultyLabels = []string{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyIntermediate,
	DifficultyHard,
}

func IsDifficulty(label string) bool {
	for _, l := range DifficultyLabels {
		if l == label {
			return true
		}
	}
	return false
}

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessUploadImage     = "recipe image uploaded successfully"
	MessageSuccessSearchRecipes   = "success search recipes"
	MessageSuccessGetReports      = "success get recipe reports"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedUploadImage     = "failed to upload recipe image"
	MessageFailedSearchRecipes   = "failed to search recipes"
	MessageFailedGetReports      = "failed to get recipe reports"
	MessageFailedRenderChart     = "failed to render chart"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrChartNotFound            = errors.New("chart not found")
	ErrChartEmpty               = errors.New("no data for chart")
)

type (
	CreateRecipeRequest struct {
		Name        string `json:"name" form:"name" validate:"required,max=200"`
		Description string `json:"description" form:"description"`
		CookingTime *int   `json:"cooking_time" form:"cooking_time" validate:"required,min=0"`
		Ingredients string `json:"ingredients" form:"ingredients"`
		StaticImage string `json:"static_image" form:"static_image" validate:"max=200"`
	}

	// UpdateRecipeRequest leaves a field untouched when it is nil. A non-nil
	// Ingredients replaces the whole ingredient set.
	UpdateRecipeRequest struct {
		Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
		Description *string `json:"description"`
		CookingTime *int    `json:"cooking_time" validate:"omitempty,min=0"`
		Ingredients *string `json:"ingredients"`
		StaticImage *string `json:"static_image" validate:"omitempty,max=200"`
	}

	UploadRecipeImageRequest struct {
		RecipeID string
		Image    *multipart.FileHeader
	}

	SearchRecipeRequest struct {
		Query      string
		Difficulty string
		ShowAll    bool
		Page       int
		Limit      int
	}

	AdminRecipeFilter struct {
		Search     string
		Difficulty string
		CreatedBy  string
		Page       int
		Limit      int
	}

	Recipe struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		CookingTime int       `json:"cooking_time"`
		Difficulty  string    `json:"difficulty"`
		StaticImage string    `json:"static_image,omitempty"`
		ImageURL    string    `json:"image_url,omitempty"`
		Ingredients []string  `json:"ingredients"`
		CreatedBy   string    `json:"created_by"`
		CreatedAt   time.Time `json:"created_at"`
	}

	RecipeDetail struct {
		Recipe
		CalculatedDifficulty string `json:"calculated_difficulty"`
	}

	LabelCount struct {
		Label string `json:"label"`
		Count int    `json:"count"`
	}

	DateCount struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}

	// RecipeReports fields are nil when their input set is empty.
	RecipeReports struct {
		TopIngredients         []LabelCount `json:"top_ingredients"`
		DifficultyDistribution []LabelCount `json:"difficulty_distribution"`
		CreationTrend          []DateCount  `json:"creation_trend"`
	}

	SearchRecipeResponse struct {
		Recipes    []Recipe      `json:"recipes"`
		Query      string        `json:"query"`
		Difficulty string        `json:"difficulty"`
		ShowAll    bool          `json:"show_all"`
		Pagination Pagination    `json:"pagination"`
		Reports    RecipeReports `json:"reports"`
	}
)
