package domain

var (
	MessageSuccessGetIngredients = "success get ingredients"
	MessageFailedGetIngredients  = "failed to get ingredients"
)

type (
	IngredientUsage struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		RecipeCount int64  `json:"recipe_count"`
	}
)
