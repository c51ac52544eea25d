package recipe

import "recipe-catalog/domain"

const (
	quickCookingMinutes = 10
	fewIngredients      = 4
)

// Classify derives the difficulty label from cooking time in minutes and the
// number of distinct ingredients.
func Classify(cookingTime, ingredientCount int) string {
	switch {
	case cookingTime < quickCookingMinutes && ingredientCount < fewIngredients:
		return domain.DifficultyEasy
	case cookingTime < quickCookingMinutes:
		return domain.DifficultyMedium
	case ingredientCount < fewIngredients:
		return domain.DifficultyIntermediate
	default:
		return domain.DifficultyHard
	}
}
