package recipe

import (
	"sort"
	"strings"
	"unicode/utf8"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
)

// NormalizeSearch trims the query and drops any filter value the search form
// would reject, so bad input filters nothing instead of failing.
func NormalizeSearch(query, difficulty string) (string, string) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) > domain.SearchQueryMaxLength {
		query = ""
	}
	if !domain.IsDifficulty(difficulty) {
		difficulty = ""
	}
	return query, difficulty
}

// SortNewestFirst orders recipes by creation time, newest first. Recipes
// created at the same instant keep their relative order.
func SortNewestFirst(recipes []entities.Recipe) {
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].CreatedAt.After(recipes[j].CreatedAt)
	})
}

// Search returns the recipes matching query and difficulty, newest first.
// showAll disables both filters. The input slice is not modified.
func Search(all []entities.Recipe, query, difficulty string, showAll bool) []entities.Recipe {
	ordered := make([]entities.Recipe, len(all))
	copy(ordered, all)
	SortNewestFirst(ordered)

	if showAll {
		return ordered
	}

	query = strings.ToLower(strings.TrimSpace(query))
	result := make([]entities.Recipe, 0, len(ordered))
	for _, r := range ordered {
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		if difficulty != "" && r.Difficulty != difficulty {
			continue
		}
		result = append(result, r)
	}
	return result
}

func matchesQuery(r entities.Recipe, lowered string) bool {
	if strings.Contains(strings.ToLower(r.Name), lowered) {
		return true
	}
	for _, ing := range r.Ingredients {
		if ing != nil && strings.Contains(strings.ToLower(ing.Name), lowered) {
			return true
		}
	}
	return false
}
