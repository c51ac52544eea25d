package recipe

import (
	"strings"
	"testing"
	"time"

	"recipe-catalog/domain"
	"recipe-catalog/entities"

	"github.com/stretchr/testify/assert"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixtureRecipe(name string, difficulty string, created time.Time, ingredients ...string) entities.Recipe {
	r := entities.Recipe{
		Name:       name,
		Difficulty: difficulty,
	}
	r.CreatedAt = created
	for _, ing := range ingredients {
		r.Ingredients = append(r.Ingredients, &entities.Ingredient{Name: ing})
	}
	return r
}

func names(recipes []entities.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Name)
	}
	return out
}

func catalog() []entities.Recipe {
	return []entities.Recipe{
		fixtureRecipe("Bread", domain.DifficultyEasy, baseTime, "Flour"),
		fixtureRecipe("Test Soup", domain.DifficultyEasy, baseTime.Add(time.Hour), "Salt", "Pepper"),
		fixtureRecipe("Salted Caramel", domain.DifficultyHard, baseTime.Add(2*time.Hour), "Sugar", "Salt", "Butter", "Cream"),
	}
}

func TestSearch_MatchesNameOrIngredient(t *testing.T) {
	all := []entities.Recipe{
		fixtureRecipe("Test Soup", domain.DifficultyEasy, baseTime.Add(time.Hour), "Salt", "Pepper"),
		fixtureRecipe("Bread", domain.DifficultyEasy, baseTime, "Flour"),
	}

	assert.Equal(t, []string{"Test Soup"}, names(Search(all, "Sou", "", false)))
	assert.Equal(t, []string{"Test Soup"}, names(Search(all, "Salt", "", false)))
	assert.Equal(t, []string{"Test Soup"}, names(Search(all, "sOuP", "", false)))
	assert.Equal(t, []string{"Bread"}, names(Search(all, "flo", "", false)))
	assert.Empty(t, Search(all, "chocolate", "", false))
}

func TestSearch_RecipeMatchingTwiceAppearsOnce(t *testing.T) {
	all := []entities.Recipe{
		fixtureRecipe("Salt Crust Fish", domain.DifficultyHard, baseTime, "Salt", "Sea Salt", "Fish", "Lemon"),
	}

	got := Search(all, "salt", "", false)
	assert.Len(t, got, 1)
}

func TestSearch_EmptyFiltersEqualShowAll(t *testing.T) {
	all := catalog()

	assert.Equal(t, names(Search(all, "", "", true)), names(Search(all, "", "", false)))
	assert.Equal(t, names(Search(all, "   ", "", true)), names(Search(all, "   ", "", false)))
}

func TestSearch_ShowAllIgnoresFilters(t *testing.T) {
	all := catalog()

	got := Search(all, "nothing matches this", domain.DifficultyMedium, true)
	assert.Equal(t, []string{"Salted Caramel", "Test Soup", "Bread"}, names(got))
}

func TestSearch_DifficultyIsExact(t *testing.T) {
	all := catalog()

	assert.Equal(t, []string{"Test Soup", "Bread"}, names(Search(all, "", domain.DifficultyEasy, false)))
	assert.Equal(t, []string{"Salted Caramel"}, names(Search(all, "salt", domain.DifficultyHard, false)))
	assert.Empty(t, Search(all, "", "easy", false))
}

func TestSearch_NewestFirstAndStable(t *testing.T) {
	all := catalog()
	all = append(all, fixtureRecipe("Twin A", domain.DifficultyEasy, baseTime.Add(time.Hour), "Salt"))

	got := Search(all, "salt", "", false)
	assert.Equal(t, []string{"Salted Caramel", "Test Soup", "Twin A"}, names(got))

	// input order is untouched
	assert.Equal(t, "Bread", all[0].Name)
}

func TestNormalizeSearch(t *testing.T) {
	q, d := NormalizeSearch("  soup ", domain.DifficultyHard)
	assert.Equal(t, "soup", q)
	assert.Equal(t, domain.DifficultyHard, d)

	q, d = NormalizeSearch("soup", "Impossible")
	assert.Equal(t, "soup", q)
	assert.Equal(t, "", d)

	q, _ = NormalizeSearch(strings.Repeat("a", domain.SearchQueryMaxLength+1), "")
	assert.Equal(t, "", q)

	q, _ = NormalizeSearch(strings.Repeat("a", domain.SearchQueryMaxLength), "")
	assert.Len(t, q, domain.SearchQueryMaxLength)
}
