package recipe

import (
	"sort"
	"time"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
)

const trendDateLayout = "2006-01-02"

// BuildReports computes the three catalog summaries over every recipe.
// Dates for the creation trend are taken in loc.
func BuildReports(all []entities.Recipe, loc *time.Location) domain.RecipeReports {
	return domain.RecipeReports{
		TopIngredients:         TopIngredients(all, domain.TopIngredientsLimit),
		DifficultyDistribution: DifficultyDistribution(all),
		CreationTrend:          CreationTrend(all, loc),
	}
}

// TopIngredients ranks ingredients by how many recipes use them. Equal counts
// are ordered by ingredient name.
func TopIngredients(all []entities.Recipe, n int) []domain.LabelCount {
	counts := make(map[string]int)
	for _, r := range all {
		// an ingredient is only associated once per recipe
		seen := make(map[string]struct{}, len(r.Ingredients))
		for _, ing := range r.Ingredients {
			if ing == nil {
				continue
			}
			if _, ok := seen[ing.Name]; ok {
				continue
			}
			seen[ing.Name] = struct{}{}
			counts[ing.Name]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	ranked := make([]domain.LabelCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, domain.LabelCount{Label: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Label < ranked[j].Label
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// DifficultyDistribution counts recipes per known difficulty label. Unknown
// labels are ignored and empty buckets are left out.
func DifficultyDistribution(all []entities.Recipe) []domain.LabelCount {
	counts := make(map[string]int, len(domain.DifficultyLabels))
	for _, r := range all {
		if domain.IsDifficulty(r.Difficulty) {
			counts[r.Difficulty]++
		}
	}

	var dist []domain.LabelCount
	for _, label := range domain.DifficultyLabels {
		if counts[label] > 0 {
			dist = append(dist, domain.LabelCount{Label: label, Count: counts[label]})
		}
	}
	return dist
}

// CreationTrend counts recipes per calendar day, oldest day first.
func CreationTrend(all []entities.Recipe, loc *time.Location) []domain.DateCount {
	if len(all) == 0 {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	counts := make(map[string]int)
	for _, r := range all {
		counts[r.CreatedAt.In(loc).Format(trendDateLayout)]++
	}

	trend := make([]domain.DateCount, 0, len(counts))
	for date, count := range counts {
		trend = append(trend, domain.DateCount{Date: date, Count: count})
	}
	// the layout sorts lexically in date order
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Date < trend[j].Date
	})
	return trend
}
