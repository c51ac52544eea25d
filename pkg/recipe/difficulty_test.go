package recipe

import (
	"testing"

	"recipe-catalog/domain"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		cookingTime int
		ingredients int
		want        string
	}{
		{"quick with few ingredients", 5, 2, domain.DifficultyEasy},
		{"quick with many ingredients", 5, 5, domain.DifficultyMedium},
		{"slow with few ingredients", 15, 2, domain.DifficultyIntermediate},
		{"slow with many ingredients", 15, 5, domain.DifficultyHard},
		{"ten minutes is not quick", 10, 3, domain.DifficultyIntermediate},
		{"nine minutes is quick", 9, 3, domain.DifficultyEasy},
		{"four ingredients is many", 9, 4, domain.DifficultyMedium},
		{"no ingredients", 0, 0, domain.DifficultyEasy},
		{"ten minutes four ingredients", 10, 4, domain.DifficultyHard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.cookingTime, tt.ingredients))
		})
	}
}
