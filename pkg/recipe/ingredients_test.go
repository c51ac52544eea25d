package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIngredientNames(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple list", "a,b,c,d", []string{"a", "b", "c", "d"}},
		{"whitespace is trimmed", "  Salt ,Pepper  ,  Olive Oil", []string{"Salt", "Pepper", "Olive Oil"}},
		{"blank tokens dropped", ",,eggs, ,milk,", []string{"eggs", "milk"}},
		{"repeats collapse to first position", "eggs, milk, eggs", []string{"eggs", "milk"}},
		{"case sensitive", "Salt, salt", []string{"Salt", "salt"}},
		{"empty text", "", []string{}},
		{"only separators", " , , ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIngredientNames(tt.text))
		})
	}
}
