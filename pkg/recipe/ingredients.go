package recipe

import "strings"

// ParseIngredientNames splits a comma separated list, trims every token and
// drops blanks and repeats. Names keep the order they first appear in.
func ParseIngredientNames(text string) []string {
	names := make([]string, 0)
	seen := make(map[string]struct{})
	for _, token := range strings.Split(text, ",") {
		name := strings.TrimSpace(token)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
