package scoring

import "sort"

// Rank orders annotated recipes by compatibility. Precedence, highest first:
// allergen-free, diet match, fully pantry compatible, higher pantry match
// percentage. The sort is stable so equal-precedence recipes keep their
// catalog order, and ranking an already ranked list is a no-op.
func Rank(recipes []AnnotatedRecipe) []AnnotatedRecipe {
	out := make([]AnnotatedRecipe, len(recipes))
	copy(out, recipes)
	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i], out[j])
	})
	return out
}

// Less reports whether a ranks strictly above b.
func Less(a, b AnnotatedRecipe) bool {
	if a.ContainsAllergens != b.ContainsAllergens {
		return !a.ContainsAllergens
	}
	if a.MatchesUserDiet != b.MatchesUserDiet {
		return a.MatchesUserDiet
	}
	if a.PantryCompatible != b.PantryCompatible {
		return a.PantryCompatible
	}
	return a.PantryMatchPercent > b.PantryMatchPercent
}
