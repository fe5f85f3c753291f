// Package classify maps asset paths to semantic tile categories using
// ordered keyword rules.
//
// Classification is a pure function of the path: the same path always
// yields the same category, and no state is consulted or mutated.
package classify

import (
	"strings"
)

// Category is a semantic grouping for tile types.
type Category string

const (
	Terrain     Category = "terrain"
	Vegetation  Category = "vegetation"
	Buildings   Category = "buildings"
	NPCs        Category = "npcs"
	Decorations Category = "decorations"
)

// Categories returns every category, in the fixed presentation order.
func Categories() []Category {
	return []Category{Terrain, Vegetation, Buildings, NPCs, Decorations}
}

// Valid reports whether c is one of the known categories.
func Valid(c Category) bool {
	switch c {
	case Terrain, Vegetation, Buildings, NPCs, Decorations:
		return true
	}
	return false
}

// Rule associates a category with the keywords that select it. Rules are
// tested in slice order and the first keyword hit wins.
type Rule struct {
	Category Category
	Keywords []string
}

// DefaultRules returns the standard keyword table. The priority order
// matters: a path mentioning both "tile" and "house" is terrain, because
// the terrain rule is tested first.
func DefaultRules() []Rule {
	return []Rule{
		{Terrain, []string{"tile", "terrain", "ground"}},
		{Vegetation, []string{"tree", "bush", "plant", "nature"}},
		{Buildings, []string{"build", "house", "structure"}},
		{NPCs, []string{"character", "npc", "people"}},
		{Decorations, []string{"item", "prop", "decoration"}},
	}
}

// Classify matches path against DefaultRules. See ClassifyRules.
func Classify(path string, fallback Category) Category {
	return ClassifyRules(DefaultRules(), path, fallback)
}

// ClassifyRules lower-cases path and returns the category of the first
// rule with a keyword contained in it. When nothing matches, fallback is
// returned if set, else Terrain.
func ClassifyRules(rules []Rule, path string, fallback Category) Category {
	if cat, ok := MatchRules(rules, path); ok {
		return cat
	}
	if fallback != "" {
		return fallback
	}
	return Terrain
}

// Match is MatchRules against DefaultRules.
func Match(path string) (Category, bool) {
	return MatchRules(DefaultRules(), path)
}

// MatchRules reports the category of the first rule with a keyword
// contained in the lower-cased path, with no fallback: ok is false when
// no keyword matches.
func MatchRules(rules []Rule, path string) (Category, bool) {
	p := strings.ToLower(path)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(p, kw) {
				return rule.Category, true
			}
		}
	}
	return "", false
}
