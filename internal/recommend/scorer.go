// ABOUTME: Rule tables for brewing-method compatibility and adventure-level multipliers.
// ABOUTME: Combines cosine similarity with both multipliers into a composite score.
package recommend

import (
	"github.com/2389-research/brewmatch/internal/embeddings"
	"github.com/2389-research/brewmatch/internal/models"
)

// methodBase is the compatibility of each brewing method with each roast level.
// Values above 1.0 favour the pairing, below 1.0 penalise it.
var methodBase = map[models.BrewingMethod]map[models.RoastLevel]float64{
	models.MethodEspresso:    {models.RoastLight: 0.5, models.RoastMedium: 1.0, models.RoastDark: 1.2},
	models.MethodV60:         {models.RoastLight: 1.2, models.RoastMedium: 1.0, models.RoastDark: 0.7},
	models.MethodFrenchPress: {models.RoastLight: 0.8, models.RoastMedium: 1.0, models.RoastDark: 1.1},
	models.MethodMoka:        {models.RoastLight: 0.6, models.RoastMedium: 1.0, models.RoastDark: 1.1},
	models.MethodCapsule:     {models.RoastLight: 0.9, models.RoastMedium: 1.0, models.RoastDark: 1.0},
}

// MethodRule is a secondary bonus applied after the base lookup when Applies matches.
type MethodRule struct {
	Name       string
	Applies    func(c *models.Coffee) bool
	Multiplier float64
}

// methodRules are applied in order. An unset attribute never satisfies a threshold.
var methodRules = map[models.BrewingMethod][]MethodRule{
	models.MethodFrenchPress: {
		{Name: "full body", Applies: atLeast(bodyOf, 7), Multiplier: 1.1},
	},
	models.MethodV60: {
		{Name: "bright acidity", Applies: atLeast(acidityOf, 7), Multiplier: 1.1},
	},
	models.MethodEspresso: {
		{
			Name: "body and sweetness",
			Applies: func(c *models.Coffee) bool {
				return atLeast(bodyOf, 8)(c) && atLeast(sweetnessOf, 6)(c)
			},
			Multiplier: 1.15,
		},
	},
}

func acidityOf(c *models.Coffee) *int   { return c.Acidity }
func bodyOf(c *models.Coffee) *int      { return c.Body }
func sweetnessOf(c *models.Coffee) *int { return c.Sweetness }

func atLeast(attr func(*models.Coffee) *int, min int) func(*models.Coffee) bool {
	return func(c *models.Coffee) bool {
		v := attr(c)
		return v != nil && *v >= min
	}
}

// MethodRules returns the ordered bonus rules for a brewing method.
func MethodRules(method models.BrewingMethod) []MethodRule {
	return methodRules[method]
}

// MethodCompatibility scores how well a coffee suits a brewing method.
// An unset or unknown roast counts as medium; an unknown method scores 1.0.
func MethodCompatibility(c *models.Coffee, method models.BrewingMethod) float64 {
	roast := c.RoastLevel
	if !roast.Valid() {
		roast = models.RoastMedium
	}

	multiplier := 1.0
	if row, ok := methodBase[method]; ok {
		multiplier = row[roast]
	}

	for _, rule := range methodRules[method] {
		if rule.Applies(c) {
			multiplier *= rule.Multiplier
		}
	}
	return multiplier
}

// AdventureMultiplier rewards light roasts for wild drinkers and medium roasts for safe ones.
// Unlike MethodCompatibility, an unset roast is not treated as medium here.
func AdventureMultiplier(c *models.Coffee, level models.AdventureLevel) float64 {
	switch level {
	case models.AdventureWild:
		if c.RoastLevel == models.RoastLight {
			return 1.2
		}
		return 1.0
	case models.AdventureSafe:
		if c.RoastLevel == models.RoastMedium {
			return 1.1
		}
		return 0.9
	default:
		return 1.0
	}
}

// ScoredCoffee is one ranked candidate with its score breakdown.
type ScoredCoffee struct {
	Coffee              *models.Coffee `json:"coffee"`
	Score               float64        `json:"score"`
	Similarity          float64        `json:"similarity"`
	MethodMultiplier    float64        `json:"method_multiplier"`
	AdventureMultiplier float64        `json:"adventure_multiplier"`
}

// Score computes the composite score of a coffee against a target vector.
// It fails with *models.MissingEmbeddingError when the coffee was never embedded.
func Score(target embeddings.Vector, c *models.Coffee, p *models.TasteProfile) (ScoredCoffee, error) {
	if !c.HasEmbedding() {
		return ScoredCoffee{}, &models.MissingEmbeddingError{CoffeeID: c.ID, Name: c.Name}
	}

	similarity := embeddings.CosineSimilarity(target, c.FlavorEmbedding)
	method := MethodCompatibility(c, p.BrewingMethod)
	adventure := AdventureMultiplier(c, p.AdventureLevel)

	return ScoredCoffee{
		Coffee:              c,
		Score:               similarity * method * adventure,
		Similarity:          similarity,
		MethodMultiplier:    method,
		AdventureMultiplier: adventure,
	}, nil
}
