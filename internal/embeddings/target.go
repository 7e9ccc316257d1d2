// ABOUTME: Builds the target flavor vector for a taste profile from fixed lookup tables.
// ABOUTME: Unknown answers fall back to neutral weights; missing answers are an error.
package embeddings

import "github.com/2389-research/brewmatch/internal/models"

// Lookup tables from questionnaire answers to target components. The values are fixed;
// changing any of them changes every ranking.
var (
	acidityByFruit = map[models.FruitPreference]float32{
		models.FruitCitrus:  0.9,
		models.FruitBerries: 0.7,
		models.FruitYellow:  0.5,
		models.FruitDried:   0.3,
	}
	bodyByTexture = map[models.TexturePreference]float32{
		models.TextureSyrupy:  0.9,
		models.TextureCreamy:  0.6,
		models.TextureTeaLike: 0.3,
	}
	sweetnessByChocolate = map[models.ChocolatePreference]float32{
		models.ChocolateWhite:  0.9,
		models.ChocolateMilk:   0.7,
		models.ChocolateDark70: 0.4,
		models.ChocolateDark85: 0.2,
	}
	bitternessByChocolate = map[models.ChocolatePreference]float32{
		models.ChocolateDark85: 0.9,
		models.ChocolateDark70: 0.6,
		models.ChocolateMilk:   0.3,
		models.ChocolateWhite:  0.1,
	}
	fruityByFruit = map[models.FruitPreference]float32{
		models.FruitCitrus:  0.8,
		models.FruitBerries: 0.8,
	}
	chocolateyByChocolate = map[models.ChocolatePreference]float32{
		models.ChocolateDark70: 0.8,
		models.ChocolateDark85: 0.8,
	}
	nuttyByDrink = map[models.DrinkPreference]float32{
		models.DrinkBeerStout: 0.7,
	}
	floralByDrink = map[models.DrinkPreference]float32{
		models.DrinkWineLight: 0.7,
	}
)

// Fallback weights for answers the tables do not map.
const (
	neutralWeight = 0.5
	fruityDefault = 0.4
	chocoDefault  = 0.4
	nuttyDefault  = 0.4
	floralDefault = 0.3
)

// BuildTargetVector maps a profile's answers to a vector comparable with coffee embeddings.
// It returns a *models.ValidationError if any of the six answers is missing.
func BuildTargetVector(p *models.TasteProfile) (Vector, error) {
	if err := p.RequireAnswers(); err != nil {
		return nil, err
	}

	return Vector{
		lookup(acidityByFruit, p.FruitPreference, neutralWeight),
		lookup(bodyByTexture, p.TexturePreference, neutralWeight),
		lookup(sweetnessByChocolate, p.ChocolatePreference, neutralWeight),
		lookup(bitternessByChocolate, p.ChocolatePreference, neutralWeight),
		lookup(fruityByFruit, p.FruitPreference, fruityDefault),
		lookup(chocolateyByChocolate, p.ChocolatePreference, chocoDefault),
		lookup(nuttyByDrink, p.DrinkPreference, nuttyDefault),
		lookup(floralByDrink, p.DrinkPreference, floralDefault),
	}, nil
}

func lookup[K comparable](table map[K]float32, key K, fallback float32) float32 {
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}
