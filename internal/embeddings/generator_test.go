// ABOUTME: Tests for flavor embedding generation and target vector lookup tables.
// ABOUTME: Exhaustively walks the attribute grid and every questionnaire answer.
package embeddings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/brewmatch/internal/models"
)

func coffeeWith(acidity, body, sweetness, bitterness *int) *models.Coffee {
	c := models.NewCoffee("test")
	c.Acidity = acidity
	c.Body = body
	c.Sweetness = sweetness
	c.Bitterness = bitterness
	return c
}

func TestGenerateEmbeddingFormulas(t *testing.T) {
	c := coffeeWith(models.Int(8), models.Int(5), models.Int(6), models.Int(3))
	v := GenerateEmbedding(c)

	require.Len(t, v, Dimensions)
	expected := []float64{0.8, 0.5, 0.6, 0.3, 0.74, 0.4, 0.54, 0.74}
	for i, want := range expected {
		assert.InDelta(t, want, float64(v[i]), 1e-6, ComponentNames[i])
	}
}

func TestGenerateEmbeddingUnsetAttributesCountAsZero(t *testing.T) {
	v := GenerateEmbedding(coffeeWith(nil, nil, nil, nil))
	expected := []float64{0, 0, 0, 0, 0, 0, 0, 0.2}
	for i, want := range expected {
		assert.InDelta(t, want, float64(v[i]), 1e-6, ComponentNames[i])
	}
}

func TestGenerateEmbeddingBounds(t *testing.T) {
	for a := 0; a <= 10; a++ {
		for b := 0; b <= 10; b++ {
			for s := 0; s <= 10; s++ {
				for bi := 0; bi <= 10; bi++ {
					v := GenerateEmbedding(coffeeWith(models.Int(a), models.Int(b), models.Int(s), models.Int(bi)))
					for i, x := range v {
						require.True(t, x >= 0 && x <= 1+1e-6, "component %s = %f out of [0,1] for a=%d b=%d s=%d bi=%d",
							ComponentNames[i], x, a, b, s, bi)
					}
				}
			}
		}
	}
}

func TestGenerateEmbeddingIdempotent(t *testing.T) {
	c := coffeeWith(models.Int(9), models.Int(4), models.Int(7), models.Int(2))
	first := GenerateEmbedding(c)
	second := GenerateEmbedding(c)
	assert.Equal(t, first, second)
}

func profile(choc models.ChocolatePreference, fruit models.FruitPreference, drink models.DrinkPreference,
	texture models.TexturePreference) *models.TasteProfile {
	p := models.NewTasteProfile(models.NewUser("t@example.com").ID)
	p.ChocolatePreference = choc
	p.FruitPreference = fruit
	p.DrinkPreference = drink
	p.TexturePreference = texture
	p.AdventureLevel = models.AdventureModerate
	p.BrewingMethod = models.MethodCapsule
	return p
}

func TestBuildTargetVectorScenario(t *testing.T) {
	p := profile(models.ChocolateDark85, models.FruitCitrus, models.DrinkBeerStout, models.TextureTeaLike)
	p.AdventureLevel = models.AdventureWild
	p.BrewingMethod = models.MethodV60

	v, err := BuildTargetVector(p)
	require.NoError(t, err)
	assert.Equal(t, Vector{0.9, 0.3, 0.2, 0.9, 0.8, 0.8, 0.7, 0.3}, v)
}

func TestBuildTargetVectorTables(t *testing.T) {
	base := func() *models.TasteProfile {
		return profile(models.ChocolateMilk, models.FruitYellow, models.DrinkWineBold, models.TextureCreamy)
	}

	fruit := map[models.FruitPreference][2]float32{
		models.FruitCitrus:  {0.9, 0.8},
		models.FruitBerries: {0.7, 0.8},
		models.FruitYellow:  {0.5, 0.4},
		models.FruitDried:   {0.3, 0.4},
		"mango":             {0.5, 0.4},
	}
	for answer, want := range fruit {
		p := base()
		p.FruitPreference = answer
		v, err := BuildTargetVector(p)
		require.NoError(t, err)
		assert.Equal(t, want[0], v[Acidity], "acidity for %s", answer)
		assert.Equal(t, want[1], v[Fruity], "fruity for %s", answer)
	}

	texture := map[models.TexturePreference]float32{
		models.TextureSyrupy:  0.9,
		models.TextureCreamy:  0.6,
		models.TextureTeaLike: 0.3,
		"chewy":               0.5,
	}
	for answer, want := range texture {
		p := base()
		p.TexturePreference = answer
		v, err := BuildTargetVector(p)
		require.NoError(t, err)
		assert.Equal(t, want, v[Body], "body for %s", answer)
	}

	chocolate := map[models.ChocolatePreference][3]float32{
		models.ChocolateWhite:  {0.9, 0.1, 0.4},
		models.ChocolateMilk:   {0.7, 0.3, 0.4},
		models.ChocolateDark70: {0.4, 0.6, 0.8},
		models.ChocolateDark85: {0.2, 0.9, 0.8},
		"ruby":                 {0.5, 0.5, 0.4},
	}
	for answer, want := range chocolate {
		p := base()
		p.ChocolatePreference = answer
		v, err := BuildTargetVector(p)
		require.NoError(t, err)
		assert.Equal(t, want[0], v[Sweetness], "sweetness for %s", answer)
		assert.Equal(t, want[1], v[Bitterness], "bitterness for %s", answer)
		assert.Equal(t, want[2], v[Chocolatey], "chocolatey for %s", answer)
	}

	drink := map[models.DrinkPreference][2]float32{
		models.DrinkWineBold:  {0.4, 0.3},
		models.DrinkWineLight: {0.4, 0.7},
		models.DrinkBeerIPA:   {0.4, 0.3},
		models.DrinkBeerStout: {0.7, 0.3},
	}
	for answer, want := range drink {
		p := base()
		p.DrinkPreference = answer
		v, err := BuildTargetVector(p)
		require.NoError(t, err)
		assert.Equal(t, want[0], v[Nutty], "nutty for %s", answer)
		assert.Equal(t, want[1], v[Floral], "floral for %s", answer)
	}
}

func TestBuildTargetVectorDeterministic(t *testing.T) {
	p := profile(models.ChocolateDark70, models.FruitBerries, models.DrinkWineLight, models.TextureSyrupy)
	first, err := BuildTargetVector(p)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := BuildTargetVector(p)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBuildTargetVectorMissingAnswer(t *testing.T) {
	p := profile(models.ChocolateDark70, models.FruitBerries, models.DrinkWineLight, "")
	v, err := BuildTargetVector(p)
	assert.Nil(t, v)

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.HasField("texture_preference"))
}
