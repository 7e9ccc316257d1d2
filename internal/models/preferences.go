// ABOUTME: Closed enumerations for the six taste questionnaire answers and roast levels.
// ABOUTME: Each dimension is its own string type with an explicit list of valid values.
package models

// ChocolatePreference is the answer to "which chocolate do you like?".
type ChocolatePreference string

const (
	ChocolateWhite  ChocolatePreference = "white"
	ChocolateMilk   ChocolatePreference = "milk"
	ChocolateDark70 ChocolatePreference = "dark_70"
	ChocolateDark85 ChocolatePreference = "dark_85"
)

// ChocolatePreferences lists valid chocolate answers in questionnaire order.
var ChocolatePreferences = []ChocolatePreference{ChocolateWhite, ChocolateMilk, ChocolateDark70, ChocolateDark85}

// FruitPreference is the answer to "which fruit do you like?".
type FruitPreference string

const (
	FruitCitrus  FruitPreference = "citrus"
	FruitBerries FruitPreference = "berries"
	FruitYellow  FruitPreference = "yellow"
	FruitDried   FruitPreference = "dried"
)

// FruitPreferences lists valid fruit answers in questionnaire order.
var FruitPreferences = []FruitPreference{FruitCitrus, FruitBerries, FruitYellow, FruitDried}

// DrinkPreference is the answer to "which drink do you enjoy?".
type DrinkPreference string

const (
	DrinkWineBold  DrinkPreference = "wine_bold"
	DrinkWineLight DrinkPreference = "wine_light"
	DrinkBeerIPA   DrinkPreference = "beer_ipa"
	DrinkBeerStout DrinkPreference = "beer_stout"
)

// DrinkPreferences lists valid drink answers in questionnaire order.
var DrinkPreferences = []DrinkPreference{DrinkWineBold, DrinkWineLight, DrinkBeerIPA, DrinkBeerStout}

// TexturePreference is the answer to "which texture do you prefer?".
type TexturePreference string

const (
	TextureTeaLike TexturePreference = "tea_like"
	TextureCreamy  TexturePreference = "creamy"
	TextureSyrupy  TexturePreference = "syrupy"
)

// TexturePreferences lists valid texture answers in questionnaire order.
var TexturePreferences = []TexturePreference{TextureTeaLike, TextureCreamy, TextureSyrupy}

// AdventureLevel controls how willing the user is to stray from classic roasts.
type AdventureLevel string

const (
	AdventureSafe     AdventureLevel = "safe"
	AdventureModerate AdventureLevel = "moderate"
	AdventureWild     AdventureLevel = "wild"
)

// AdventureLevels lists valid adventure answers in questionnaire order.
var AdventureLevels = []AdventureLevel{AdventureSafe, AdventureModerate, AdventureWild}

// BrewingMethod is how the user brews at home.
type BrewingMethod string

const (
	MethodEspresso    BrewingMethod = "espresso"
	MethodV60         BrewingMethod = "v60"
	MethodFrenchPress BrewingMethod = "french_press"
	MethodMoka        BrewingMethod = "moka"
	MethodCapsule     BrewingMethod = "capsule"
)

// BrewingMethods lists valid brewing methods in questionnaire order.
var BrewingMethods = []BrewingMethod{MethodEspresso, MethodV60, MethodFrenchPress, MethodMoka, MethodCapsule}

// RoastLevel is a coffee's roast. The zero value means "not set".
type RoastLevel string

const (
	RoastLight  RoastLevel = "light"
	RoastMedium RoastLevel = "medium"
	RoastDark   RoastLevel = "dark"
)

// RoastLevels lists valid roast levels from lightest to darkest.
var RoastLevels = []RoastLevel{RoastLight, RoastMedium, RoastDark}

// GrindType is how a coffee is sold.
type GrindType string

const (
	GrindWholeBean GrindType = "whole_bean"
	GrindGround    GrindType = "ground"
)

// GrindTypes lists valid grind types.
var GrindTypes = []GrindType{GrindWholeBean, GrindGround}

func (p ChocolatePreference) Valid() bool { return contains(ChocolatePreferences, p) }
func (p FruitPreference) Valid() bool     { return contains(FruitPreferences, p) }
func (p DrinkPreference) Valid() bool     { return contains(DrinkPreferences, p) }
func (p TexturePreference) Valid() bool   { return contains(TexturePreferences, p) }
func (l AdventureLevel) Valid() bool      { return contains(AdventureLevels, l) }
func (m BrewingMethod) Valid() bool       { return contains(BrewingMethods, m) }
func (r RoastLevel) Valid() bool          { return contains(RoastLevels, r) }
func (g GrindType) Valid() bool           { return contains(GrindTypes, g) }

// Strings converts a list of enum values to plain strings, for schemas and prompts.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
