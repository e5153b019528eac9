package models

import "strings"

// Unit is the closed set of measurement units a recipe ingredient or grocery
// list item can carry. There is no conversion between units; aggregation only
// merges quantities that share the exact same unit.
// Values follow the Instacart units of measurement.
type Unit string

const (
	UnitEach       Unit = "each" // default for countable items, e.g. tomatoes or onions
	UnitCup        Unit = "cup"
	UnitTablespoon Unit = "tablespoon"
	UnitTeaspoon   Unit = "teaspoon"
	UnitGram       Unit = "gram"
	UnitKilogram   Unit = "kilogram"
	UnitOunce      Unit = "ounce"
	UnitPound      Unit = "pound"
	UnitGallon     Unit = "gallon"
	UnitMilliliter Unit = "milliliter"
	UnitLiter      Unit = "liter"
	UnitPint       Unit = "pint"
	UnitQuart      Unit = "quart"
	UnitCan        Unit = "can"
	UnitBunch      Unit = "bunch"
	UnitPackage    Unit = "package"
)

var unitSynonyms = map[string]Unit{
	// Volume units
	"cup":         UnitCup,
	"cups":        UnitCup,
	"c":           UnitCup,
	"tablespoon":  UnitTablespoon,
	"tablespoons": UnitTablespoon,
	"tbsp":        UnitTablespoon,
	"tbs":         UnitTablespoon,
	"teaspoon":    UnitTeaspoon,
	"teaspoons":   UnitTeaspoon,
	"tsp":         UnitTeaspoon,
	"t":           UnitTeaspoon,
	"pint":        UnitPint,
	"pints":       UnitPint,
	"pt":          UnitPint,
	"quart":       UnitQuart,
	"quarts":      UnitQuart,
	"qt":          UnitQuart,
	"gallon":      UnitGallon,
	"gallons":     UnitGallon,
	"gal":         UnitGallon,
	"liter":       UnitLiter,
	"liters":      UnitLiter,
	"l":           UnitLiter,
	"milliliter":  UnitMilliliter,
	"milliliters": UnitMilliliter,
	"ml":          UnitMilliliter,

	// Weight units
	"pound":     UnitPound,
	"pounds":    UnitPound,
	"lb":        UnitPound,
	"lbs":       UnitPound,
	"ounce":     UnitOunce,
	"ounces":    UnitOunce,
	"oz":        UnitOunce,
	"gram":      UnitGram,
	"grams":     UnitGram,
	"g":         UnitGram,
	"kilogram":  UnitKilogram,
	"kilograms": UnitKilogram,
	"kg":        UnitKilogram,

	// Other units
	"can":      UnitCan,
	"cans":     UnitCan,
	"bunch":    UnitBunch,
	"bunches":  UnitBunch,
	"package":  UnitPackage,
	"packages": UnitPackage,
	"pkg":      UnitPackage,
	"each":     UnitEach,
	"piece":    UnitEach,
	"pieces":   UnitEach,
}

// ParseUnit maps a free-form unit token to the Unit enumeration through a
// case-insensitive synonym table. Unrecognized or empty tokens default to each.
func ParseUnit(s string) Unit {
	if u, ok := unitSynonyms[strings.ToLower(strings.TrimSpace(s))]; ok {
		return u
	}
	return UnitEach
}
