package products

import "strings"

// Category hints used when no unit was captured syntactically: liquids are
// sold by volume, meat/fish/produce by weight, everything else by count.
var (
	volumeHints = []string{
		"mjölk", "juice", "saft", "läsk", "dryck", "olja", "vatten",
		"grädde", "fil", "vinäger", "buljong", "milk", "oil", "lait",
		"leche", "milch", "zumo", "jus",
	}
	weightHints = []string{
		"kött", "färs", "fisk", "lax", "torsk", "sill", "kyckling",
		"kalkon", "fläsk", "skinka", "potatis", "lök", "morot", "morötter",
		"tomat", "druvor", "vindruvor", "beef", "chicken", "pork",
		"hackfleisch", "pollo", "poulet",
	}
)

// InferUnit guesses a unit from category cues in the cleaned name.
func InferUnit(name string) string {
	for _, h := range volumeHints {
		if strings.Contains(name, h) {
			return UnitLiter
		}
	}
	for _, h := range weightHints {
		if strings.Contains(name, h) {
			return UnitKilogram
		}
	}
	return UnitPiece
}
