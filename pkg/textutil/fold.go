package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normaliza un término para búsqueda: minúsculas y sin diacríticos
// ("Café" -> "cafe"). Si la transformación falla devuelve el término en
// minúsculas tal cual.
func Fold(s string) string {
	lowered := strings.ToLower(s)
	folded, _, err := transform.String(foldChain, lowered)
	if err != nil {
		return lowered
	}
	return folded
}
