package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var quitarTildes = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize deja un término de búsqueda en minúsculas y sin marcas
// diacríticas: "Café con Leche" -> "cafe con leche". El catálogo es en
// español, así que "cafe" y "café" deben encontrar lo mismo.
func Normalize(s string) string {
	out, _, err := transform.String(quitarTildes, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
