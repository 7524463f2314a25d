package dict

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Normalizer transforms a token or a lookup key.
type Normalizer func(string) string

// Accents absent from both target orthographies. é and ë exist in
// Luxembourgish and are left alone; German currently shares the same reduced
// set even though é/ë do not exist there either.
var baseFolds = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a',
	'è': 'e', 'ê': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'ò': 'o', 'ó': 'o', 'ô': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u',
	'À': 'A', 'Á': 'A', 'Â': 'A',
	'È': 'E', 'Ê': 'E',
	'Ì': 'I', 'Í': 'I', 'Î': 'I', 'Ï': 'I',
	'Ò': 'O', 'Ó': 'O', 'Ô': 'O',
	'Ù': 'U', 'Ú': 'U', 'Û': 'U',
	'’': '\'', '‘': '\'',
}

var accentSets = map[Language]map[rune]rune{
	German:        baseFolds,
	Luxembourgish: baseFolds,
}

func foldTransformer(folds map[rune]rune) transform.Transformer {
	return runes.Map(func(r rune) rune {
		if f, ok := folds[r]; ok {
			return f
		}
		return r
	})
}

var (
	foldBase = foldTransformer(baseFolds)
	folders  = map[Language]transform.Transformer{
		German:        foldTransformer(accentSets[German]),
		Luxembourgish: foldTransformer(accentSets[Luxembourgish]),
	}
)

// NormalizeAccents folds the accents shared by both target inventories
// (e.g. café stays café, fenêtre -> fenetre, ‘s’ -> 's').
func NormalizeAccents(s string) string {
	result, _, _ := transform.String(foldBase, s)
	return result
}

// AccentFolder returns the accent normalizer for the given target language.
// Unknown languages get the shared base set.
func AccentFolder(lang Language) Normalizer {
	t, ok := folders[lang]
	if !ok {
		return NormalizeAccents
	}
	return func(s string) string {
		result, _, _ := transform.String(t, s)
		return result
	}
}

// LookupKey lowercases a token for vocabulary lookup, preserving accents.
func LookupKey(s string) string {
	return strings.ToLower(s)
}

// NormalizeNone returns the token unchanged.
func NormalizeNone(s string) string {
	return s
}
