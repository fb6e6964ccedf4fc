package grammar

import (
	"strings"
)

// superscripts maps the ten superscript digits to their values.
var superscripts = map[rune]uint8{
	'⁰': 0, '¹': 1, '²': 2, '³': 3, '⁴': 4,
	'⁵': 5, '⁶': 6, '⁷': 7, '⁸': 8, '⁹': 9,
}

// powerWords maps power words and their abbreviations to exponents.
// Longer words must precede their prefixes in powerWordOrder.
var powerWords = map[string]uint8{
	"squared":   2,
	"square":    2,
	"sq":        2,
	"quadratic": 2,
	"cubed":     3,
	"cubic":     3,
	"cu":        3,
	"quartic":   4,
	"quintic":   5,
	"sextic":    6,
	"septic":    7,
	"octic":     8,
	"nonic":     9,
	"decic":     10,
}

var powerWordOrder = []string{
	"quadratic", "squared", "quartic", "quintic", "square", "sextic", "septic",
	"cubed", "cubic", "decic", "nonic", "octic", "sq", "cu",
}

// superscriptClass matches one or more superscript digits.
const superscriptClass = `[⁰¹²³⁴⁵⁶⁷⁸⁹]+`

// PrePower returns the pattern for a power directive written before the unit
// token ("sq ft", "cubic meters").
func PrePower() string {
	return `(?:` + strings.Join(powerWordOrder, "|") + `)\.?`
}

// PostPower returns the pattern for a power directive written after the unit
// token: superscript digits ("m²") or a power word ("feet squared").
func PostPower() string {
	return superscriptClass + `|(?:` + strings.Join(powerWordOrder, "|") + `)(?![\p{L}])`
}

// ParsePower decodes a power directive captured by [PrePower] or [PostPower].
// It reports false for empty or unrecognized text.
func ParsePower(text string) (uint8, bool) {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "."))
	if text == "" {
		return 0, false
	}

	if p, ok := powerWords[strings.ToLower(text)]; ok {
		return p, true
	}

	var p int
	for _, r := range text {
		d, ok := superscripts[r]
		if !ok {
			return 0, false
		}
		p = p*10 + int(d)
		if p > 255 {
			return 0, false
		}
	}
	return uint8(p), true
}

// Superscript renders p with superscript digits, e.g. 12 → "¹²".
func Superscript(p uint8) string {
	digits := []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")
	if p < 10 {
		return string(digits[p])
	}
	return Superscript(p/10) + string(digits[p%10])
}
