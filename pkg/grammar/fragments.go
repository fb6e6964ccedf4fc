package grammar

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Capture group names shared by the component template and [Compiled.Match].
const (
	groupSign     = "sign"
	groupNumber   = "num"
	groupFracNum  = "fnum"
	groupFracDen  = "fden"
	groupPrePower = "prepow"
	groupPower    = "postpow"

	// unitGroupPrefix starts every unit group name; the token follows.
	unitGroupPrefix = "u"
)

// separatorClass lists the optional separators allowed inside a multi-word
// unit name ("nautical mile", "fl-oz").
const separatorClass = `[ \t\-_.]{0,3}`

// Number returns the pattern for a decimal literal without sign: digit groups
// separated by space, tab, underscore or comma (a group is exactly three
// digits), an optional decimal point and an optional exponent.
//
// Grouping requires three digits so "5 3/4" stays a mixed number.
func Number() string {
	return `(?:[0-9]+(?:[ \t_,][0-9]{3}(?![0-9]))*(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`
}

// tagged wraps a digit run in optional HTML markup (<sup>1</sup>).
const tagged = `(?:<[A-Za-z][^>]*>)?[0-9]+(?:</[A-Za-z][^>]*>)?`

// Fraction returns the pattern for "a/b" where either side may be wrapped in
// HTML markup. When named is true the numerator and denominator are captured.
func Fraction(named bool) string {
	num, den := `(?:`+tagged+`)`, `(?:`+tagged+`)`
	if named {
		num = `(?<` + groupFracNum + `>` + tagged + `)`
		den = `(?<` + groupFracDen + `>` + tagged + `)`
	}
	return num + `[ \t]*[/⁄∕][ \t]*` + den
}

// Value returns the pattern for a full numeric amount: a number, a number
// followed by a fraction ("4 3/4", "2-1/4"), or a bare fraction ("1/2").
//
// The number is atomic so "21/4" is read as a fraction rather than as
// 2 + 1/4.
func Value(named bool) string {
	num := `(?>` + Number() + `)`
	if named {
		num = `(?<` + groupNumber + `>(?>` + Number() + `))`
	}
	return `(?:` + num + `(?![ \t]*[/⁄∕])(?:[ \t\-]+(?=[0-9<])(?:` + Fraction(named) + `))?|` + Fraction(named) + `)`
}

// segmentPattern finds numeric literals that are not immediately followed by
// the end of the text or a lone trailing separator. Such literals are unit
// amounts; a trailing bare number is not.
var segmentPattern = regexp2.MustCompile(`(?>`+Value(false)+`)(?![ \t_,]*$)`, regexp2.None)

// Segments counts the numeric literals in text that announce a unit amount.
func Segments(text string) (int, error) {
	n := 0
	m, err := segmentPattern.FindStringMatch(text)
	for ; m != nil && err == nil; m, err = segmentPattern.FindNextMatch(m) {
		n++
	}
	return n, err
}

// tagPattern matches HTML markup around fraction digits.
var tagPattern = regexp2.MustCompile(`<[^>]*>`, regexp2.None)

// StripTags removes HTML markup, e.g. "<sup>3</sup>" → "3".
func StripTags(s string) string {
	out, err := tagPattern.Replace(s, "", -1, -1)
	if err != nil {
		return s
	}
	return out
}

// Entry describes the lexical forms of one unit definition.
type Entry struct {
	Token      int
	Name       string
	Plural     string
	Symbol     string
	Alternates []string
}

// GroupName returns the capture group name used for token.
func GroupName(token int) string {
	return unitGroupPrefix + strconv.Itoa(token)
}

// Forms returns every lexical form the grammar accepts for e, deduplicated
// and sorted longest first so "feet" cannot shadow "feet²" or "foot" cannot
// shadow "footage".
func Forms(e Entry) []string {
	var forms []string
	add := func(s string, pluralize bool) {
		if s == "" {
			return
		}
		forms = append(forms, s)
		if pluralize && endsWithLetter(s) {
			forms = append(forms, s+"s")
		}
	}

	add(e.Name, true)
	add(e.Plural, true)
	add(e.Symbol, false)
	for _, alt := range e.Alternates {
		add(alt, true)
	}

	seen := make(map[string]bool, len(forms))
	uniq := forms[:0]
	for _, f := range forms {
		if !seen[f] {
			seen[f] = true
			uniq = append(uniq, f)
		}
	}

	sort.SliceStable(uniq, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(uniq[i]), utf8.RuneCountInString(uniq[j])
		if li != lj {
			return li > lj
		}
		return uniq[i] < uniq[j]
	})
	return uniq
}

// Alternation returns the named group matching any lexical form of e.
func Alternation(e Entry) string {
	forms := Forms(e)
	parts := make([]string, len(forms))
	for i, f := range forms {
		parts[i] = escapeForm(f)
	}
	return `(?<` + GroupName(e.Token) + `>` + strings.Join(parts, "|") + `)`
}

// Template embeds a unit alternation in the component pattern.
func Template(units string) string {
	var b strings.Builder
	b.WriteString(`(?<` + groupSign + `>-)?[ \t_]*`)
	b.WriteString(`(?=[.0-9<])`)
	b.WriteString(Value(true))
	b.WriteString(`[ \t]*`)
	b.WriteString(`(?:(?<` + groupPrePower + `>` + PrePower() + `)[ \t]*)?`)
	b.WriteString(`(?:` + units + `)`)
	b.WriteString(`(?![\p{L}])`)
	b.WriteString(`(?:[ \t]*(?<` + groupPower + `>` + PostPower() + `))?`)
	return b.String()
}

// escapeForm escapes regex metacharacters and replaces each internal run of
// whitespace or punctuation separators with an optional separator class.
func escapeForm(form string) string {
	runes := []rune(form)
	var b strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if !isSeparator(r) || i == 0 {
			b.WriteString(regexp2.Escape(string(r)))
			continue
		}
		j := i
		for j < len(runes) && isSeparator(runes[j]) {
			j++
		}
		if j == len(runes) {
			// trailing punctuation ("in.") stays literal
			b.WriteString(regexp2.Escape(string(runes[i:])))
			break
		}
		b.WriteString(separatorClass)
		i = j - 1
	}
	return b.String()
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '-', '_', '.':
		return true
	}
	return false
}

func endsWithLetter(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
