// Package grammar synthesizes the regular expressions that recognize
// measurement text.
//
// # Overview
//
// Nothing here is stateful. Fragment builders ([Number], [Fraction],
// [PrePower], [PostPower], [Alternation]) return pattern text, and [Compile]
// turns the unit alternations of many definitions into a [Compiled] grammar:
// one case-sensitive and one case-insensitive [regexp2.Regexp] plus an index
// from capture-group name back to the definition token.
//
// # Component Pattern
//
// A single component of a measurement reads, informally:
//
//	[sign] number [fraction] [prePower] unitToken [postPower]
//
// where number accepts digit groups separated by space, tab, underscore or
// comma, a decimal point and an exponent; fraction is "a/b" with optional HTML
// markup around either side; and the power directives are superscript digits
// (m²) or power words (sq, square, cubic, ...).
//
// # Unit Groups
//
// Every definition contributes one named group "u<token>". The token is the
// definition's registry identity, so a match maps back to the exact definition
// through [Compiled.Token] without encoding anything else in the group name.
//
// The engine is [github.com/dlclark/regexp2] because the grammar relies on
// lookahead, atomic groups and a per-pattern match timeout; the timeout bounds
// worst-case backtracking and surfaces as an error, never as a silent miss.
package grammar
