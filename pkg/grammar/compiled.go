package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds a single match attempt against a compiled grammar.
const DefaultMatchTimeout = time.Second

// Compiled is a grammar synthesized from a set of unit definitions: the same
// pattern compiled case-sensitive and case-insensitive, plus the index from
// unit group name to definition token. A Compiled value is never mutated
// after [Compile] returns and is safe for concurrent use.
type Compiled struct {
	sensitive   *regexp2.Regexp
	insensitive *regexp2.Regexp
	groups      []string
	tokens      map[string]int
	source      string
}

// Match is one decoded component occurrence.
type Match struct {
	Index    int    // rune offset of the match in the input
	Text     string // full matched text
	Negative bool   // a leading minus was present
	Number   string // integral/decimal part, may be empty for "1/2"
	FracNum  string // fraction numerator with markup stripped, may be empty
	FracDen  string // fraction denominator with markup stripped, may be empty
	PrePower string // power directive before the unit token, may be empty
	Power    string // power directive after the unit token, may be empty
	Token    int    // token of the matched unit definition
}

// Compile builds the grammar for entries, in order. Earlier entries win when
// two definitions share a lexical form (e.g. "'" for feet and arc-minutes).
// A non-positive timeout selects [DefaultMatchTimeout].
func Compile(entries []Entry, timeout time.Duration) (*Compiled, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("grammar: no unit entries")
	}
	if timeout <= 0 {
		timeout = DefaultMatchTimeout
	}

	c := &Compiled{
		groups: make([]string, 0, len(entries)),
		tokens: make(map[string]int, len(entries)),
	}
	alts := make([]string, 0, len(entries))
	for _, e := range entries {
		name := GroupName(e.Token)
		if _, dup := c.tokens[name]; dup {
			return nil, fmt.Errorf("grammar: duplicate token %d", e.Token)
		}
		c.groups = append(c.groups, name)
		c.tokens[name] = e.Token
		alts = append(alts, Alternation(e))
	}
	c.source = Template(strings.Join(alts, "|"))

	var err error
	if c.sensitive, err = regexp2.Compile(c.source, regexp2.None); err != nil {
		return nil, fmt.Errorf("grammar: compile: %w", err)
	}
	if c.insensitive, err = regexp2.Compile(c.source, regexp2.IgnoreCase); err != nil {
		return nil, fmt.Errorf("grammar: compile insensitive: %w", err)
	}
	c.sensitive.MatchTimeout = timeout
	c.insensitive.MatchTimeout = timeout
	return c, nil
}

// Source returns the pattern text.
func (c *Compiled) Source() string { return c.source }

// Groups returns the unit group names in registration order.
func (c *Compiled) Groups() []string {
	out := make([]string, len(c.groups))
	copy(out, c.groups)
	return out
}

// Token resolves a unit group name to its definition token.
func (c *Compiled) Token(group string) (int, bool) {
	t, ok := c.tokens[group]
	return t, ok
}

// Fingerprint returns the SHA-256 of the pattern text. Two grammars built from
// the same entries in the same order share a fingerprint.
func (c *Compiled) Fingerprint() string {
	sum := sha256.Sum256([]byte(c.source))
	return hex.EncodeToString(sum[:])
}

// Match returns every component occurrence in text using the case-sensitive
// pattern, or the case-insensitive one when insensitive is set. A match
// timeout is returned as an error.
func (c *Compiled) Match(text string, insensitive bool) ([]Match, error) {
	re := c.sensitive
	if insensitive {
		re = c.insensitive
	}

	var out []Match
	m, err := re.FindStringMatch(text)
	for ; m != nil && err == nil; m, err = re.FindNextMatch(m) {
		decoded, ok := c.decode(m)
		if !ok {
			return nil, fmt.Errorf("grammar: match %q has no unit group", m.String())
		}
		out = append(out, decoded)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Compiled) decode(m *regexp2.Match) (Match, bool) {
	out := Match{
		Index:    m.Index,
		Text:     m.String(),
		Negative: captured(m, groupSign) != "",
		Number:   captured(m, groupNumber),
		FracNum:  StripTags(captured(m, groupFracNum)),
		FracDen:  StripTags(captured(m, groupFracDen)),
		PrePower: captured(m, groupPrePower),
		Power:    captured(m, groupPower),
	}

	for _, name := range c.groups {
		if captured(m, name) == "" {
			continue
		}
		out.Token = c.tokens[name]
		return out, true
	}
	return out, false
}

func captured(m *regexp2.Match, name string) string {
	g := m.GroupByName(name)
	if g == nil || len(g.Captures) == 0 {
		return ""
	}
	return g.String()
}
