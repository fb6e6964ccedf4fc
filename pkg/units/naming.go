package units

import (
	"github.com/matzehuels/measure/pkg/errors"
	"github.com/matzehuels/measure/pkg/grammar"
)

// Naming holds the lexical forms of a unit definition.
type Naming struct {
	Name           string   // singular name, e.g. "centimeter"
	NamePlural     string   // plural name, e.g. "centimeters"; defaults to Name+"s"
	Symbol         string   // symbol, e.g. "cm"; optional
	AlternateNames []string // further accepted spellings, e.g. "centimetre"
}

// Names returns every lexical form in declaration order without duplicates.
func (n Naming) Names() []string {
	all := append([]string{n.Name, n.NamePlural, n.Symbol}, n.AlternateNames...)
	out := make([]string, 0, len(all))
	seen := make(map[string]bool, len(all))
	for _, s := range all {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Label returns the symbol if set, otherwise the name.
func (n Naming) Label() string {
	if n.Symbol != "" {
		return n.Symbol
	}
	return n.Name
}

func (n Naming) validate() error {
	if n.Name == "" {
		return errors.New(errors.ErrCodeInvalidUnitName, "unit name cannot be empty")
	}
	for _, s := range n.Names() {
		if err := errors.ValidateUnitName(s); err != nil {
			return err
		}
	}
	return nil
}

func (n Naming) withDefaults() Naming {
	if n.NamePlural == "" {
		n.NamePlural = n.Name + "s"
	}
	alts := make([]string, len(n.AlternateNames))
	copy(alts, n.AlternateNames)
	n.AlternateNames = alts
	return n
}

func (n Naming) entry(token int) grammar.Entry {
	return grammar.Entry{
		Token:      token,
		Name:       n.Name,
		Plural:     n.NamePlural,
		Symbol:     n.Symbol,
		Alternates: n.AlternateNames,
	}
}
