package units

import (
	"context"
	"maps"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/measure/pkg/errors"
	"github.com/matzehuels/measure/pkg/grammar"
	"github.com/matzehuels/measure/pkg/observability"
)

// siblingTolerance is the relative tolerance used when checking that power
// siblings describe the same base unit.
const siblingTolerance = 1e-9

// Registry is a catalog of unit definitions grouped by quantity kind.
//
// A Registry is populated once, then sealed by [Registry.EnsureInitialized],
// which also compiles the global grammar. Population is append-only; after
// sealing the registry is read-only and safe for concurrent use. Grammars
// restricted to a single kind are compiled on first use and cached.
//
// Most callers use [Standard]. Tests and hosts with their own catalogs build
// one with [NewRegistry].
type Registry struct {
	mu       sync.RWMutex
	kinds    []*Kind
	defs     map[*Kind][]*UnitDef
	byToken  map[int]*UnitDef
	siblings map[int]map[uint8]*UnitDef
	related  map[*Kind]map[*Kind]bool
	bases    map[*Kind]*UnitDef
	token    int
	sealed   bool
	timeout  time.Duration

	once    sync.Once
	initErr error
	global  *grammar.Compiled
	perKind map[*Kind]*grammar.Compiled
	flight  singleflight.Group
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithMatchTimeout bounds a single match attempt of every compiled grammar.
func WithMatchTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) { r.timeout = d }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		defs:     make(map[*Kind][]*UnitDef),
		byToken:  make(map[int]*UnitDef),
		siblings: make(map[int]map[uint8]*UnitDef),
		related:  make(map[*Kind]map[*Kind]bool),
		bases:    make(map[*Kind]*UnitDef),
		perKind:  make(map[*Kind]*grammar.Compiled),
		timeout:  grammar.DefaultMatchTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// =============================================================================
// Population
// =============================================================================

// SetMatchTimeout is the late form of [WithMatchTimeout] for registries built
// elsewhere, such as [Standard].
// It fails once the registry is sealed.
func (r *Registry) SetMatchTimeout(d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return errors.New(errors.ErrCodeRegistrySealed, "cannot change the match timeout of a sealed registry")
	}
	r.timeout = d
	return nil
}

// AddKind appends kinds to the registry. The order of kinds is the order in
// which their units appear in the global grammar, so it decides which kind
// wins when two kinds share a symbol. Adding a known kind is a no-op.
func (r *Registry) AddKind(kinds ...*Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return errors.New(errors.ErrCodeRegistrySealed, "cannot add kinds to a sealed registry")
	}
	for _, k := range kinds {
		r.addKindLocked(k)
	}
	return nil
}

func (r *Registry) addKindLocked(k *Kind) {
	if _, ok := r.defs[k]; ok {
		return
	}
	r.kinds = append(r.kinds, k)
	r.defs[k] = nil
}

// Define creates a unit definition of kind and registers it.
func (r *Registry) Define(kind *Kind, opts DefOptions) (*UnitDef, error) {
	d, err := newUnitDef(kind, opts)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return nil, errors.New(errors.ErrCodeRegistrySealed, "cannot define %q: registry is sealed", d.naming.Name)
	}
	if opts.Base {
		if err := r.setBaseLocked(d); err != nil {
			return nil, err
		}
	}

	r.addKindLocked(kind)
	r.token++
	d.token = r.token
	d.reg = r
	r.defs[kind] = append(r.defs[kind], d)
	r.byToken[d.token] = d
	return d, nil
}

// MustDefine is like Define but panics on error. It is intended for catalogs
// declared at package initialization.
func (r *Registry) MustDefine(kind *Kind, opts DefOptions) *UnitDef {
	d, err := r.Define(kind, opts)
	if err != nil {
		panic(err)
	}
	return d
}

// SetBase marks def as the base unit of its kind. Marking the same def twice
// is a no-op; marking a different def is a DUPLICATE_BASE_UNIT error.
func (r *Registry) SetBase(def *UnitDef) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.setBaseLocked(def)
}

func (r *Registry) setBaseLocked(def *UnitDef) error {
	if old, ok := r.bases[def.kind]; ok && old != def {
		return errors.New(errors.ErrCodeDuplicateBaseUnit,
			"%s already has base unit %q, cannot mark %q", def.kind, old.naming.Name, def.naming.Name)
	}
	r.bases[def.kind] = def
	return nil
}

// Base returns the base unit of kind, or nil.
func (r *Registry) Base(kind *Kind) *UnitDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bases[kind]
}

// Relate records that a and b may be combined by multiplication and division
// (e.g. Length and Area). The relation is symmetric.
func (r *Registry) Relate(a, b *Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return errors.New(errors.ErrCodeRegistrySealed, "cannot relate kinds in a sealed registry")
	}
	for _, pair := range [][2]*Kind{{a, b}, {b, a}} {
		if r.related[pair[0]] == nil {
			r.related[pair[0]] = make(map[*Kind]bool)
		}
		r.related[pair[0]][pair[1]] = true
	}
	return nil
}

// AreCompatibleKinds reports whether a and b are the same kind or related
// through [Registry.Relate].
func (r *Registry) AreCompatibleKinds(a, b *Kind) bool {
	if a == b {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.related[a][b]
}

// RelatedKinds returns the kinds related to k, in registration order.
func (r *Registry) RelatedKinds(k *Kind) []*Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Kind
	for _, other := range r.kinds {
		if r.related[k][other] {
			out = append(out, other)
		}
	}
	return out
}

// =============================================================================
// Power Siblings
// =============================================================================

// RegisterPowerSiblings records defs as representations of the same base unit
// at different powers. The power of each def is its fixed power when it has
// one, otherwise its 1-based position in defs:
//
//	reg.RegisterPowerSiblings(Meter, SquareMeter, CubicMeter) // 1, 2, 3
//	reg.RegisterPowerSiblings(Decimeter, Liter)               // 1, 3 (liter is fixed at 3)
//
// A position outside a def's power range, two defs at one power, or scales
// that disagree are INVALID_POWER_REGISTRATION errors.
func (r *Registry) RegisterPowerSiblings(defs ...*UnitDef) error {
	at := make(map[uint8]*UnitDef, len(defs))
	for i, d := range defs {
		if d == nil {
			return errors.New(errors.ErrCodeInvalidPowerSibling, "nil definition at position %d", i+1)
		}
		p := uint8(i + 1)
		if d.IsFixedPower() {
			p = d.powerMin
		} else if !d.FitsPower(p) {
			return errors.New(errors.ErrCodeInvalidPowerSibling,
				"%q at position %d is outside its power range", d.naming.Name, i+1)
		}
		if prev, dup := at[p]; dup {
			return errors.New(errors.ErrCodeInvalidPowerSibling,
				"%q and %q both claim power %d", prev.naming.Name, d.naming.Name, p)
		}
		at[p] = d
	}
	return r.RegisterPowerSiblingsAt(at)
}

// RegisterPowerSiblingsAt is the explicit form of RegisterPowerSiblings.
func (r *Registry) RegisterPowerSiblingsAt(at map[uint8]*UnitDef) error {
	if len(at) < 2 {
		return errors.New(errors.ErrCodeInvalidPowerSibling, "need at least two siblings")
	}
	if err := checkSiblingScales(at); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return errors.New(errors.ErrCodeRegistrySealed, "cannot register siblings in a sealed registry")
	}
	for p, d := range at {
		if d.reg != r {
			return errors.New(errors.ErrCodeInvalidPowerSibling, "%q is not registered here", d.naming.Name)
		}
		if !d.FitsPower(p) {
			return errors.New(errors.ErrCodeInvalidPowerSibling, "%q cannot take power %d", d.naming.Name, p)
		}
	}
	for _, d := range at {
		m := r.siblings[d.token]
		if m == nil {
			m = make(map[uint8]*UnitDef, len(at))
			r.siblings[d.token] = m
		}
		for p, sib := range at {
			if old, ok := m[p]; ok && old != sib {
				return errors.New(errors.ErrCodeInvalidPowerSibling,
					"%q already has a power %d sibling %q", d.naming.Name, p, old.naming.Name)
			}
			m[p] = sib
		}
	}
	return nil
}

// MustRegisterPowerSiblings is like RegisterPowerSiblings but panics on error.
func (r *Registry) MustRegisterPowerSiblings(defs ...*UnitDef) {
	if err := r.RegisterPowerSiblings(defs...); err != nil {
		panic(err)
	}
}

// checkSiblingScales verifies that every sibling scales like the power-1
// member raised to its power. Abstract members and sets without a power-1
// member are not checked.
func checkSiblingScales(at map[uint8]*UnitDef) error {
	linear, ok := at[1]
	if !ok || linear.abstract {
		return nil
	}
	for p, d := range at {
		if d.abstract {
			continue
		}
		want := math.Pow(linear.Scale(), float64(p))
		got := d.ScalePow(p)
		if math.Abs(got-want) > siblingTolerance*math.Max(math.Abs(want), math.Abs(got)) {
			return errors.New(errors.ErrCodeInvalidPowerSibling,
				"%q (%g) does not match %q^%d (%g)", d.naming.Name, got, linear.naming.Name, p, want)
		}
	}
	return nil
}

// PowerUnitDef returns the sibling of def registered for power, or nil.
func (r *Registry) PowerUnitDef(def *UnitDef, power uint8) *UnitDef {
	if def == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.siblings[def.token][power]
}

// PowerSiblings returns a copy of the sibling group def belongs to, keyed by
// power. It is empty when def has no siblings.
func (r *Registry) PowerSiblings(def *UnitDef) map[uint8]*UnitDef {
	if def == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.siblings[def.token])
}

// maxSiblingPower returns the highest power registered among def's siblings.
func (r *Registry) maxSiblingPower(def *UnitDef) uint8 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var max uint8
	for p := range r.siblings[def.token] {
		if p > max {
			max = p
		}
	}
	return max
}

// =============================================================================
// Lookup
// =============================================================================

// Kinds returns the registered kinds in order.
func (r *Registry) Kinds() []*Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.kinds)
}

// KindByName returns the kind with the given name (case-insensitive).
func (r *Registry) KindByName(name string) (*Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, k := range r.kinds {
		if strings.EqualFold(k.name, name) {
			return k, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "unknown kind %q", name)
}

// Defs returns the definitions of kind in registration order.
func (r *Registry) Defs(kind *Kind) []*UnitDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.defs[kind])
}

// AllDefs returns every definition, grouped by kind in kind order.
func (r *Registry) AllDefs() []*UnitDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*UnitDef
	for _, k := range r.kinds {
		out = append(out, r.defs[k]...)
	}
	return out
}

// UnitDefByToken resolves an identity token.
func (r *Registry) UnitDefByToken(token int) (*UnitDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byToken[token]
	return d, ok
}

// UnitDefByName finds the definition whose name is exactly name within the
// kind named kindName. It is the inverse of persisting (Name, Kind.Name).
func (r *Registry) UnitDefByName(name, kindName string) (*UnitDef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, k := range r.kinds {
		if k.name != kindName {
			continue
		}
		for _, d := range r.defs[k] {
			if d.naming.Name == name {
				return d, nil
			}
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no unit %q of kind %q", name, kindName)
}

// Find returns the first definition any of whose lexical forms equals form,
// trying an exact match before a case-insensitive one. kinds restricts the
// search when given.
func (r *Registry) Find(form string, kinds ...*Kind) (*UnitDef, error) {
	form = strings.TrimSpace(form)
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, fold := range []bool{false, true} {
		for _, k := range r.kinds {
			if len(kinds) > 0 && !slices.Contains(kinds, k) {
				continue
			}
			for _, d := range r.defs[k] {
				for _, n := range d.naming.Names() {
					if n == form || (fold && strings.EqualFold(n, form)) {
						return d, nil
					}
				}
			}
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no unit named %q", form)
}

// =============================================================================
// Grammars
// =============================================================================

// EnsureInitialized seals the registry and compiles the global grammar. It is
// safe to call any number of times from any goroutine; only the first call
// does work and every call returns the same result.
func (r *Registry) EnsureInitialized() error {
	r.once.Do(func() {
		r.mu.Lock()
		r.sealed = true
		entries := r.entriesLocked(r.kinds)
		r.mu.Unlock()

		start := time.Now()
		r.global, r.initErr = grammar.Compile(entries, r.timeout)
		observability.Grammar().OnGrammarCompiled(context.Background(), "global", len(entries), time.Since(start), r.initErr)
	})
	return r.initErr
}

// Sealed reports whether the registry no longer accepts definitions.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Grammar returns the global grammar, initializing the registry if needed.
func (r *Registry) Grammar() (*grammar.Compiled, error) {
	if err := r.EnsureInitialized(); err != nil {
		return nil, err
	}
	return r.global, nil
}

// GrammarFor returns the grammar for kinds: the global grammar when kinds is
// empty, a cached per-kind grammar for a single kind, and a freshly compiled
// union grammar for several kinds.
func (r *Registry) GrammarFor(kinds ...*Kind) (*grammar.Compiled, error) {
	if err := r.EnsureInitialized(); err != nil {
		return nil, err
	}

	kinds = r.orderKinds(kinds)
	switch len(kinds) {
	case 0:
		return r.global, nil
	case 1:
		return r.kindGrammar(kinds[0])
	}

	r.mu.RLock()
	entries := r.entriesLocked(kinds)
	r.mu.RUnlock()
	if len(entries) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no units registered for %v", kinds)
	}

	start := time.Now()
	g, err := grammar.Compile(entries, r.timeout)
	observability.Grammar().OnGrammarCompiled(context.Background(), "union", len(entries), time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "compile union grammar")
	}
	return g, nil
}

func (r *Registry) kindGrammar(k *Kind) (*grammar.Compiled, error) {
	r.mu.RLock()
	g, ok := r.perKind[k]
	r.mu.RUnlock()
	if ok {
		observability.Cache().OnCacheHit(context.Background(), k.name)
		return g, nil
	}
	observability.Cache().OnCacheMiss(context.Background(), k.name)

	v, err, _ := r.flight.Do(k.name, func() (any, error) {
		r.mu.RLock()
		if g, ok := r.perKind[k]; ok {
			r.mu.RUnlock()
			return g, nil
		}
		entries := r.entriesLocked([]*Kind{k})
		r.mu.RUnlock()
		if len(entries) == 0 {
			return nil, errors.New(errors.ErrCodeNotFound, "no units registered for %s", k)
		}

		start := time.Now()
		g, err := grammar.Compile(entries, r.timeout)
		observability.Grammar().OnGrammarCompiled(context.Background(), k.name, len(entries), time.Since(start), err)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "compile %s grammar", k)
		}

		r.mu.Lock()
		r.perKind[k] = g
		r.mu.Unlock()
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*grammar.Compiled), nil
}

// orderKinds deduplicates kinds and puts them in registration order so that
// equal kind sets always produce the same grammar.
func (r *Registry) orderKinds(kinds []*Kind) []*Kind {
	if len(kinds) == 0 {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Kind
	for _, k := range r.kinds {
		if slices.Contains(kinds, k) {
			out = append(out, k)
		}
	}
	for _, k := range kinds {
		if k != nil && !slices.Contains(out, k) {
			out = append(out, k) // unknown kind: yields no entries
		}
	}
	return out
}

func (r *Registry) entriesLocked(kinds []*Kind) []grammar.Entry {
	var entries []grammar.Entry
	for _, k := range kinds {
		for _, d := range r.defs[k] {
			entries = append(entries, d.naming.entry(d.token))
		}
	}
	return entries
}
