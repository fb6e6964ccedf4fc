package units

import (
	"sync/atomic"

	"github.com/matzehuels/measure/pkg/errors"
)

var kindSeq atomic.Int64

// Kind is a quantity kind: a closed family of unit definitions that can be
// added, subtracted and compared with each other (Length, Mass, Money, ...).
//
// Kinds are compared by identity. Two kinds with the same name are distinct.
type Kind struct {
	id   int
	name string
	ops  Ops
}

// NewKind creates a quantity kind with the default arithmetic.
func NewKind(name string) *Kind {
	return NewKindWithOps(name, nil)
}

// NewKindWithOps creates a quantity kind whose arithmetic is handled by ops.
// A nil ops selects [DefaultOps].
func NewKindWithOps(name string, ops Ops) *Kind {
	if err := errors.ValidateKindName(name); err != nil {
		panic(err)
	}
	if ops == nil {
		ops = DefaultOps{}
	}
	return &Kind{id: int(kindSeq.Add(1)), name: name, ops: ops}
}

// ID returns the process-wide identity of the kind.
func (k *Kind) ID() int { return k.id }

// Name returns the kind name, e.g. "Length".
func (k *Kind) Name() string { return k.name }

// String implements fmt.Stringer.
func (k *Kind) String() string { return k.name }

// Ops returns the arithmetic of the kind.
func (k *Kind) Ops() Ops { return k.ops }
