package dfs

import (
	"fmt"
	"sort"

	"github.com/ngvozdiev/netsim/graph"
)

// Constraint decides whether a candidate path (a complete LinkSequence from
// source to destination) is acceptable. Constraints are immutable and safe
// for concurrent use.
type Constraint interface {
	// Complies reports whether seq satisfies the constraint.
	Complies(seq graph.LinkSequence) bool
	String() string
}

// ConstraintKind identifies the shape of a ConstraintDescription.
type ConstraintKind int

const (
	// ConstraintDummy always complies.
	ConstraintDummy ConstraintKind = iota
	// ConstraintVisitEdge requires Link to appear on the path.
	ConstraintVisitEdge
	// ConstraintAvoidEdge requires Link to not appear on the path.
	ConstraintAvoidEdge
	// ConstraintAvoidEdges requires none of Links to appear on the path.
	ConstraintAvoidEdges
	// ConstraintAvoidPath requires the path to not equal Path's link sequence.
	ConstraintAvoidPath
	// ConstraintAnd requires both Operands to comply.
	ConstraintAnd
	// ConstraintOr requires at least one of Operands to comply.
	ConstraintOr
	// ConstraintNegate inverts its single Operand.
	ConstraintNegate
)

// ConstraintDescription is the declarative form a Constraint is compiled
// from, e.g. loaded from a configuration file or built by a caller that
// does not want to hand-construct the Constraint tree.
type ConstraintDescription struct {
	Kind     ConstraintKind
	Link     *graph.Link
	Links    graph.Links
	Path     *graph.Path
	Operands []ConstraintDescription
}

// CompileConstraint builds a Constraint tree from desc, validating arity and
// required fields at every node.
func CompileConstraint(desc ConstraintDescription) (Constraint, error) {
	switch desc.Kind {
	case ConstraintDummy:
		return dummyConstraint{}, nil

	case ConstraintVisitEdge:
		if desc.Link == nil {
			return nil, fmt.Errorf("%w: visit-edge requires a link", ErrMalformedConstraint)
		}
		return visitEdgeConstraint{link: desc.Link}, nil

	case ConstraintAvoidEdge:
		if desc.Link == nil {
			return nil, fmt.Errorf("%w: avoid-edge requires a link", ErrMalformedConstraint)
		}
		return avoidEdgeConstraint{link: desc.Link}, nil

	case ConstraintAvoidEdges:
		if len(desc.Links) == 0 {
			return nil, fmt.Errorf("%w: avoid-edges requires at least one link", ErrMalformedConstraint)
		}
		indices := make([]int, len(desc.Links))
		for i, l := range desc.Links {
			indices[i] = l.Index()
		}
		sort.Ints(indices)
		return avoidEdgesConstraint{indices: indices}, nil

	case ConstraintAvoidPath:
		if desc.Path == nil {
			return nil, fmt.Errorf("%w: avoid-path requires a path", ErrMalformedConstraint)
		}
		return avoidPathConstraint{seq: desc.Path.LinkSequence()}, nil

	case ConstraintAnd, ConstraintOr:
		if len(desc.Operands) != 2 {
			return nil, fmt.Errorf("%w: and/or requires exactly two operands", ErrMalformedConstraint)
		}
		a, err := CompileConstraint(desc.Operands[0])
		if err != nil {
			return nil, err
		}
		b, err := CompileConstraint(desc.Operands[1])
		if err != nil {
			return nil, err
		}
		if desc.Kind == ConstraintAnd {
			return andConstraint{a: a, b: b}, nil
		}
		return orConstraint{a: a, b: b}, nil

	case ConstraintNegate:
		if len(desc.Operands) != 1 {
			return nil, fmt.Errorf("%w: negate requires exactly one operand", ErrMalformedConstraint)
		}
		inner, err := CompileConstraint(desc.Operands[0])
		if err != nil {
			return nil, err
		}
		return negateConstraint{inner: inner}, nil

	default:
		return nil, fmt.Errorf("%w: unknown constraint kind %d", ErrMalformedConstraint, desc.Kind)
	}
}

// MustCompileConstraint compiles desc and panics on error. Use it for
// constraints built from static, caller-controlled configuration, where a
// malformed description reflects a programming error rather than bad input.
func MustCompileConstraint(desc ConstraintDescription) Constraint {
	c, err := CompileConstraint(desc)
	if err != nil {
		panic(err)
	}
	return c
}

type dummyConstraint struct{}

func (dummyConstraint) Complies(graph.LinkSequence) bool { return true }
func (dummyConstraint) String() string                   { return "dummy" }

type visitEdgeConstraint struct{ link *graph.Link }

func (c visitEdgeConstraint) Complies(seq graph.LinkSequence) bool { return seq.Contains(c.link) }
func (c visitEdgeConstraint) String() string                       { return "visit(" + c.link.String() + ")" }

type avoidEdgeConstraint struct{ link *graph.Link }

func (c avoidEdgeConstraint) Complies(seq graph.LinkSequence) bool { return !seq.Contains(c.link) }
func (c avoidEdgeConstraint) String() string                       { return "avoid(" + c.link.String() + ")" }

// avoidEdgesConstraint keeps a sorted set of link indices so compliance
// checking a path of length k against n avoided links costs O(k log n)
// instead of O(k*n).
type avoidEdgesConstraint struct{ indices []int }

func (c avoidEdgesConstraint) Complies(seq graph.LinkSequence) bool {
	for _, l := range seq.Links() {
		i := sort.SearchInts(c.indices, l.Index())
		if i < len(c.indices) && c.indices[i] == l.Index() {
			return false
		}
	}
	return true
}
func (c avoidEdgesConstraint) String() string { return "avoid-edges" }

type avoidPathConstraint struct{ seq graph.LinkSequence }

func (c avoidPathConstraint) Complies(seq graph.LinkSequence) bool {
	return seq.String() != c.seq.String()
}
func (c avoidPathConstraint) String() string { return "avoid-path(" + c.seq.String() + ")" }

type andConstraint struct{ a, b Constraint }

func (c andConstraint) Complies(seq graph.LinkSequence) bool {
	return c.a.Complies(seq) && c.b.Complies(seq)
}
func (c andConstraint) String() string { return "(" + c.a.String() + " and " + c.b.String() + ")" }

type orConstraint struct{ a, b Constraint }

func (c orConstraint) Complies(seq graph.LinkSequence) bool {
	return c.a.Complies(seq) || c.b.Complies(seq)
}
func (c orConstraint) String() string { return "(" + c.a.String() + " or " + c.b.String() + ")" }

type negateConstraint struct{ inner Constraint }

func (c negateConstraint) Complies(seq graph.LinkSequence) bool { return !c.inner.Complies(seq) }
func (c negateConstraint) String() string                       { return "not(" + c.inner.String() + ")" }
