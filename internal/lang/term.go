// Package lang defines the term model for the six-combinator
// primitive-recursive language: the typed tagged tree described in spec §3,
// a recursive-descent Parser (spec §4.B), and a Printer that is its exact
// inverse (spec §4.C).
package lang

import "fmt"

// Tag identifies which of the six combinators (or the Z constant) a Term is.
type Tag int

const (
	Z Tag = iota
	I
	S
	LeftTag
	RightTag
	CompTag
	RecTag
)

// Token returns the single-character token used to print and parse a node of
// this Tag.
func (t Tag) Token() byte {
	switch t {
	case Z:
		return 'Z'
	case I:
		return 'I'
	case S:
		return 'S'
	case LeftTag:
		return '<'
	case RightTag:
		return '>'
	case CompTag:
		return 'o'
	case RecTag:
		return 'R'
	default:
		return '?'
	}
}

func (t Tag) String() string {
	switch t {
	case Z:
		return "Z"
	case I:
		return "I"
	case S:
		return "S"
	case LeftTag:
		return "Left"
	case RightTag:
		return "Right"
	case CompTag:
		return "Comp"
	case RecTag:
		return "Rec"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// tagForToken is the single explicit lookup table mentioned in spec §9: tag
// to token char and back. No registry, no dispatch by reflection.
var tokenForTag = [...]byte{Z: 'Z', I: 'I', S: 'S', LeftTag: '<', RightTag: '>', CompTag: 'o', RecTag: 'R'}

func tagForToken(ch byte) (Tag, bool) {
	switch ch {
	case 'Z':
		return Z, true
	case 'I':
		return I, true
	case 'S':
		return S, true
	case '<':
		return LeftTag, true
	case '>':
		return RightTag, true
	case 'o':
		return CompTag, true
	case 'R':
		return RecTag, true
	default:
		return 0, false
	}
}

// Term is an immutable node in a well-formed program tree. The zero value is
// not a valid Term; construct one with Z_, NewI, NewS, NewLeft, NewRight,
// NewComp, or NewRec.
//
// A Term owns its children outright; trees are never shared or cyclic, so
// structural equality and depth can be computed by plain recursion.
type Term struct {
	tag      Tag
	children []*Term
	arity    int
	depth    int
}

// Tag returns the node's combinator tag.
func (t *Term) Tag() Tag { return t.tag }

// Arity returns the number of natural-number inputs this term expects.
func (t *Term) Arity() int { return t.arity }

// Depth returns the term's structural depth, per spec §3.
func (t *Term) Depth() int { return t.depth }

// Children returns the term's children in evaluation order. The returned
// slice must not be mutated by the caller.
func (t *Term) Children() []*Term { return t.children }

// NewZ returns the constant-0 term.
func NewZ() *Term {
	return &Term{tag: Z}
}

// NewI returns the identity term, f(x) = x.
func NewI() *Term {
	return &Term{tag: I, arity: 1}
}

// NewS returns the successor term, f(x) = x+1.
func NewS() *Term {
	return &Term{tag: S, arity: 1}
}

// NewLeft builds Left(g): f(x0,x1,...,xn) = g(x1,...,xn).
func NewLeft(g *Term) *Term {
	return &Term{tag: LeftTag, children: []*Term{g}, arity: g.arity + 1, depth: g.depth}
}

// NewRight builds Right(g): f(x0,...,xn-1,xn) = g(x0,...,xn-1).
func NewRight(g *Term) *Term {
	return &Term{tag: RightTag, children: []*Term{g}, arity: g.arity + 1, depth: g.depth}
}

// NewComp builds Comp(g, peers...): f(x) = g(h1(x),...,hk(x)). All peers must
// share arity k = g.Arity(), and there must be at least one peer.
func NewComp(g *Term, peers []*Term) (*Term, error) {
	k := g.arity
	if k < 1 {
		return nil, arityErr("Comp.g", 1, k)
	}
	if len(peers) != k {
		return nil, arityErr("Comp peers", k, len(peers))
	}

	compArity := peers[0].arity
	maxDepth := g.depth
	children := make([]*Term, 0, len(peers)+1)
	children = append(children, g)
	for idx, h := range peers {
		if h.arity != compArity {
			return nil, arityErr(fmt.Sprintf("Comp peer %d", idx), compArity, h.arity)
		}
		if h.depth > maxDepth {
			maxDepth = h.depth
		}
		children = append(children, h)
	}

	return &Term{tag: CompTag, children: children, arity: compArity, depth: maxDepth}, nil
}

// NewRec builds Rec(base, step): f(0,x) = base(x); f(n+1,x) = step(n, f(n,x),
// x). step.Arity() must equal base.Arity()+2.
func NewRec(base, step *Term) (*Term, error) {
	wantStepArity := base.arity + 2
	if step.arity != wantStepArity {
		return nil, arityErr("Rec.step", wantStepArity, step.arity)
	}

	maxDepth := base.depth
	if step.depth > maxDepth {
		maxDepth = step.depth
	}

	return &Term{
		tag:      RecTag,
		children: []*Term{base, step},
		arity:    base.arity + 1,
		depth:    maxDepth + 1,
	}, nil
}

// Equal reports whether t and other have the same shape: equal tags and
// pairwise-equal children. It is total, recursive, and cheap on the small
// trees the shape generator and hasher produce.
func (t *Term) Equal(other *Term) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.tag != other.tag {
		return false
	}
	if len(t.children) != len(other.children) {
		return false
	}
	for i := range t.children {
		if !t.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}
