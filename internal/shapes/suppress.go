package shapes

import "github.com/dekarrin/primrec/internal/lang"

// recSuppressionTable is the single authoritative list of Rec(base, step)
// shapes that are structurally redundant with a smaller program (spec §4.G).
// It is consulted once, from genRec, every time a candidate Rec node is
// built. Changing an entry changes every create/hash index downstream of it,
// so additions belong here as extensions, never silent corrections.
var recSuppressionTable = []struct {
	name  string
	match func(base, step *lang.Term) bool
}{
	{
		name: "zero-base, step is Left(Left(Z))",
		match: func(base, step *lang.Term) bool {
			return base.Tag() == lang.Z && matchesChain(step, lang.LeftTag, lang.LeftTag, lang.Z)
		},
	},
	{
		name: "zero-base, step is Left(Rec(Z, _))",
		match: func(base, step *lang.Term) bool {
			if base.Tag() != lang.Z || step.Tag() != lang.LeftTag {
				return false
			}
			inner := step.Children()[0]
			return inner.Tag() == lang.RecTag && inner.Children()[0].Tag() == lang.Z
		},
	},
	{
		name: "identity-base, step is Left(Left(I))",
		match: func(base, step *lang.Term) bool {
			return base.Tag() == lang.I && matchesChain(step, lang.LeftTag, lang.LeftTag, lang.I)
		},
	},
	{
		name: "step is Right-headed with a Right body",
		match: func(_, step *lang.Term) bool {
			return matchesChain(step, lang.RightTag, lang.RightTag)
		},
	},
	{
		name: "step is Left(I) (no-op recursion)",
		match: func(_, step *lang.Term) bool {
			return matchesChain(step, lang.LeftTag, lang.I)
		},
	},
}

// matchesChain reports whether t's outermost tags, walking down the sole
// child at each level, equal tags in order.
func matchesChain(t *lang.Term, tags ...lang.Tag) bool {
	cur := t
	for _, want := range tags {
		if cur == nil || cur.Tag() != want {
			return false
		}
		children := cur.Children()
		if len(children) == 0 {
			cur = nil
		} else {
			cur = children[0]
		}
	}
	return true
}

func suppressRec(base, step *lang.Term) bool {
	for _, rule := range recSuppressionTable {
		if rule.match(base, step) {
			return true
		}
	}
	return false
}
