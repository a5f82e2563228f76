package lang

import (
	"strings"

	"github.com/dekarrin/rosed"
)

// displayWrapWidth is the terminal width Display wraps long Comp/Rec
// argument branches to, the same fixed width engine.go uses for console
// message wrapping.
const displayWrapWidth = 100

// Print renders t as the canonical preorder token string: the inverse of
// Parse. For every well-formed term t, Parse(Print(t)) reproduces t exactly
// (spec §4.B/§8).
func Print(t *Term) string {
	var sb strings.Builder
	writeTokens(&sb, t)
	return sb.String()
}

func writeTokens(sb *strings.Builder, t *Term) {
	sb.WriteByte(t.tag.Token())
	for _, child := range t.children {
		writeTokens(sb, child)
	}
}

// Display renders t as an indented tree using the box-drawing connectors
// "├──", "└──" and "│", the Go analogue of the original implementation's
// format_tree output. Because Parse treats any non-token byte (including box
// drawing characters and newlines) as whitespace, Parse(Display(t)) also
// reproduces t.
func Display(t *Term) string {
	var sb strings.Builder
	sb.WriteByte(t.tag.Token())
	writeDisplayChildren(&sb, t.children, "")

	// Comp and Rec nodes can carry long peer-argument lists; wrap the whole
	// tree to a terminal-friendly width rather than letting any one line run
	// unbounded, the same way engine.go wraps console output.
	return rosed.Edit(sb.String()).Wrap(displayWrapWidth).String()
}

func writeDisplayChildren(sb *strings.Builder, children []*Term, prefix string) {
	for i, child := range children {
		last := i == len(children)-1

		sb.WriteByte('\n')
		sb.WriteString(prefix)
		if last {
			sb.WriteString("└── ")
		} else {
			sb.WriteString("├── ")
		}
		sb.WriteByte(child.tag.Token())

		childPrefix := prefix
		if last {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
		writeDisplayChildren(sb, child.children, childPrefix)
	}
}
