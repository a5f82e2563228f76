package lang

// Parse reads text into a single well-formed Term (spec §4.B). Any byte not
// in {Z,I,S,<,>,o,R} is treated as whitespace and ignored, so Parse round-trips
// both Print and Display output.
//
// Parse returns a *ParseError wrapping ErrTruncated if the stream ends while a
// child is expected, a *ParseError wrapping ErrTrailing if tokens remain after
// the root is built, or a *ArityError if a Comp/Rec node's children violate
// the arity invariants in spec §3.
func Parse(text string) (*Term, error) {
	tokens := tokenize(text)

	pos := 0
	root, err := parseNext(tokens, &pos)
	if err != nil {
		return nil, err
	}

	if pos < len(tokens) {
		return nil, trailingErr(string(tokens[pos:]))
	}

	return root, nil
}

// tokenize strips every byte that is not one of the seven combinator tokens.
func tokenize(text string) []byte {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if _, ok := tagForToken(text[i]); ok {
			out = append(out, text[i])
		}
	}
	return out
}

// parseNext consumes exactly one subtree's worth of tokens starting at *pos,
// advancing *pos past it.
func parseNext(tokens []byte, pos *int) (*Term, error) {
	if *pos >= len(tokens) {
		return nil, truncatedErr()
	}

	tag, _ := tagForToken(tokens[*pos])
	*pos++

	switch tag {
	case Z:
		return NewZ(), nil
	case I:
		return NewI(), nil
	case S:
		return NewS(), nil
	case LeftTag:
		g, err := parseNext(tokens, pos)
		if err != nil {
			return nil, err
		}
		return NewLeft(g), nil
	case RightTag:
		g, err := parseNext(tokens, pos)
		if err != nil {
			return nil, err
		}
		return NewRight(g), nil
	case CompTag:
		g, err := parseNext(tokens, pos)
		if err != nil {
			return nil, err
		}

		peers := make([]*Term, 0, g.arity)
		for i := 0; i < g.arity; i++ {
			h, err := parseNext(tokens, pos)
			if err != nil {
				return nil, err
			}
			peers = append(peers, h)
		}

		return NewComp(g, peers)
	case RecTag:
		base, err := parseNext(tokens, pos)
		if err != nil {
			return nil, err
		}
		step, err := parseNext(tokens, pos)
		if err != nil {
			return nil, err
		}
		return NewRec(base, step)
	default:
		// unreachable: tagForToken only ever returns the above six tags.
		return nil, truncatedErr()
	}
}
