package annot

import "fmt"

// NestingError reports a match stream whose Add/Sub markers do not nest.
type NestingError struct {
	Index int
	Match Match
	Want  Comp
	Open  bool
}

func (e *NestingError) Error() string {
	if e.Open {
		return fmt.Sprintf("match %d: %s never closed", e.Index, e.Match.Annot)
	}
	return fmt.Sprintf("match %d: %s at %d closes %s", e.Index, e.Match.Annot, e.Match.Start, e.Want)
}

// CheckNesting verifies that every Add has exactly one matching Sub later in
// the stream and that no two spans partially overlap.
func CheckNesting(matches []Match) error {
	type open struct {
		idx  int
		comp Comp
	}
	var stack []open

	for i, m := range matches {
		switch m.Annot.Kind {
		case KindAdd:
			stack = append(stack, open{idx: i, comp: m.Annot.Comp})
		case KindSub:
			if len(stack) == 0 {
				return &NestingError{Index: i, Match: m}
			}
			top := stack[len(stack)-1]
			if top.comp != m.Annot.Comp {
				return &NestingError{Index: i, Match: m, Want: top.comp}
			}
			stack = stack[:len(stack)-1]
		case KindAtom:
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return &NestingError{Index: top.idx, Match: matches[top.idx], Open: true}
	}
	return nil
}
