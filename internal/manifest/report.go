package manifest

import (
	"fmt"
	"io"

	"github.com/funvibe/reactor/internal/resolve"
	"github.com/funvibe/reactor/internal/synthesis"
)

// Paint colors a fragment of report output. The identity function
// renders plain text.
type Paint func(kind resolve.OutcomeKind, s string) string

// PlainPaint renders without color.
func PlainPaint(_ resolve.OutcomeKind, s string) string { return s }

// Render writes a human-readable account of the applied steps.
func Render(w io.Writer, reports []Report, paint Paint) {
	if paint == nil {
		paint = PlainPaint
	}
	for _, rep := range reports {
		switch rep.Kind {
		case "forward":
			fmt.Fprintf(w, "forward %s via %s\n", rep.Class, rep.Base)
		case "compose":
			fmt.Fprintf(w, "compose %s (caching: %s)\n", rep.Class, rep.Caching)
		}
		width := 0
		for _, p := range rep.Plan {
			if len(p.Attr) > width {
				width = len(p.Attr)
			}
		}
		for _, p := range rep.Plan {
			fmt.Fprintf(w, "  %-*s  %s\n", width, p.Attr, paint(p.Outcome.Kind, describe(p)))
		}
		if rep.Err != nil {
			fmt.Fprintf(w, "  error: %v\n", rep.Err)
		}
	}
}

func describe(p synthesis.Planned) string {
	out := p.Outcome
	switch out.Kind {
	case resolve.Implemented:
		return "implemented"
	case resolve.Forwarded:
		return fmt.Sprintf("forwarded from %s.%s", out.Base, out.Target)
	case resolve.Constructed:
		return fmt.Sprintf("constructed %s", out.Class.Name())
	case resolve.Deferred:
		return fmt.Sprintf("deferred probe of %s.%s", out.Base, out.Target)
	case resolve.Unresolved:
		return "unresolved"
	}
	return out.Kind.String()
}
