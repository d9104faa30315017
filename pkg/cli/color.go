package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/reactor/internal/manifest"
	"github.com/funvibe/reactor/internal/resolve"
)

const (
	ansiReset  = "\x1b[0m"
	ansiDim    = "\x1b[2m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiRed    = "\x1b[31m"
)

// paintFor returns a colorizer when out is a terminal, plain text
// otherwise.
func paintFor(out io.Writer) manifest.Paint {
	f, ok := out.(*os.File)
	if !ok {
		return manifest.PlainPaint
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return manifest.PlainPaint
	}
	return paint
}

func paint(kind resolve.OutcomeKind, s string) string {
	switch kind {
	case resolve.Implemented:
		return ansiDim + s + ansiReset
	case resolve.Forwarded:
		return ansiGreen + s + ansiReset
	case resolve.Constructed:
		return ansiCyan + s + ansiReset
	case resolve.Deferred:
		return ansiYellow + s + ansiReset
	case resolve.Unresolved:
		return ansiRed + s + ansiReset
	}
	return s
}
