// Package cli implements the reactor command: plan and check class
// graph manifests from the command line.
package cli

import (
	"fmt"
	"io"

	"github.com/funvibe/reactor/internal/manifest"
)

const usageText = `Usage: reactor <command> [arguments]

Commands:
  plan <manifest.yaml>    resolve the manifest and print the synthesis plan
  check <manifest.yaml>   like plan, but exit non-zero on configuration errors
  help                    show this message
`

// Run executes the command line and returns the process exit code.
func Run(args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(errOut, usageText)
		return 2
	}
	switch args[0] {
	case "plan", "check":
		if len(args) != 2 {
			fmt.Fprintf(errOut, "reactor %s: expected exactly one manifest file\n", args[0])
			return 2
		}
		return runManifest(args[0], args[1], out, errOut)
	case "help", "-h", "--help":
		fmt.Fprint(out, usageText)
		return 0
	default:
		fmt.Fprintf(errOut, "reactor: unknown command %q\n", args[0])
		fmt.Fprint(errOut, usageText)
		return 2
	}
}

func runManifest(cmd, path string, out, errOut io.Writer) int {
	doc, err := manifest.Load(path)
	if err != nil {
		fmt.Fprintf(errOut, "reactor: %v\n", err)
		return 1
	}
	reg, err := manifest.Build(doc)
	if err != nil {
		fmt.Fprintf(errOut, "reactor: %v\n", err)
		return 1
	}

	reports, applyErr := manifest.Apply(reg, doc)
	manifest.Render(out, reports, paintFor(out))

	if applyErr != nil {
		fmt.Fprintf(errOut, "reactor: %v\n", applyErr)
		if cmd == "check" {
			return 1
		}
	}
	return 0
}
