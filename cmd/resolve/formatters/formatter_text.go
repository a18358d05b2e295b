package formatters

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/buildgraph/resolution"
)

// TextFormatter formats resolution reports for the terminal.
type TextFormatter struct{}

// Format lists every node with its selected artifacts, the tolerated cycles and the
// build plan. The opts parameter is accepted for interface compatibility but not used.
func (f *TextFormatter) Format(r resolution.Report, opts RenderOptions) (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("root: %s\n", r.Root))
	sb.WriteString(fmt.Sprintf("view: %s\n", r.View))

	sb.WriteString("\nnodes:\n")
	for _, n := range r.Nodes {
		line := fmt.Sprintf("  %s  %s (%s)", n.Name, n.Component, n.Configuration)
		if !n.Included {
			line += "  excluded"
		}
		sb.WriteString(line + "\n")

		builds := make(map[string]bool, len(n.Tasks))
		for _, task := range n.Tasks {
			builds[task] = true
		}
		for _, a := range n.Artifacts {
			if builds[a.Task] {
				sb.WriteString(fmt.Sprintf("    %s  builds %s\n", a.Name, a.Task))
			} else {
				sb.WriteString(fmt.Sprintf("    %s\n", a.Name))
			}
		}
	}

	if len(r.Cycles) > 0 {
		sb.WriteString("\ncycles:\n")
		for _, c := range r.Cycles {
			sb.WriteString(fmt.Sprintf("  %s -> %s\n", c.From, c.To))
		}
	}

	sb.WriteString("\nplan:\n")
	if len(r.Plan) == 0 {
		sb.WriteString("  nothing to build\n")
	}
	for i, task := range r.Plan {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, task))
	}
	return sb.String(), nil
}
