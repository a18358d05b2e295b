package order

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/buildgraph/cmd/resolve"
	"github.com/LegacyCodeHQ/buildgraph/depgraph"
	"github.com/LegacyCodeHQ/buildgraph/resolution"
)

// NewCommand returns a new order command instance.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "order <graph-file>",
		Short: "Print the node visiting order of a dependency graph",
		Long: `Print every node reachable from the root in visiting order: the root first,
each dependency after all of its consumers. Edges that close a cycle are skipped
during ordering and listed separately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resolve.OpenSession(cmd, args[0], false)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatOrder(session))
			return nil
		},
	}
}

func formatOrder(session *resolution.Session) string {
	g := session.Graph
	nodes := make(map[int64]*depgraph.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n.ID] = n
	}

	var sb strings.Builder
	for i, id := range session.Order.NodeIDs {
		line := fmt.Sprintf("%d. %s", i+1, g.Name(id))
		if c := nodes[id].Component; c != nil {
			line += "  " + c.DisplayName()
		}
		sb.WriteString(line + "\n")
	}

	if len(session.Order.Cycles) > 0 {
		sb.WriteString("\nskipped edges:\n")
		for _, edge := range session.Order.Cycles {
			sb.WriteString(fmt.Sprintf("  %s -> %s\n", g.Name(edge.From), g.Name(edge.To)))
		}
	}

	if len(session.Cycles) > 0 {
		sb.WriteString("\ncycles:\n")
		for _, cycle := range session.Cycles {
			names := make([]string, 0, len(cycle))
			for _, id := range cycle {
				names = append(names, g.Name(id))
			}
			sb.WriteString("  " + strings.Join(names, ", ") + "\n")
		}
	}

	if len(g.Unreachable) > 0 {
		sb.WriteString("\nunreachable:\n")
		for _, name := range g.Unreachable {
			sb.WriteString("  " + name + "\n")
		}
	}
	return sb.String()
}
