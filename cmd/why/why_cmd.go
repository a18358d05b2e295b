package why

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/buildgraph/cmd/resolve"
	"github.com/LegacyCodeHQ/buildgraph/depgraph"
	"github.com/LegacyCodeHQ/buildgraph/resolution"
)

const (
	formatText    = "text"
	formatDOT     = "dot"
	formatMermaid = "mermaid"
)

type whyOptions struct {
	outputFormat string
}

// explanation lists how the root reaches one node.
type explanation struct {
	root   string
	target string
	// paths holds every simple path from the root to the target, by node name.
	paths [][]string
	// nodes and edges form the subgraph of every node on any path.
	nodes        []string
	edges        [][2]string
	artifactSets []string
}

// NewCommand returns a new why command instance.
func NewCommand() *cobra.Command {
	opts := &whyOptions{
		outputFormat: formatText,
	}

	cmd := &cobra.Command{
		Use:   "why <graph-file> <node>",
		Short: "Show how the root depends on a node.",
		Long:  "List every dependency path from the root of a graph description to a node, and the artifact sets the node contributes.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhy(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(
		&opts.outputFormat,
		"format",
		"f",
		opts.outputFormat,
		fmt.Sprintf("Output format (%s)", supportedFormats()))

	return cmd
}

func runWhy(cmd *cobra.Command, opts *whyOptions, path, nodeName string) error {
	if !isSupportedFormat(opts.outputFormat) {
		return fmt.Errorf("unknown format: %s (valid options: %s)", opts.outputFormat, supportedFormats())
	}

	session, err := resolve.OpenSession(cmd, path, false)
	if err != nil {
		return err
	}

	target, ok := session.Graph.Node(nodeName)
	if !ok {
		return fmt.Errorf("node not found in graph description: %s", nodeName)
	}

	e, err := explain(session, target)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatOutput(opts.outputFormat, e))
	return nil
}

func explain(session *resolution.Session, target *depgraph.Node) (explanation, error) {
	g := session.Graph
	e := explanation{root: g.Name(g.Root.ID), target: g.Name(target.ID)}

	onPath := depgraph.PathNodes(g.Root, target.ID)
	if len(onPath) == 0 {
		return e, nil
	}

	paths, err := depgraph.AllPaths(g.Root, target.ID)
	if err != nil {
		return e, err
	}
	for _, p := range paths {
		names := make([]string, 0, len(p))
		for _, id := range p {
			names = append(names, g.Name(id))
		}
		e.paths = append(e.paths, names)
	}

	nodes := make(map[int64]*depgraph.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n.ID] = n
	}
	for _, id := range onPath {
		e.nodes = append(e.nodes, g.Name(id))
		for _, edge := range nodes[id].Outgoing {
			for _, to := range edge.Targets {
				if to == nil || !slices.Contains(onPath, to.ID) {
					continue
				}
				pair := [2]string{g.Name(id), g.Name(to.ID)}
				if !slices.Contains(e.edges, pair) {
					e.edges = append(e.edges, pair)
				}
			}
		}
	}

	setIDs, _ := session.Visited.NodeArtifactSetIDs(target.ID)
	for _, id := range setIDs {
		e.artifactSets = append(e.artifactSets, g.ArtifactSetName(id))
	}
	return e, nil
}

func formatOutput(format string, e explanation) string {
	switch format {
	case formatDOT:
		return formatDOTOutput(e)
	case formatMermaid:
		return formatMermaidOutput(e)
	default:
		return formatTextOutput(e)
	}
}

func formatTextOutput(e explanation) string {
	if len(e.paths) == 0 {
		return fmt.Sprintf("%s does not depend on %s.", e.root, e.target)
	}

	noun := "paths"
	if len(e.paths) == 1 {
		noun = "path"
	}
	lines := []string{fmt.Sprintf("%s is reached through %d %s:", e.target, len(e.paths), noun)}
	for _, p := range e.paths {
		lines = append(lines, "  "+strings.Join(p, " -> "))
	}
	if len(e.artifactSets) > 0 {
		lines = append(lines, "artifact sets: "+strings.Join(e.artifactSets, ", "))
	}
	return strings.Join(lines, "\n")
}

func formatDOTOutput(e explanation) string {
	var b strings.Builder
	b.WriteString("digraph why {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box];\n")
	for _, name := range e.nodes {
		if name == e.target {
			b.WriteString(fmt.Sprintf("  %q [style=filled, fillcolor=lightyellow];\n", name))
			continue
		}
		b.WriteString(fmt.Sprintf("  %q;\n", name))
	}
	for _, edge := range e.edges {
		b.WriteString(fmt.Sprintf("  %q -> %q;\n", edge[0], edge[1]))
	}
	b.WriteString("}")
	return b.String()
}

func formatMermaidOutput(e explanation) string {
	var b strings.Builder
	b.WriteString("flowchart LR\n")

	ids := make(map[string]string, len(e.nodes))
	for i, name := range e.nodes {
		ids[name] = fmt.Sprintf("n%d", i)
		b.WriteString(fmt.Sprintf("  %s[%q]\n", ids[name], name))
	}
	for _, edge := range e.edges {
		b.WriteString(fmt.Sprintf("  %s --> %s\n", ids[edge[0]], ids[edge[1]]))
	}
	if id, ok := ids[e.target]; ok {
		b.WriteString(fmt.Sprintf("  style %s fill:lightyellow\n", id))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func isSupportedFormat(format string) bool {
	return format == formatText || format == formatDOT || format == formatMermaid
}

func supportedFormats() string {
	return strings.Join([]string{formatText, formatDOT, formatMermaid}, ", ")
}
