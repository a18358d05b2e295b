package resolve

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/buildgraph/cmd/resolve/formatters"
)

type resolveOptions struct {
	outputFormat string
	label        string
	generateURL  bool
	noBuildDeps  bool
	request      RequestFlags
}

// NewCommand returns a new resolve command instance.
func NewCommand() *cobra.Command {
	opts := &resolveOptions{
		outputFormat: formatters.OutputFormatText.String(),
	}

	cmd := &cobra.Command{
		Use:   "resolve <graph-file>",
		Short: "Select the artifacts of a dependency graph",
		Long: `Traverse a dependency graph description, collect the artifact sets of every
dependency and select one variant of each.

The graph file may be YAML (.yaml, .yml) or HCL (.hcl).

Examples:
  buildgraph resolve build.yaml
  buildgraph resolve build.yaml -a usage=java-api
  buildgraph resolve build.yaml --projects-only -f dot
  buildgraph resolve build.hcl --require com.google.guava:guava@>=32 -f json
  buildgraph resolve build.yaml -f dot -u`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(
		&opts.outputFormat,
		"format",
		"f",
		opts.outputFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().StringVarP(&opts.label, "label", "l", "", "Graph title for dot and mermaid output")
	cmd.Flags().BoolVarP(&opts.generateURL, "url", "u", false, "Generate GraphvizOnline URL for dot output")
	cmd.Flags().BoolVar(&opts.noBuildDeps, "no-build-deps", false, "Do not track the build work of project artifacts")
	opts.request.AddTo(cmd)

	return cmd
}

func runResolve(cmd *cobra.Command, opts *resolveOptions, path string) error {
	formatter, err := NewFormatter(opts.outputFormat)
	if err != nil {
		return err
	}
	if opts.generateURL && !strings.EqualFold(opts.outputFormat, formatters.OutputFormatDOT.String()) {
		return fmt.Errorf("--url requires --format=dot")
	}

	req, err := opts.request.Request()
	if err != nil {
		return err
	}

	session, err := OpenSession(cmd, path, opts.noBuildDeps)
	if err != nil {
		return err
	}

	selection, err := session.Select(cmd.Context(), req)
	if err != nil {
		return err
	}

	output, err := formatter.Format(session.Report(selection), formatters.RenderOptions{Label: opts.label})
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	if opts.generateURL {
		fmt.Fprintln(cmd.OutOrStdout(), generateGraphvizOnlineURL(output))
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), output)
	if !strings.HasSuffix(output, "\n") {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

// generateGraphvizOnlineURL creates a URL for GraphvizOnline with the DOT graph embedded
func generateGraphvizOnlineURL(dotGraph string) string {
	// URL encode the DOT graph for use in fragment (spaces as %20, not +)
	encoded := url.PathEscape(dotGraph)
	return fmt.Sprintf("https://dreampuf.github.io/GraphvizOnline/?engine=dot#%s", encoded)
}
