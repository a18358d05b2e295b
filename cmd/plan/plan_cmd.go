package plan

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/buildgraph/cmd/resolve"
)

type planOptions struct {
	outputFormat string
	noBuildDeps  bool
	request      resolve.RequestFlags
}

type planOutput struct {
	View  string   `json:"view"`
	Tasks []string `json:"tasks"`
}

// NewCommand returns a new plan command instance.
func NewCommand() *cobra.Command {
	opts := &planOptions{outputFormat: "text"}

	cmd := &cobra.Command{
		Use:   "plan <graph-file>",
		Short: "Print the build tasks the selected artifacts need",
		Long: `Select the artifacts of a dependency graph and print the build tasks that must
run before they can be used, dependencies first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat, "Output format (text, json)")
	cmd.Flags().BoolVar(&opts.noBuildDeps, "no-build-deps", false, "Do not track the build work of project artifacts")
	opts.request.AddTo(cmd)

	return cmd
}

func runPlan(cmd *cobra.Command, opts *planOptions, path string) error {
	if opts.outputFormat != "text" && opts.outputFormat != "json" {
		return fmt.Errorf("unknown format: %s (valid options: text, json)", opts.outputFormat)
	}

	req, err := opts.request.Request()
	if err != nil {
		return err
	}

	session, err := resolve.OpenSession(cmd, path, opts.noBuildDeps)
	if err != nil {
		return err
	}

	selection, err := session.Select(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.outputFormat == "json" {
		tasks := selection.Plan
		if tasks == nil {
			tasks = []string{}
		}
		data, err := json.MarshalIndent(planOutput{View: req.Key(), Tasks: tasks}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to generate JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(selection.Plan) == 0 {
		fmt.Fprintln(out, "Nothing to build.")
		return nil
	}
	for i, task := range selection.Plan {
		fmt.Fprintf(out, "%d. %s\n", i+1, task)
	}
	return nil
}
