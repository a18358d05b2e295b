package resolve

import (
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/buildgraph/internal/config"
	"github.com/LegacyCodeHQ/buildgraph/resolution"
)

// OpenSession loads the graph description at path with the configuration carried by
// the command's context. noBuildDeps turns off build dependency tracking.
func OpenSession(cmd *cobra.Command, path string, noBuildDeps bool) (*resolution.Session, error) {
	ctx := cmd.Context()
	cfg := *config.FromContext(ctx)
	if noBuildDeps {
		cfg.BuildProjectDependencies = false
	}
	return resolution.NewService(&cfg, nil).OpenFile(ctx, path)
}
