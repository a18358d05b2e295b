package watch

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/buildgraph/cmd/resolve"
	"github.com/LegacyCodeHQ/buildgraph/internal/config"
	"github.com/LegacyCodeHQ/buildgraph/internal/metrics"
	"github.com/LegacyCodeHQ/buildgraph/manifest"
	"github.com/LegacyCodeHQ/buildgraph/resolution"
)

type watchOptions struct {
	port        int
	label       string
	noBuildDeps bool
	request     resolve.RequestFlags
}

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <graph-file>",
		Short: "Watch a graph description and serve a live dependency graph",
		Long: `Watch a graph description for changes, re-resolve its artifacts and serve a
live-updating visualization at localhost. Resolution metrics are served at /metrics
and selections of the latest graph at /selection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.port, "port", "P", 0, "HTTP server port (default from BUILDGRAPH_WATCH_PORT or 4900)")
	cmd.Flags().StringVarP(&opts.label, "label", "l", "", "Graph title")
	cmd.Flags().BoolVar(&opts.noBuildDeps, "no-build-deps", false, "Do not track the build work of project artifacts")
	opts.request.AddTo(cmd)

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions, path string) error {
	if !manifest.IsSupported(path) {
		return fmt.Errorf("%w: %s", manifest.ErrUnsupportedFormat, path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve graph description path: %w", err)
	}

	req, err := opts.request.Request()
	if err != nil {
		return err
	}

	cfg := *config.FromContext(cmd.Context())
	if opts.noBuildDeps {
		cfg.BuildProjectDependencies = false
	}
	port := opts.port
	if port == 0 {
		port = cfg.WatchPort
	}

	m := metrics.New()
	b := newBroker()
	current := &currentSession{}
	r := &rebuilder{
		service: resolution.NewService(&cfg, m),
		path:    absPath,
		request: req,
		label:   opts.label,
		broker:  b,
		current: current,
		now:     time.Now,
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := r.rebuild(ctx); err != nil {
		return fmt.Errorf("initial resolution failed: %w", err)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", port, err)
	}

	srv := newServer(b, current, m, port)
	go srv.Serve(ln)

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", absPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving at http://localhost:%d\n", port)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl+C to stop\n")

	err = watchAndRebuild(ctx, absPath, func() {
		_ = r.rebuild(ctx)
	})

	srv.Close()
	return err
}
