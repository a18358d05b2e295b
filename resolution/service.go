// Package resolution runs artifact resolution over graph descriptions: it traverses the
// graph once, collects its artifact sets and serves selections of them.
package resolution

import (
	"context"
	"fmt"
	"time"

	"github.com/LegacyCodeHQ/buildgraph/artifacts"
	"github.com/LegacyCodeHQ/buildgraph/depgraph"
	"github.com/LegacyCodeHQ/buildgraph/internal/config"
	"github.com/LegacyCodeHQ/buildgraph/internal/logging"
	"github.com/LegacyCodeHQ/buildgraph/internal/metrics"
	"github.com/LegacyCodeHQ/buildgraph/manifest"
	"github.com/LegacyCodeHQ/buildgraph/schedule"
)

type Service struct {
	buildProjectDependencies bool
	cacheSize                int
	metrics                  *metrics.Metrics
}

// NewService creates a resolution service. A nil metrics disables instrumentation.
func NewService(cfg *config.Config, m *metrics.Metrics) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Service{
		buildProjectDependencies: cfg.BuildProjectDependencies,
		cacheSize:                cfg.SelectionCacheSize,
		metrics:                  m,
	}
}

// Session holds the collected artifacts of one graph. Selections are cached per request.
type Session struct {
	Graph   *manifest.Graph
	Order   depgraph.Order
	Visited *artifacts.VisitedArtifactsResults
	// Cycles lists the strongly connected node ids of the graph.
	Cycles [][]int64

	cache   *artifacts.SelectionCache
	metrics *metrics.Metrics
}

// Selection is the outcome of one request against a session.
type Selection struct {
	Request Request
	Results *artifacts.SelectedArtifactResults
	// Plan lists the build tasks the selected artifacts need, in execution order.
	Plan   []string
	Cached bool
}

// OpenFile loads the graph description at path and opens a session on it.
func (s *Service) OpenFile(ctx context.Context, path string) (*Session, error) {
	g, err := manifest.LoadGraph(path)
	if err != nil {
		s.resolutionFailed()
		return nil, fmt.Errorf("failed to load graph description: %w", err)
	}
	return s.Open(ctx, g)
}

// Open traverses g and collects its artifact sets.
func (s *Service) Open(ctx context.Context, g *manifest.Graph) (*Session, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	builder := artifacts.NewBuilder(s.buildProjectDependencies)
	artifacts.Walk(g.Root, g.Lookup(), builder)
	visited := builder.Complete()

	cycles, err := depgraph.Cycles(g.Root)
	if err != nil {
		s.resolutionFailed()
		return nil, fmt.Errorf("failed to find cycles: %w", err)
	}

	cache, err := artifacts.NewSelectionCache(visited, s.cacheSize)
	if err != nil {
		s.resolutionFailed()
		return nil, err
	}

	session := &Session{
		Graph:   g,
		Order:   depgraph.Sort(g.Root),
		Visited: visited,
		Cycles:  cycles,
		cache:   cache,
		metrics: s.metrics,
	}

	elapsed := time.Since(start)
	for _, edge := range visited.Cycles() {
		logger.Warn("Dependency cycle tolerated",
			"from", g.Name(edge.From),
			"to", g.Name(edge.To))
	}
	for _, name := range g.Unreachable {
		logger.Debug("Node is not reachable from root", "node", name)
	}
	logger.Info("Collected artifacts",
		"root", g.Name(g.Root.ID),
		"nodes", len(visited.NodeIDs()),
		"artifactSets", len(visited.ArtifactSets()),
		"cycles", len(visited.Cycles()),
		"elapsed", elapsed)

	if s.metrics != nil {
		s.metrics.ObserveResolution(elapsed, len(visited.ArtifactSets()), len(visited.Cycles()))
	}
	return session, nil
}

func (s *Service) resolutionFailed() {
	if s.metrics != nil {
		s.metrics.ResolutionFailed()
	}
}

// Select applies req to the collected artifacts and plans the build work they need.
func (s *Session) Select(ctx context.Context, req Request) (*Selection, error) {
	logger := logging.FromContext(ctx)

	filter, err := req.Filter()
	if err != nil {
		s.selectionFailed()
		return nil, err
	}

	results, cached, err := s.cache.SelectInOrder(req.Key(), req.Order, filter, req.Selector())
	if err != nil {
		s.selectionFailed()
		return nil, fmt.Errorf("failed to select artifacts for %s: %w", req.Key(), err)
	}

	plan, err := schedule.Plan(results.Artifacts(), s.Graph.TaskDependencies())
	if err != nil {
		s.selectionFailed()
		return nil, err
	}

	logger.Debug("Selected artifacts",
		"view", req.Key(),
		"cached", cached,
		"artifacts", len(results.Artifacts().Artifacts()),
		"tasks", len(plan))

	if s.metrics != nil {
		s.metrics.ObserveSelection(cached)
		s.metrics.ObservePlan(len(plan))
	}
	return &Selection{Request: req, Results: results, Plan: plan, Cached: cached}, nil
}

func (s *Session) selectionFailed() {
	if s.metrics != nil {
		s.metrics.SelectionFailed()
	}
}
