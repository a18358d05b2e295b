package formatters

import "github.com/LegacyCodeHQ/buildgraph/resolution"

// RenderOptions contains optional parameters for rendering resolution reports.
type RenderOptions struct {
	// Label is an optional title or label for the graph
	Label string
}

// Formatter is the interface that all report formatters must implement.
type Formatter interface {
	// Format converts a resolution report to a formatted string representation.
	Format(r resolution.Report, opts RenderOptions) (string, error)
}
