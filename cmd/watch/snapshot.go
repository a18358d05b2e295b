package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/LegacyCodeHQ/buildgraph/cmd/resolve/formatters"
	"github.com/LegacyCodeHQ/buildgraph/cmd/resolve/formatters/dot"
	"github.com/LegacyCodeHQ/buildgraph/internal/logging"
	"github.com/LegacyCodeHQ/buildgraph/resolution"
)

// rebuilder re-resolves the watched graph description and publishes the result.
type rebuilder struct {
	service *resolution.Service
	path    string
	request resolution.Request
	label   string

	broker  *broker
	current *currentSession

	lastID atomic.Int64
	now    func() time.Time
}

// rebuild opens a new session, selects the watched view and publishes it as a graph
// event. On failure the previous session stays current and an error event is sent.
func (r *rebuilder) rebuild(ctx context.Context) error {
	snapshot, session, err := r.snapshot(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("Graph rebuild failed", "path", r.path, "error", err)
		r.publish(sseEventError, errorSnapshot{Timestamp: r.now(), Message: err.Error()})
		return err
	}

	r.current.set(session)
	r.publish(sseEventGraph, snapshot)
	return nil
}

func (r *rebuilder) snapshot(ctx context.Context) (graphSnapshot, *resolution.Session, error) {
	session, err := r.service.OpenFile(ctx, r.path)
	if err != nil {
		return graphSnapshot{}, nil, err
	}

	selection, err := session.Select(ctx, r.request)
	if err != nil {
		return graphSnapshot{}, nil, err
	}

	formatter := &dot.Formatter{}
	output, err := formatter.Format(session.Report(selection), formatters.RenderOptions{Label: r.label})
	if err != nil {
		return graphSnapshot{}, nil, fmt.Errorf("failed to render graph: %w", err)
	}

	return graphSnapshot{
		ID:        r.lastID.Add(1),
		Timestamp: r.now(),
		View:      r.request.Key(),
		DOT:       output,
		Cycles:    len(session.Visited.Cycles()),
		Tasks:     len(selection.Plan),
	}, session, nil
}

func (r *rebuilder) publish(name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	r.broker.publish(event{name: name, data: string(data)})
}
