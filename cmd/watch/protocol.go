package watch

import "time"

const (
	routeIndex     = "/"
	routeEvents    = "/events"
	routeMetrics   = "/metrics"
	routeSelection = "/selection"
)

const sseEventGraph = "graph"

// graphSnapshot is the payload of SSE "graph" events: one resolution of the watched
// graph description rendered as DOT.
type graphSnapshot struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	View      string    `json:"view"`
	DOT       string    `json:"dot"`
	Cycles    int       `json:"cycles"`
	Tasks     int       `json:"tasks"`
}

// errorSnapshot is the payload of SSE "error" events, sent when a change leaves the
// description unloadable. Viewers keep showing the last good graph.
type errorSnapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

const sseEventError = "error"
