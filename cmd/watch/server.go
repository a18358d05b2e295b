package watch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/LegacyCodeHQ/buildgraph/artifacts"
	"github.com/LegacyCodeHQ/buildgraph/internal/metrics"
	"github.com/LegacyCodeHQ/buildgraph/resolution"
)

// event is one SSE message.
type event struct {
	name string
	data string
}

// broker manages SSE client connections and broadcasts events.
type broker struct {
	mu      sync.Mutex
	clients map[chan event]struct{}
	latest  *event
}

func newBroker() *broker {
	return &broker{
		clients: make(map[chan event]struct{}),
	}
}

func (b *broker) subscribe() chan event {
	ch := make(chan event, 1)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	if b.latest != nil {
		ch <- *b.latest
	}
	b.mu.Unlock()
	return ch
}

func (b *broker) unsubscribe(ch chan event) {
	b.mu.Lock()
	delete(b.clients, ch)
	close(ch)
	b.mu.Unlock()
}

// publish sends e to every client. Graph events are replayed to new subscribers.
func (b *broker) publish(e event) {
	b.mu.Lock()
	if e.name == sseEventGraph {
		b.latest = &e
	}
	for ch := range b.clients {
		select {
		case ch <- e:
		default:
		}
	}
	b.mu.Unlock()
}

// currentSession holds the latest successfully opened session.
type currentSession struct {
	mu      sync.RWMutex
	session *resolution.Session
}

func (c *currentSession) get() *resolution.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *currentSession) set(s *resolution.Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

func newServer(b *broker, current *currentSession, m *metrics.Metrics, port int) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc(routeIndex, handleIndex)
	mux.HandleFunc(routeEvents, handleSSE(b))
	mux.HandleFunc(routeSelection, handleSelection(current))
	if m != nil {
		mux.Handle(routeMetrics, m.Handler())
	}

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routeIndex {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(indexHTML)); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func handleSSE(b *broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ch := b.subscribe()
		defer b.unsubscribe(ch)

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-ch:
				if !ok {
					return
				}
				fmt.Fprintf(w, "event: %s\n", e.name)
				for _, line := range strings.Split(e.data, "\n") {
					fmt.Fprintf(w, "data: %s\n", line)
				}
				fmt.Fprintf(w, "\n")
				flusher.Flush()
			}
		}
	}
}

// handleSelection serves the report of one selection against the latest session. The
// request is read from the query: variant, attribute (key=value, repeatable),
// projects-only, include, require (repeatable) and order=collection.
func handleSelection(current *currentSession) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := current.get()
		if session == nil {
			http.Error(w, "graph description not loaded yet", http.StatusServiceUnavailable)
			return
		}

		req, err := selectionRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		selection, err := session.Select(r.Context(), req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Selection-Cache", cacheStatus(selection.Cached))
		if err := json.NewEncoder(w).Encode(session.Report(selection)); err != nil {
			http.Error(w, "failed to encode report", http.StatusInternalServerError)
		}
	}
}

func selectionRequest(r *http.Request) (resolution.Request, error) {
	q := r.URL.Query()
	attributes, err := resolution.ParseAttributes(q["attribute"])
	if err != nil {
		return resolution.Request{}, err
	}

	req := resolution.Request{
		Variant:      q.Get("variant"),
		Attributes:   attributes,
		ProjectsOnly: q.Get("projects-only") == "true",
		Include:      q.Get("include"),
		Requires:     q["require"],
	}
	switch q.Get("order") {
	case "", "consumer-first":
	case "collection":
		req.Order = artifacts.CollectionOrder
	default:
		return resolution.Request{}, fmt.Errorf("unknown order: %s", q.Get("order"))
	}
	return req, nil
}

func cacheStatus(cached bool) string {
	if cached {
		return "hit"
	}
	return "miss"
}
