// Package diagnostics serves a live inspection surface for a scene over
// HTTP: a health check, the scene tree as JSON, Prometheus metrics, and
// a websocket stream of property changes.
//
// The server watches the scene through ordinary user listeners, so it
// never competes with structural owners or the render pipeline for the
// reserved slots. Everything it learns arrives on the goroutine that
// owns the scene; handler goroutines coordinate with that goroutine
// through Frame.
package diagnostics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-tabletop/tabletop/pkg/component"
	"github.com/go-tabletop/tabletop/pkg/errors"
	"github.com/go-tabletop/tabletop/pkg/observable"
	"github.com/go-tabletop/tabletop/pkg/scene"
)

// maxTreeDepth limits recursion to keep a malformed component cycle from
// overflowing the stack during serialization.
const maxTreeDepth = 500

type watchSub struct {
	source observable.Listenable
	sub    observable.Subscription
}

// Server inspects one scene. Create it with NewServer on the goroutine
// that owns the scene; Start and Shutdown belong to that goroutine too.
type Server struct {
	scene   *scene.Scene
	logger  *slog.Logger
	metrics *Metrics
	hub     *watchHub

	upgrader websocket.Upgrader

	// mu serializes scene reads from handler goroutines against the
	// owning goroutine, which wraps mutation batches in Frame.
	mu sync.Mutex

	httpServer *http.Server
	listener   net.Listener

	watched []watchSub
}

// NewServer returns a server watching sc. Property subscriptions are
// live immediately; call Start to expose them over HTTP. A nil logger
// falls back to slog.Default.
func NewServer(sc *scene.Scene, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		scene:   sc,
		logger:  logger,
		metrics: newMetrics(),
		hub:     newWatchHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.resubscribe()
	return s
}

// Metrics returns the server's collectors so the loop driving the scene
// can record flush timings.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Frame runs fn while holding the scene lock, keeping handler goroutines
// off the scene mid-mutation. The loop that owns the scene wraps each
// frame in Frame; handlers then only observe settled state.
func (s *Server) Frame(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// resubscribe rebuilds the property subscriptions from current scene
// membership. It is safe to call from inside a membership notification:
// dispatch runs against a snapshot, so dropping and re-adding listeners
// mid-pass only affects later passes.
func (s *Server) resubscribe() {
	for _, w := range s.watched {
		w.source.RemoveListener(w.sub)
	}
	s.watched = s.watched[:0]

	components := s.scene.Components
	sub := components.AddChangeListener(func() {
		s.metrics.propertyEvents.WithLabelValues("scene", "components").Inc()
		s.hub.broadcast(PropertyEvent{
			Kind:     "scene",
			Property: "components",
			Value:    components.Len(),
		})
		s.resubscribe()
	})
	s.watched = append(s.watched, watchSub{source: components, sub: sub})

	for _, ref := range s.scene.Properties() {
		s.subscribeRef(0, "scene", ref)
	}

	count := 0
	s.scene.VisitComponents(func(c component.Component) {
		count++
		id, kind := c.ID(), c.Kind()
		for _, ref := range c.Properties() {
			s.subscribeRef(id, kind, ref)
		}
	})

	s.metrics.sceneComponents.Set(float64(count))
	s.metrics.watchedProperties.Set(float64(len(s.watched)))
}

// subscribeRef listens on one property. A ref named "children" marks a
// container's membership list; when it fires, the subscription set is
// rebuilt so newcomers deeper in the tree get watched too.
func (s *Server) subscribeRef(id uint64, kind string, ref component.PropertyRef) {
	name, value := ref.Name, ref.Value
	membership := name == "children"
	sub := ref.Source.AddChangeListener(func() {
		s.metrics.propertyEvents.WithLabelValues(kind, name).Inc()
		s.hub.broadcast(PropertyEvent{
			Component: id,
			Kind:      kind,
			Property:  name,
			Value:     safeValue(value()),
		})
		if membership {
			s.resubscribe()
		}
	})
	s.watched = append(s.watched, watchSub{source: ref.Source, sub: sub})
}

// Handler returns the HTTP surface, exposed separately so it can be
// mounted under a larger router or driven by httptest.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", s.handleHealth)
	r.Get("/scene-tree", s.handleSceneTree)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	r.Get("/watch", s.handleWatch)
	return r
}

// Start binds addr and serves in the background. It returns the bound
// address, which differs from addr when an ephemeral port was requested.
// Calling Start on a running server returns the existing address.
func (s *Server) Start(addr string) (string, error) {
	if s.listener != nil {
		return s.listener.Addr().String(), nil
	}

	// Bind first to fail fast on port conflicts.
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", &errors.FrameworkError{Op: "diagnostics.Start", Kind: errors.KindServe, Err: err}
	}

	s.listener = listener
	s.httpServer = &http.Server{Handler: s.Handler()}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			errors.Report(&errors.FrameworkError{Op: "diagnostics.Serve", Kind: errors.KindServe, Err: err})
		}
	}()

	bound := listener.Addr().String()
	s.logger.Info("diagnostics listening", "addr", bound)
	return bound, nil
}

// Shutdown disconnects watch clients, drops the property subscriptions,
// and stops the HTTP server if Start ran. Call it from the goroutine
// that owns the scene.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.closeAll()
	for _, w := range s.watched {
		w.source.RemoveListener(w.sub)
	}
	s.watched = nil

	if s.httpServer == nil {
		return nil
	}
	server := s.httpServer
	s.httpServer = nil
	s.listener = nil
	if err := server.Shutdown(ctx); err != nil {
		return &errors.FrameworkError{Op: "diagnostics.Shutdown", Kind: errors.KindServe, Err: err}
	}
	return nil
}

// SceneTree is the root of the /scene-tree response.
type SceneTree struct {
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Opacity    float64         `json:"opacity"`
	Count      int             `json:"count"`
	Components []SceneTreeNode `json:"components"`
}

// SceneTreeNode is one component in the serialized scene tree, property
// values read live.
type SceneTreeNode struct {
	ID         uint64          `json:"id"`
	Kind       string          `json:"kind"`
	Properties map[string]any  `json:"properties,omitempty"`
	Children   []SceneTreeNode `json:"children,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleSceneTree(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tree := s.serializeScene()
	s.mu.Unlock()

	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) serializeScene() SceneTree {
	tree := SceneTree{
		Width:   s.scene.Width.Value(),
		Height:  s.scene.Height.Value(),
		Opacity: s.scene.Opacity.Value(),
		Count:   s.scene.ComponentCount(),
	}
	s.scene.Components.ForEach(func(_ int, c component.Component) {
		tree.Components = append(tree.Components, serializeComponent(c, 0))
	})
	return tree
}

func serializeComponent(c component.Component, depth int) SceneTreeNode {
	refs := c.Properties()
	node := SceneTreeNode{
		ID:         c.ID(),
		Kind:       c.Kind(),
		Properties: make(map[string]any, len(refs)),
	}
	for _, ref := range refs {
		node.Properties[ref.Name] = safeValue(ref.Value())
	}
	if depth < maxTreeDepth {
		if parent, ok := c.(component.Parent); ok {
			for _, child := range parent.ChildComponents() {
				node.Children = append(node.Children, serializeComponent(child, depth+1))
			}
		}
	}
	return node
}

// safeValue converts a property value to a JSON-safe form. Geometry
// properties are unvalidated, so floats can carry Inf or NaN; those
// encode as strings. Types the encoder cannot handle fall back to their
// string representation.
func safeValue(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsInf(x, 1) {
			return "Infinity"
		}
		if math.IsInf(x, -1) {
			return "-Infinity"
		}
		if math.IsNaN(x) {
			return "NaN"
		}
		return x
	case nil, string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return v
	default:
		return fmt.Sprintf("%v", x)
	}
}
