package preview

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/joeycumines/go-eventloop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/snapp-dev/snapp/internal/config"
	"github.com/snapp-dev/snapp/internal/demo"
	snapperrors "github.com/snapp-dev/snapp/internal/errors"
	"github.com/snapp-dev/snapp/pkg/dom"
	"github.com/snapp-dev/snapp/pkg/snapp"
)

// ErrClosed is returned by Do after Close.
var ErrClosed = errors.New("preview: server closed")

// Options configures a preview Server.
type Options struct {
	// Config is the project configuration. Default: config.New().
	Config *config.Config

	// Document is the HTML source rendered into. Default: demo.Shell.
	Document string

	// Logger receives server and runtime diagnostics. Default: slog.Default().
	Logger *slog.Logger
}

// Server hosts one runtime on an event loop and serves it over HTTP.
type Server struct {
	config   *config.Config
	logger   *slog.Logger
	loop     *eventloop.Loop
	js       *eventloop.JS
	stop     context.CancelFunc
	loopDone chan struct{}

	registry *prometheus.Registry
	rt       *snapp.Runtime
	app      *demo.App
	hub      *hub
	router   chi.Router

	mu         sync.Mutex
	httpServer *http.Server
	closed     bool
}

// NewServer starts the event loop, mounts the counter and builds the
// router. Call Close to release the loop.
func NewServer(opts Options) (*Server, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	source := opts.Document
	if source == "" {
		source = demo.Shell
	}

	doc, err := dom.ParseString(source)
	if err != nil {
		return nil, err
	}

	loop, err := eventloop.New()
	if err != nil {
		return nil, err
	}
	js, err := eventloop.NewJS(loop)
	if err != nil {
		_ = loop.Close()
		return nil, err
	}

	s := &Server{
		config:   cfg,
		logger:   logger,
		loop:     loop,
		js:       js,
		loopDone: make(chan struct{}),
		registry: prometheus.NewRegistry(),
		hub:      newHub(),
	}

	s.rt = snapp.New(doc,
		snapp.WithLogger(logger),
		snapp.WithScheduler(js),
		snapp.WithSweepDelay(cfg.SweepDelay()),
		snapp.WithSweepThreshold(cfg.Sweep.Threshold),
		snapp.WithMetrics(s.registry),
	)

	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	go func() {
		defer close(s.loopDone)
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Debug("event loop stopped", "error", err)
		}
	}()

	var mountErr error
	if err := s.Do(context.Background(), func() {
		s.app, mountErr = demo.Mount(s.rt, cfg.Target, snapp.ParseMode(cfg.Mode))
	}); err != nil {
		s.Close()
		return nil, err
	}
	if mountErr != nil {
		s.Close()
		return nil, mountErr
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if s.config.MetricsEnabled() {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Runtime returns the hosted runtime. It must only be used inside Do.
func (s *Server) Runtime() *snapp.Runtime {
	return s.rt
}

// App returns the mounted counter. Its cells must only be used inside Do.
func (s *Server) App() *demo.App {
	return s.app
}

// ClientCount returns the number of connected WebSocket clients.
func (s *Server) ClientCount() int {
	return s.hub.count()
}

// Do runs fn on the event loop and waits for it to return.
func (s *Server) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if err := s.loop.Submit(func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-s.loopDone:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// snapshot returns the document and body markup. Must run on the loop.
func (s *Server) snapshot() (page, body string) {
	doc := s.rt.Document()
	body, err := dom.InnerHTML(doc.Body())
	if err != nil {
		s.logger.Error("failed to serialize body", "error", err)
	}
	return doc.String(), body
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var page string
	if err := s.Do(r.Context(), func() { page, _ = s.snapshot() }); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(injectScript(page)))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.hub.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{id: uuid.NewString()[:8], conn: conn}
	s.hub.add(c)
	s.logger.Debug("client connected", "client", c.id, "clients", s.hub.count())
	defer func() {
		s.hub.remove(c)
		s.logger.Debug("client disconnected", "client", c.id)
	}()

	var body string
	if err := s.Do(r.Context(), func() { _, body = s.snapshot() }); err != nil {
		return
	}
	s.hub.unicast(c, Message{Type: MessageSnapshot, HTML: body})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket closed", "client", c.id, "error", err)
			}
			return
		}

		var msg EventMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type == "" || msg.Selector == "" {
			s.hub.unicast(c, Message{Type: MessageError, Error: "malformed event message"})
			continue
		}

		body, err := s.dispatch(r.Context(), msg)
		if err != nil {
			s.hub.unicast(c, Message{Type: MessageError, Error: err.Error()})
			continue
		}
		s.hub.broadcast(Message{Type: MessageSnapshot, HTML: body})
	}
}

// dispatch fires msg on the loop and returns the resulting body markup.
func (s *Server) dispatch(ctx context.Context, msg EventMessage) (string, error) {
	var (
		body string
		derr error
	)
	err := s.Do(ctx, func() {
		target, err := s.rt.QuerySelector(msg.Selector)
		if err != nil {
			derr = err
			return
		}
		ev := dom.NewEvent(strings.ToLower(msg.Type), target)
		ev.Detail = msg.Detail
		s.rt.DispatchEvent(ev)
		_, body = s.snapshot()
	})
	if err != nil {
		return "", err
	}
	return body, derr
}

// ListenAndServe serves on the configured preview address until ctx is
// done. The server is closed when it returns.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.PreviewAddress())
	if err != nil {
		s.Close()
		if errors.Is(err, syscall.EADDRINUSE) {
			return snapperrors.New("S141").
				WithDetailf("%s is already in use", s.config.PreviewAddress()).
				Wrap(err)
		}
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	s.logger.Info("preview server running", "url", "http://"+ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Close()
		return nil
	case err := <-errCh:
		s.Close()
		return err
	}
}

// Close stops the HTTP server, disconnects clients and shuts down the loop.
func (s *Server) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	srv := s.httpServer
	s.mu.Unlock()

	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
	s.hub.close()

	_ = s.Do(context.Background(), s.rt.Close)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.loop.Shutdown(ctx); err != nil && !errors.Is(err, eventloop.ErrLoopTerminated) {
		s.logger.Debug("event loop shutdown", "error", err)
	}
	s.stop()
	<-s.loopDone
}

// injectScript appends ClientScript before the closing body tag.
func injectScript(page string) string {
	if i := strings.LastIndex(page, "</body>"); i >= 0 {
		return page[:i] + ClientScript + page[i:]
	}
	return page + ClientScript
}
