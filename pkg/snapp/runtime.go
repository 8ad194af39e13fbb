package snapp

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"

	"github.com/snapp-dev/snapp/pkg/dom"
)

const (
	// DefaultSweepDelay is the idle time after the last detected removal
	// before stale subscriptions are swept.
	DefaultSweepDelay = 15 * time.Second

	// DefaultSweepThreshold is the number of detected removals that forces
	// an immediate sweep.
	DefaultSweepThreshold = 30

	tracerName = "github.com/snapp-dev/snapp"
)

// Marker attributes written on built elements.
const (
	// DataAttr holds the node id of an element that owns event handlers.
	DataAttr = "snapp-data"

	// DynamicAttr holds the node id of an element that owns subscriptions.
	DynamicAttr = "snapp-dynamic"

	// EventAttrPrefix followed by an event type marks a handler boundary.
	EventAttrPrefix = "snapp-e-"
)

// Runtime owns the reactive state for one document: cells, the scope stack,
// the subscription table, delegated event handlers and the sweeper.
type Runtime struct {
	doc     *dom.Document
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *metrics

	lastCell CellID
	lastNode uint64

	scopes   []*scope
	table    *table
	events   *delegator
	sweeper  *sweeper
	observer *dom.MutationObserver
}

// Option configures a Runtime.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	scheduler      Scheduler
	sweepDelay     time.Duration
	sweepThreshold int
	registry       prometheus.Registerer
	tracer         trace.Tracer
}

// WithLogger sets the logger used for misuse diagnostics.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithScheduler sets the timer source for deferred sweeps. *eventloop.JS
// satisfies Scheduler. Without one, only threshold and explicit sweeps run.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithSweepDelay sets the debounce delay of the deferred sweep.
func WithSweepDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.sweepDelay = d
		}
	}
}

// WithSweepThreshold sets the number of removals that forces a sweep.
func WithSweepThreshold(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.sweepThreshold = n
		}
	}
}

// WithMetrics registers runtime metrics with registry. Each registry can
// host one Runtime.
func WithMetrics(registry prometheus.Registerer) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithTracer sets the tracer for render and sweep spans.
// Default: the global provider's tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// New creates a runtime bound to doc and starts observing it.
func New(doc *dom.Document, opts ...Option) *Runtime {
	o := options{
		logger:         slog.Default(),
		sweepDelay:     DefaultSweepDelay,
		sweepThreshold: DefaultSweepThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}

	rt := &Runtime{
		doc:    doc,
		logger: o.logger,
		tracer: o.tracer,
		table:  newTable(),
	}
	if o.registry != nil {
		rt.metrics = newMetrics(o.registry)
	}
	rt.events = newDelegator(rt)
	rt.sweeper = &sweeper{
		rt:        rt,
		scheduler: o.scheduler,
		delay:     o.sweepDelay,
		threshold: o.sweepThreshold,
	}
	rt.observer = doc.Observe(rt.observe)
	return rt
}

// Document returns the document the runtime renders into.
func (rt *Runtime) Document() *dom.Document {
	return rt.doc
}

// Close stops observing the document, cancels a pending sweep and detaches
// every root listener. Subscriptions already built keep working.
func (rt *Runtime) Close() {
	rt.observer.Disconnect()
	rt.sweeper.cancel()
	rt.events.close()
}

func (rt *Runtime) nextCellID() CellID {
	rt.lastCell++
	return rt.lastCell
}

func (rt *Runtime) nextNodeID() uint64 {
	rt.lastNode++
	return rt.lastNode
}

// Dispose releases the subscriptions and handlers of n and its descendants.
// The nodes stay where they are; later cell updates no longer reach them.
func (rt *Runtime) Dispose(n *html.Node) {
	rt.disposeExcept(n, nil)
}

// disposeExcept disposes n's subtree, skipping the subtree rooted at keep.
func (rt *Runtime) disposeExcept(n, keep *html.Node) {
	if n == nil {
		return
	}
	dom.Walk(n, func(c *html.Node) bool {
		if c == keep {
			return false
		}
		rt.events.release(c)
		rt.table.evict(c)
		return true
	})
	rt.metrics.setLive(rt.table.size(), rt.events.size())
}
