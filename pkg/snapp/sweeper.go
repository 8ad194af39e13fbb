package snapp

import (
	"context"
	"time"

	"github.com/joeycumines/go-eventloop"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/html"

	"github.com/snapp-dev/snapp/pkg/dom"
)

// Scheduler schedules the deferred sweep. *eventloop.JS implements it; its
// callbacks run on the loop goroutine that drives the runtime.
type Scheduler interface {
	SetTimeout(fn eventloop.SetTimeoutFunc, delayMs int) (uint64, error)
	ClearTimeout(id uint64) error
}

// sweeper debounces sweeps triggered by detected removals.
type sweeper struct {
	rt        *Runtime
	scheduler Scheduler
	delay     time.Duration
	threshold int

	pending int
	timer   uint64
	armed   bool
	gen     uint64
}

// request counts one removal and reschedules the sweep, or runs it at once
// when the threshold is reached.
func (s *sweeper) request() {
	s.pending++
	s.cancel()
	if s.pending >= s.threshold {
		s.rt.Sweep()
		return
	}
	if s.scheduler == nil {
		return
	}

	s.gen++
	gen := s.gen
	id, err := s.scheduler.SetTimeout(func() {
		if !s.armed || s.gen != gen {
			return
		}
		s.armed = false
		s.rt.Sweep()
	}, int(s.delay/time.Millisecond))
	if err != nil {
		s.rt.logger.Warn("failed to schedule sweep", "error", err)
		return
	}
	s.timer, s.armed = id, true
}

func (s *sweeper) cancel() {
	if !s.armed {
		return
	}
	s.armed = false
	if err := s.scheduler.ClearTimeout(s.timer); err != nil {
		s.rt.logger.Debug("failed to clear sweep timer", "error", err)
	}
}

// PendingRemovals returns the number of detected removals since the last
// sweep.
func (rt *Runtime) PendingRemovals() int {
	return rt.sweeper.pending
}

// Sweep evicts the subscriptions of every node that was attached to the
// document and no longer is. Nodes built but never attached are kept. It
// returns the number of nodes evicted.
func (rt *Runtime) Sweep() int {
	_, span := rt.tracer.Start(context.Background(), "snapp.Sweep")
	defer span.End()

	rt.sweeper.cancel()
	rt.sweeper.pending = 0

	var stale []*html.Node
	for n := range rt.table.attached {
		if !rt.doc.IsConnected(n) {
			stale = append(stale, n)
		}
	}
	for _, n := range stale {
		rt.table.evict(n)
	}

	span.SetAttributes(attribute.Int("snapp.evicted", len(stale)))
	rt.metrics.swept(len(stale))
	rt.metrics.setLive(rt.table.size(), rt.events.size())
	if len(stale) > 0 {
		rt.logger.Debug("swept detached nodes", "evicted", len(stale))
	}
	return len(stale)
}

// observe is the mutation observer callback. Added subtrees mark their
// subscribed nodes attached. Removed subtrees that are still detached once
// the mutation completes lose their handlers immediately and, if they own
// subscriptions, request a sweep.
func (rt *Runtime) observe(records []dom.MutationRecord) {
	for _, rec := range records {
		for _, n := range rec.Added {
			dom.Walk(n, func(c *html.Node) bool {
				rt.table.markAttached(c)
				return true
			})
		}
	}

	for _, rec := range records {
		for _, n := range rec.Removed {
			if rt.doc.IsConnected(n) {
				continue
			}
			dynamic := false
			dom.Walk(n, func(c *html.Node) bool {
				rt.events.release(c)
				if rt.table.has(c) {
					dynamic = true
				}
				return true
			})
			if dynamic {
				rt.sweeper.request()
			}
		}
	}
	rt.metrics.setLive(rt.table.size(), rt.events.size())
}
