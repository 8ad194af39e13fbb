package snapp

import (
	"sort"
	"strconv"
	"strings"

	"github.com/joeycumines/go-eventloop"
	"golang.org/x/net/html"

	snapperrors "github.com/snapp-dev/snapp/internal/errors"
	"github.com/snapp-dev/snapp/pkg/dom"
)

// delegator routes native events from the document root to handlers keyed
// by node id. A root listener exists for a type iff at least one handler of
// that type is registered.
type delegator struct {
	rt    *Runtime
	types map[string]*registration
}

type registration struct {
	listener eventloop.ListenerID
	handlers map[uint64]func(*dom.Event)
}

func newDelegator(rt *Runtime) *delegator {
	return &delegator{rt: rt, types: make(map[string]*registration)}
}

func (d *delegator) register(eventType string, nodeID uint64, fn func(*dom.Event)) {
	reg, ok := d.types[eventType]
	if !ok {
		reg = &registration{handlers: make(map[uint64]func(*dom.Event))}
		reg.listener = d.rt.doc.AddEventListener(eventType, func(ev *dom.Event) {
			d.dispatch(eventType, ev)
		})
		d.types[eventType] = reg
		d.rt.metrics.listenerAttached(eventType)
	}
	reg.handlers[nodeID] = fn
}

func (d *delegator) deregister(eventType string, nodeID uint64) {
	reg, ok := d.types[eventType]
	if !ok {
		return
	}
	delete(reg.handlers, nodeID)
	if len(reg.handlers) == 0 {
		d.rt.doc.RemoveEventListener(eventType, reg.listener)
		delete(d.types, eventType)
		d.rt.metrics.listenerDetached(eventType)
	}
}

// dispatch invokes the handler of the nearest handler boundary for
// eventType at or above the event target.
func (d *delegator) dispatch(eventType string, ev *dom.Event) {
	if !dom.IsElement(ev.Target) {
		d.rt.logger.Debug("event target is not an element",
			"code", "S031", "event", eventType)
		return
	}
	boundary := dom.ClosestWithAttribute(ev.Target, EventAttrPrefix+eventType)
	if boundary == nil {
		return
	}
	raw, _ := dom.GetAttribute(boundary, DataAttr)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return
	}
	reg, ok := d.types[eventType]
	if !ok {
		return
	}
	if fn := reg.handlers[id]; fn != nil {
		fn(ev)
	}
}

// release deregisters every handler n carries.
func (d *delegator) release(n *html.Node) {
	if !dom.IsElement(n) {
		return
	}
	raw, ok := dom.GetAttribute(n, DataAttr)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return
	}
	for _, name := range dom.AttributeNames(n) {
		if eventType, ok := strings.CutPrefix(name, EventAttrPrefix); ok {
			d.deregister(eventType, id)
		}
	}
}

func (d *delegator) close() {
	for _, eventType := range d.registeredTypes() {
		reg := d.types[eventType]
		d.rt.doc.RemoveEventListener(eventType, reg.listener)
		delete(d.types, eventType)
		d.rt.metrics.listenerDetached(eventType)
	}
}

func (d *delegator) registeredTypes() []string {
	out := make([]string, 0, len(d.types))
	for t := range d.types {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// size returns the number of registered handlers.
func (d *delegator) size() int {
	total := 0
	for _, reg := range d.types {
		total += len(reg.handlers)
	}
	return total
}

// addHandler wires an event prop onto el.
func (rt *Runtime) addHandler(el *html.Node, nodeID uint64, p Prop) {
	if p.Handler == nil {
		return
	}
	eventType, ok := eventType(el, p.Name)
	if !ok {
		rt.logger.Warn("event does not exist for element",
			"error", snapperrors.New("S030").WithDetailf("%q on <%s>", p.Name, el.Data),
			"event", p.Name, "tag", el.Data)
		return
	}
	dom.SetAttribute(el, DataAttr, formatID(nodeID))
	dom.SetAttribute(el, EventAttrPrefix+eventType, "true")
	rt.events.register(eventType, nodeID, p.Handler)
	rt.metrics.setLive(rt.table.size(), rt.events.size())
}

// ListenerCount returns the number of root listeners attached for
// eventType: 1 while any handler of that type is registered, else 0.
func (rt *Runtime) ListenerCount(eventType string) int {
	return rt.doc.ListenerCount(eventType)
}

// Dispatch fires a native event of eventType at target. It returns false
// if a handler called PreventDefault.
func (rt *Runtime) Dispatch(target *html.Node, eventType string) bool {
	return rt.doc.Dispatch(target, eventType)
}

// DispatchEvent fires ev through the document.
func (rt *Runtime) DispatchEvent(ev *dom.Event) bool {
	return rt.doc.DispatchEvent(ev)
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
