package dom

import (
	"strings"

	"github.com/joeycumines/go-eventloop"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ReadyEvent is the document-level event dispatched once content is rendered.
const ReadyEvent = "DOM"

// Event is a document event. It travels to root listeners wrapped in an
// eventloop.CustomEvent whose detail is the *Event itself.
type Event struct {
	// Type is the event name, e.g. "click".
	Type string

	// Target is the node the event was dispatched on. For document-level
	// events it is the document node.
	Target *html.Node

	// Detail carries caller data, e.g. the value of an input event.
	Detail any

	native *eventloop.Event
}

// NewEvent creates a bubbling, cancelable event for target.
func NewEvent(eventType string, target *html.Node) *Event {
	return &Event{Type: eventType, Target: target}
}

// PreventDefault marks the event as canceled.
func (e *Event) PreventDefault() {
	if e.native != nil {
		e.native.PreventDefault()
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.native != nil && e.native.DefaultPrevented
}

// StopImmediatePropagation stops delivery to the remaining root listeners.
func (e *Event) StopImmediatePropagation() {
	if e.native != nil {
		e.native.StopImmediatePropagation()
	}
}

// AddEventListener registers a root listener for eventType.
func (d *Document) AddEventListener(eventType string, fn func(*Event)) eventloop.ListenerID {
	return d.target.AddEventListener(eventType, wrapListener(fn))
}

// AddEventListenerOnce registers a root listener removed after its first call.
func (d *Document) AddEventListenerOnce(eventType string, fn func(*Event)) eventloop.ListenerID {
	return d.target.AddEventListenerOnce(eventType, wrapListener(fn))
}

// RemoveEventListener removes a root listener by the id AddEventListener returned.
func (d *Document) RemoveEventListener(eventType string, id eventloop.ListenerID) bool {
	return d.target.RemoveEventListenerByID(eventType, id)
}

// ListenerCount returns the number of root listeners for eventType.
func (d *Document) ListenerCount(eventType string) int {
	return d.target.ListenerCount(eventType)
}

// Dispatch fires an event of the given type at target. Events on nodes that
// are not connected never reach the document and are dropped. It returns
// false if a listener called PreventDefault.
func (d *Document) Dispatch(target *html.Node, eventType string) bool {
	return d.DispatchEvent(NewEvent(eventType, target))
}

// DispatchEvent fires ev at the document root.
func (d *Document) DispatchEvent(ev *Event) bool {
	if ev.Target == nil {
		ev.Target = d.root
	}
	if !d.IsConnected(ev.Target) {
		return true
	}
	ce := eventloop.NewCustomEventWithOptions(ev.Type, ev, true, true)
	ev.native = ce.EventPtr()
	return d.target.DispatchEvent(ev.native)
}

func wrapListener(fn func(*Event)) eventloop.EventListenerFunc {
	return func(native *eventloop.Event) {
		ev, ok := native.Detail().(*Event)
		if !ok {
			ev = &Event{Type: native.Type}
		}
		ev.native = native
		fn(ev)
	}
}

// globalHandlers are the on<event> handlers every element supports.
var globalHandlers = toSet(
	// Mouse
	"click", "dblclick", "mousedown", "mouseup", "mousemove", "mouseenter",
	"mouseleave", "mouseover", "mouseout", "contextmenu", "wheel",
	// Keyboard
	"keydown", "keyup", "keypress",
	// Form
	"input", "change", "submit", "focus", "blur", "focusin", "focusout",
	"select", "invalid", "reset",
	// Drag
	"dragstart", "drag", "dragend", "dragenter", "dragover", "dragleave", "drop",
	// Touch
	"touchstart", "touchmove", "touchend", "touchcancel",
	// Pointer
	"pointerdown", "pointerup", "pointermove", "pointerenter", "pointerleave",
	"pointercancel",
	// Scroll
	"scroll", "scrollend",
	// Media
	"play", "pause", "ended", "timeupdate", "loadstart", "loadeddata",
	"loadedmetadata", "canplay", "canplaythrough", "progress", "seeking",
	"seeked", "volumechange", "ratechange", "durationchange", "waiting",
	"playing", "stalled", "suspend", "emptied",
	// Resource
	"error", "load", "abort",
	// Animation and transition
	"animationstart", "animationend", "animationiteration", "animationcancel",
	"transitionstart", "transitionend", "transitionrun", "transitioncancel",
	// Clipboard
	"copy", "cut", "paste",
	"toggle",
)

// windowHandlers are forwarded window events only <body> and <frameset> expose.
var windowHandlers = toSet(
	"afterprint", "beforeprint", "beforeunload", "hashchange", "message",
	"offline", "online", "pagehide", "pageshow", "popstate", "resize",
	"storage", "unload",
)

// HasEventHandler reports whether n exposes an on<eventType> handler, as
// `"on" + eventType in element` does in a browser. eventType is the bare
// name, e.g. "click".
func HasEventHandler(n *html.Node, eventType string) bool {
	if !IsElement(n) {
		return false
	}
	eventType = strings.ToLower(eventType)
	if globalHandlers[eventType] {
		return true
	}
	if n.DataAtom == atom.Body || n.DataAtom == atom.Frameset {
		return windowHandlers[eventType]
	}
	return false
}

func toSet(values ...string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
