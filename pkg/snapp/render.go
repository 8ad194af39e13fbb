package snapp

import (
	"context"
	"fmt"
	"strings"

	"github.com/joeycumines/go-eventloop"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"

	snapperrors "github.com/snapp-dev/snapp/internal/errors"
	"github.com/snapp-dev/snapp/pkg/dom"
)

// Mode selects where Render places content relative to the target.
type Mode int

const (
	// ReplaceChildren replaces every child of the target.
	ReplaceChildren Mode = iota
	// Before inserts content as the target's previous sibling.
	Before
	// Prepend inserts content as the target's first child.
	Prepend
	// Append inserts content as the target's last child.
	Append
	// After inserts content as the target's next sibling.
	After
	// Replace replaces the target itself.
	Replace
)

var modeNames = map[Mode]string{
	ReplaceChildren: "replaceChildren",
	Before:          "before",
	Prepend:         "prepend",
	Append:          "append",
	After:           "after",
	Replace:         "replace",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a mode name to a Mode. Unknown names, including "",
// select ReplaceChildren.
func ParseMode(name string) Mode {
	for m, n := range modeNames {
		if strings.EqualFold(n, name) {
			return m
		}
	}
	return ReplaceChildren
}

// Render places content relative to target according to mode, marks the
// document ready and fires the "DOM" event. content is a node (element or
// fragment), a string or a number.
//
// Rendering into a target that is not connected, or unsupported content, is
// logged and reported by returning false; callback, if non-nil, receives the
// same result. Nodes displaced by ReplaceChildren or Replace are disposed.
func (rt *Runtime) Render(target *html.Node, content any, mode Mode, callback func(ok bool)) bool {
	err := rt.RenderErr(target, content, mode)
	ok := err == nil
	if callback != nil {
		callback(ok)
	}
	return ok
}

// RenderErr is Render returning ErrNotConnected or ErrUnsupportedContent
// instead of a flag.
func (rt *Runtime) RenderErr(target *html.Node, content any, mode Mode) error {
	_, span := rt.tracer.Start(context.Background(), "snapp.Render")
	defer span.End()
	span.SetAttributes(attribute.String("snapp.mode", mode.String()))

	err := rt.render(target, content, mode)
	rt.metrics.rendered(err == nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (rt *Runtime) render(target *html.Node, content any, mode Mode) error {
	if target == nil || !rt.doc.IsConnected(target) {
		rt.logger.Error("rendering to a non existing or removed element",
			"error", snapperrors.New("S001").WithDetail(describe(target)))
		return ErrNotConnected
	}

	node := rt.contentNode(content)
	if node == nil {
		rt.logger.Error("failed to render",
			"error", snapperrors.New("S002").WithDetailf("content of type %T", content))
		return ErrUnsupportedContent
	}

	rt.doc.SetReady(false)

	switch mode {
	case Before:
		rt.doc.Before(target, node)
	case Prepend:
		rt.doc.Prepend(target, node)
	case Append:
		rt.doc.Append(target, node)
	case After:
		rt.doc.After(target, node)
	case Replace:
		rt.disposeExcept(target, node)
		rt.doc.ReplaceWith(target, node)
	default:
		for _, c := range dom.Children(target) {
			rt.disposeExcept(c, node)
		}
		rt.doc.ReplaceChildren(target, node)
	}

	rt.doc.SetReady(true)
	rt.doc.DispatchEvent(dom.NewEvent(dom.ReadyEvent, nil))
	return nil
}

func (rt *Runtime) contentNode(content any) *html.Node {
	switch c := content.(type) {
	case *html.Node:
		return c
	case string:
		return rt.doc.CreateTextNode(c)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return rt.doc.CreateTextNode(stringify(c))
	}
	return nil
}

// On registers cb for the "DOM" readiness event (case-insensitive). If the
// document is already ready, cb runs immediately. Other event names are
// ignored.
func (rt *Runtime) On(event string, cb func()) {
	if cb == nil || !strings.EqualFold(event, dom.ReadyEvent) {
		return
	}
	if rt.doc.Ready() {
		cb()
		return
	}
	// A callback that renders dispatches ReadyEvent again from inside the
	// current dispatch, so the listener is removed before cb runs.
	var (
		id    eventloop.ListenerID
		fired bool
	)
	id = rt.doc.AddEventListener(dom.ReadyEvent, func(*dom.Event) {
		if fired {
			return
		}
		fired = true
		rt.doc.RemoveEventListener(dom.ReadyEvent, id)
		cb()
	})
}

// Remove disposes and detaches each node.
func (rt *Runtime) Remove(nodes ...*html.Node) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		rt.Dispose(n)
		rt.doc.Remove(n)
	}
}

// describe renders a short description of n for diagnostics.
func describe(n *html.Node) string {
	if n == nil {
		return "<nil>"
	}
	if !dom.IsElement(n) {
		return fmt.Sprintf("node of type %d", n.Type)
	}
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(n.Data)
	for _, key := range []string{"id", "class"} {
		if v, ok := dom.GetAttribute(n, key); ok {
			fmt.Fprintf(&b, " %s=%q", key, v)
		}
	}
	b.WriteString(">")
	return b.String()
}
