package snapp

import (
	"fmt"

	"golang.org/x/net/html"

	snapperrors "github.com/snapp-dev/snapp/internal/errors"
	"github.com/snapp-dev/snapp/pkg/dom"
)

// Fragment is the tag for a document fragment.
const Fragment = "<>"

// Component builds a subtree from its props.
type Component func(Props) *html.Node

// svgTags are created in the SVG namespace.
var svgTags = map[string]bool{
	"svg": true, "circle": true, "ellipse": true, "line": true, "path": true,
	"polygon": true, "polyline": true, "rect": true, "text": true,
	"textPath": true, "tspan": true, "defs": true, "g": true, "marker": true,
	"mask": true, "pattern": true, "switch": true, "symbol": true,
	"linearGradient": true, "radialGradient": true, "stop": true,
	"filter": true, "feBlend": true, "feColorMatrix": true,
	"feComponentTransfer": true, "feComposite": true, "feConvolveMatrix": true,
	"feDiffuseLighting": true, "feDisplacementMap": true,
	"feDistantLight": true, "feDropShadow": true, "feFlood": true,
	"feFuncA": true, "feFuncB": true, "feFuncG": true, "feFuncR": true,
	"feGaussianBlur": true, "feImage": true, "feMerge": true,
	"feMergeNode": true, "feMorphology": true, "feOffset": true,
	"fePointLight": true, "feSpecularLighting": true, "feSpotLight": true,
	"feTile": true, "feTurbulence": true, "image": true, "use": true,
	"foreignObject": true, "animate": true, "animateMotion": true,
	"animateTransform": true, "mpath": true, "set": true, "clipPath": true,
	"desc": true, "metadata": true, "view": true,
}

// Create builds a node from tag, which is an element name, Fragment or a
// Component. args are props (Prop, []Prop) and children in any order.
//
// Children may be strings, numbers, bools, nodes, slices of those, or
// cells and func() any / func() string for dynamic text. nil, false and "" are
// dropped. Panics raised while computing a dynamic value or running a
// component propagate to the caller.
func (rt *Runtime) Create(tag any, args ...any) *html.Node {
	props, children := splitArgs(args)

	switch t := tag.(type) {
	case string:
		switch t {
		case Fragment:
			return rt.createFragment(children)
		case "":
			rt.logger.Error("cannot create element",
				"error", snapperrors.New("S041").WithDetail("empty tag name"))
			return nil
		}
		return rt.createElement(t, props, children)
	case Component:
		return t(Props{list: props, Children: children})
	case func(Props) *html.Node:
		return t(Props{list: props, Children: children})
	default:
		rt.logger.Error("cannot create element",
			"error", snapperrors.New("S041").WithDetailf("tag of type %T", tag))
		return nil
	}
}

// CreateHandle is Create returning a Handle that disposes the subtree.
func (rt *Runtime) CreateHandle(tag any, args ...any) *Handle {
	n := rt.Create(tag, args...)
	h := &Handle{rt: rt, node: n}
	if n != nil && dom.IsFragment(n) {
		h.roots = dom.Children(n)
	} else if n != nil {
		h.roots = []*html.Node{n}
	}
	return h
}

func (rt *Runtime) createElement(tag string, props []Prop, children []any) *html.Node {
	var el *html.Node
	if svgTags[tag] {
		el = rt.doc.CreateElementNS(dom.SVGNamespace, tag)
	} else {
		el = rt.doc.CreateElement(tag)
	}
	nodeID := rt.nextNodeID()
	defer rt.disposeOnPanic(el)

	for _, p := range props {
		rt.applyProp(el, nodeID, p)
	}
	for _, child := range children {
		rt.appendChild(el, el, nodeID, child)
	}
	return el
}

func (rt *Runtime) createFragment(children []any) *html.Node {
	frag := rt.doc.CreateFragment()
	defer rt.disposeOnPanic(frag)
	for _, child := range children {
		rt.appendChild(frag, nil, 0, child)
	}
	return frag
}

// disposeOnPanic releases whatever a failed build registered for n and
// re-raises the panic. Must be deferred directly.
func (rt *Runtime) disposeOnPanic(n *html.Node) {
	if r := recover(); r != nil {
		rt.Dispose(n)
		panic(r)
	}
}

func (rt *Runtime) applyProp(el *html.Node, nodeID uint64, p Prop) {
	switch p.Kind {
	case PropStatic:
		if p.Value == nil {
			return
		}
		dom.SetAttribute(el, attributeName(p.Name), stringify(p.Value))
	case PropDynamic:
		if p.Compute == nil {
			return
		}
		rt.bind(&entry{
			kind:    entryAttr,
			owner:   el,
			target:  el,
			name:    attributeName(p.Name),
			compute: p.Compute,
		}, nodeID)
	case PropStyle:
		if len(p.Styles) == 0 {
			rt.logger.Warn("invalid style",
				"error", snapperrors.New("S021").WithDetailf("empty style on <%s>", el.Data),
				"tag", el.Data)
			return
		}
		for _, s := range p.Styles {
			if s.Compute == nil {
				setStyle(el, s.Name, s.Value)
				continue
			}
			rt.bind(&entry{
				kind:    entryStyle,
				owner:   el,
				target:  el,
				name:    s.Name,
				compute: s.Compute,
			}, nodeID)
		}
	case PropEvent:
		rt.addHandler(el, nodeID, p)
	}
}

// textSource is a value that renders as dynamic text, such as *Cell[T].
type textSource interface {
	Text() func() any
}

// appendChild appends child to parent. owner is the element that owns
// dynamic text subscriptions; nil makes the text node its own owner.
func (rt *Runtime) appendChild(parent, owner *html.Node, nodeID uint64, child any) {
	switch c := child.(type) {
	case *html.Node:
		rt.doc.Append(parent, c)
	case string:
		rt.doc.Append(parent, rt.doc.CreateTextNode(c))
	case func() any:
		rt.appendDynamicText(parent, owner, nodeID, c)
	case func() string:
		rt.appendDynamicText(parent, owner, nodeID, func() any { return c() })
	case textSource:
		rt.appendDynamicText(parent, owner, nodeID, c.Text())
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, bool, fmt.Stringer:
		rt.doc.Append(parent, rt.doc.CreateTextNode(stringify(c)))
	default:
		rt.logger.Warn("unsupported child",
			"error", snapperrors.New("S040").WithDetailf("child of type %T", child))
	}
}

func (rt *Runtime) appendDynamicText(parent, owner *html.Node, nodeID uint64, fn func() any) {
	text := rt.doc.CreateTextNode("")
	if owner == nil {
		owner = text
	}
	rt.bind(&entry{
		kind:    entryText,
		owner:   owner,
		target:  text,
		compute: fn,
	}, nodeID)
	rt.doc.Append(parent, text)
}

// splitArgs separates props from children and flattens the children.
func splitArgs(args []any) ([]Prop, []any) {
	var props []Prop
	var children []any
	for _, a := range args {
		switch v := a.(type) {
		case Prop:
			props = append(props, v)
		case []Prop:
			props = append(props, v...)
		default:
			children = append(children, v)
		}
	}
	return props, flatten(children, nil)
}

// flatten appends children to out recursively, dropping nil, false and "".
func flatten(children []any, out []any) []any {
	for _, child := range children {
		switch c := child.(type) {
		case nil:
		case []any:
			out = flatten(c, out)
		case []*html.Node:
			for _, n := range c {
				if n != nil {
					out = append(out, n)
				}
			}
		case []string:
			for _, s := range c {
				if s != "" {
					out = append(out, s)
				}
			}
		case *html.Node:
			if c != nil {
				out = append(out, c)
			}
		case bool:
			if c {
				out = append(out, c)
			}
		case string:
			if c != "" {
				out = append(out, c)
			}
		default:
			out = append(out, c)
		}
	}
	return out
}

// Handle owns a built subtree.
type Handle struct {
	rt       *Runtime
	node     *html.Node
	roots    []*html.Node
	disposed bool
}

// Node returns the built node. For fragments it is empty once rendered;
// Roots keeps the top-level nodes.
func (h *Handle) Node() *html.Node {
	return h.node
}

// Roots returns the top-level nodes of the subtree.
func (h *Handle) Roots() []*html.Node {
	return h.roots
}

// Dispose releases the subtree's subscriptions and handlers. Safe to call
// more than once.
func (h *Handle) Dispose() {
	if h.disposed {
		return
	}
	h.disposed = true
	for _, n := range h.roots {
		h.rt.Dispose(n)
	}
}
