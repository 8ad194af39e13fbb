package snapp

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/snapp-dev/snapp/pkg/dom"
)

// PropKind tags the variant held by a Prop.
type PropKind int

const (
	// PropStatic is a plain attribute value.
	PropStatic PropKind = iota
	// PropDynamic is an attribute recomputed when the cells it reads change.
	PropDynamic
	// PropEvent is a delegated event handler.
	PropEvent
	// PropStyle is a set of inline style properties.
	PropStyle
)

func (k PropKind) String() string {
	switch k {
	case PropStatic:
		return "static"
	case PropDynamic:
		return "dynamic"
	case PropEvent:
		return "event"
	case PropStyle:
		return "style"
	default:
		return fmt.Sprintf("PropKind(%d)", int(k))
	}
}

// Prop is one element property. Build it with Attr, Bind, On or Style.
type Prop struct {
	Kind PropKind
	Name string

	// Value is set for PropStatic.
	Value any

	// Compute is set for PropDynamic.
	Compute func() any

	// Handler is set for PropEvent.
	Handler func(*dom.Event)

	// Styles is set for PropStyle.
	Styles []StyleProp
}

// StyleProp is one inline style property, static or dynamic.
type StyleProp struct {
	// Name is a CSS property name ("font-size") or its camelCase form
	// ("fontSize").
	Name string

	Value   string
	Compute func() any
}

// Attr creates a static attribute. className and htmlFor are written as
// class and for. A nil value is skipped.
func Attr(name string, value any) Prop {
	return Prop{Kind: PropStatic, Name: name, Value: value}
}

// Bind creates a dynamic attribute computed by fn. A nil result removes
// the attribute.
func Bind(name string, fn func() any) Prop {
	return Prop{Kind: PropDynamic, Name: name, Compute: fn}
}

// On creates an event handler prop. The name is case-insensitive and may
// carry an "on" prefix: "click", "Click" and "onClick" are equivalent.
func On(event string, fn func(*dom.Event)) Prop {
	return Prop{Kind: PropEvent, Name: event, Handler: fn}
}

// Style creates an inline style prop.
func Style(props ...StyleProp) Prop {
	return Prop{Kind: PropStyle, Name: "style", Styles: props}
}

// StyleValue creates a static style property.
func StyleValue(name, value string) StyleProp {
	return StyleProp{Name: name, Value: value}
}

// StyleBind creates a style property computed by fn. A nil or empty result
// removes the property.
func StyleBind(name string, fn func() any) StyleProp {
	return StyleProp{Name: name, Compute: fn}
}

// attributeName maps JSX-style prop names to attribute names.
func attributeName(name string) string {
	switch name {
	case "className":
		return "class"
	case "htmlFor":
		return "for"
	}
	return name
}

// Props is what a Component receives: every prop passed to Create plus the
// flattened children.
type Props struct {
	list []Prop

	// Children are the flattened children, ready to pass on to Create.
	Children []any
}

// Get returns the value of the static prop named key.
func (p Props) Get(key string) (any, bool) {
	for _, prop := range p.list {
		if prop.Kind == PropStatic && prop.Name == key {
			return prop.Value, true
		}
	}
	return nil, false
}

// String returns the static prop named key formatted as text, or "".
func (p Props) String(key string) string {
	v, ok := p.Get(key)
	if !ok || v == nil {
		return ""
	}
	return stringify(v)
}

// Prop returns the prop named key, whatever its kind.
func (p Props) Prop(key string) (Prop, bool) {
	for _, prop := range p.list {
		if prop.Name == key {
			return prop, true
		}
	}
	return Prop{}, false
}

// All returns every prop in the order given.
func (p Props) All() []Prop {
	out := make([]Prop, len(p.list))
	copy(out, p.list)
	return out
}

// Without returns the props except those named in keys.
func (p Props) Without(keys ...string) []Prop {
	var out []Prop
	for _, prop := range p.list {
		if !containsString(keys, prop.Name) {
			out = append(out, prop)
		}
	}
	return out
}

// eventAliases maps event names to the types actually listened for.
var eventAliases = map[string]string{
	"mouseenter":  "mouseover",
	"mouseleave":  "mouseout",
	"doubleclick": "dblclick",
}

// eventType resolves a handler name against what el supports.
func eventType(el *html.Node, name string) (string, bool) {
	key := strings.ToLower(name)
	candidates := []string{key}
	if len(key) > 2 && strings.HasPrefix(key, "on") {
		candidates = append(candidates, key[2:])
	}
	for _, c := range candidates {
		if alias, ok := eventAliases[c]; ok {
			c = alias
		}
		if dom.HasEventHandler(el, c) {
			return c, true
		}
	}
	return key, false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
