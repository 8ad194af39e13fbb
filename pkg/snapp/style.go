package snapp

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	snapperrors "github.com/snapp-dev/snapp/internal/errors"
	"github.com/snapp-dev/snapp/pkg/dom"
)

// Styles maps CSS property names (dashed or camelCase) to values.
type Styles map[string]string

// ApplyStyle sets styles on each node. Properties are applied in name
// order. Nodes that are not elements are logged and skipped.
func (rt *Runtime) ApplyStyle(nodes []*html.Node, styles Styles) {
	if len(styles) == 0 {
		rt.logger.Warn("invalid style", "error", snapperrors.New("S021"))
		return
	}
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, n := range nodes {
		if !rt.styleTarget(n, "apply") {
			continue
		}
		for _, name := range names {
			setStyle(n, name, styles[name])
		}
	}
}

// RemoveStyle removes the named properties from each node.
func (rt *Runtime) RemoveStyle(nodes []*html.Node, properties ...string) {
	for _, n := range nodes {
		if !rt.styleTarget(n, "remove") {
			continue
		}
		style := dom.StyleOf(n)
		for _, name := range properties {
			if strings.Contains(name, "-") {
				style.RemoveProperty(name)
			} else {
				style.Set(name, "")
			}
		}
	}
}

// ClearStyle removes the style attribute from each node.
func (rt *Runtime) ClearStyle(nodes ...*html.Node) {
	for _, n := range nodes {
		if !rt.styleTarget(n, "remove") {
			continue
		}
		dom.RemoveAttribute(n, "style")
	}
}

func (rt *Runtime) styleTarget(n *html.Node, op string) bool {
	if dom.IsElement(n) {
		return true
	}
	rt.logger.Error("can not "+op+" style, select a valid element",
		"error", snapperrors.New("S020").WithDetail(describe(n)))
	return false
}
