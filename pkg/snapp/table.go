package snapp

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/snapp-dev/snapp/pkg/dom"
)

type entryKind int

const (
	entryAttr entryKind = iota
	entryStyle
	entryText
)

// entry is one reactive target: an attribute or style property of an
// element, or the value of a text node.
type entry struct {
	kind    entryKind
	owner   *html.Node
	target  *html.Node
	name    string
	compute func() any

	// deps are the cells read during the last run of compute.
	deps []CellID
	live bool
}

func (e *entry) apply(value any) {
	switch e.kind {
	case entryAttr:
		if value == nil {
			dom.RemoveAttribute(e.target, e.name)
			return
		}
		dom.SetAttribute(e.target, e.name, stringify(value))
	case entryStyle:
		setStyle(e.target, e.name, stringify(value))
	case entryText:
		dom.SetNodeValue(e.target, stringify(value))
	}
}

// setStyle writes one inline property. Dashed names go through
// SetProperty, others through the camelCase path.
func setStyle(el *html.Node, name, value string) {
	style := dom.StyleOf(el)
	if strings.Contains(name, "-") {
		style.SetProperty(name, value)
		return
	}
	style.Set(name, value)
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// table is the subscription table: entries per owning node, and the reverse
// index from cell to the entries that read it, in subscription order.
type table struct {
	byNode   map[*html.Node][]*entry
	byCell   map[CellID][]*entry
	attached map[*html.Node]bool
}

func newTable() *table {
	return &table{
		byNode:   make(map[*html.Node][]*entry),
		byCell:   make(map[CellID][]*entry),
		attached: make(map[*html.Node]bool),
	}
}

func (t *table) subscribe(e *entry) {
	e.live = true
	t.byNode[e.owner] = append(t.byNode[e.owner], e)
	for _, id := range e.deps {
		t.byCell[id] = append(t.byCell[id], e)
	}
}

// subscribers returns a snapshot of the entries reading id.
func (t *table) subscribers(id CellID) []*entry {
	subs := t.byCell[id]
	if len(subs) == 0 {
		return nil
	}
	out := make([]*entry, len(subs))
	copy(out, subs)
	return out
}

// refresh replaces e's dependency set with deps, indexing added cells and
// unindexing dropped ones. An entry left with no dependencies is removed.
func (t *table) refresh(e *entry, deps []CellID) {
	next := make(map[CellID]struct{}, len(deps))
	for _, id := range deps {
		next[id] = struct{}{}
	}
	prev := make(map[CellID]struct{}, len(e.deps))
	for _, id := range e.deps {
		prev[id] = struct{}{}
		if _, ok := next[id]; !ok {
			t.unindex(id, e)
		}
	}
	for _, id := range deps {
		if _, ok := prev[id]; !ok {
			t.byCell[id] = append(t.byCell[id], e)
		}
	}
	e.deps = deps

	if len(deps) == 0 {
		t.drop(e)
	}
}

func (t *table) unindex(id CellID, e *entry) {
	subs := t.byCell[id]
	for i, s := range subs {
		if s == e {
			subs = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(subs) == 0 {
		delete(t.byCell, id)
		return
	}
	t.byCell[id] = subs
}

// drop removes a single entry.
func (t *table) drop(e *entry) {
	e.live = false
	for _, id := range e.deps {
		t.unindex(id, e)
	}
	entries := t.byNode[e.owner]
	for i, s := range entries {
		if s == e {
			entries = append(entries[:i:i], entries[i+1:]...)
			break
		}
	}
	if len(entries) == 0 {
		delete(t.byNode, e.owner)
		delete(t.attached, e.owner)
		return
	}
	t.byNode[e.owner] = entries
}

// evict removes every entry owned by n.
func (t *table) evict(n *html.Node) bool {
	entries, ok := t.byNode[n]
	if !ok {
		return false
	}
	for _, e := range entries {
		e.live = false
		for _, id := range e.deps {
			t.unindex(id, e)
		}
	}
	delete(t.byNode, n)
	delete(t.attached, n)
	return true
}

func (t *table) has(n *html.Node) bool {
	_, ok := t.byNode[n]
	return ok
}

func (t *table) markAttached(n *html.Node) {
	if t.has(n) {
		t.attached[n] = true
	}
}

// size returns the number of live entries.
func (t *table) size() int {
	total := 0
	for _, entries := range t.byNode {
		total += len(entries)
	}
	return total
}

// notify recomputes every entry subscribed to id, in subscription order.
func (rt *Runtime) notify(id CellID) {
	for _, e := range rt.table.subscribers(id) {
		// An earlier recompute may have disposed this entry's node.
		if !e.live {
			continue
		}
		rt.recompute(e)
	}
}

func (rt *Runtime) recompute(e *entry) {
	value, deps := rt.collect(e.compute)
	e.apply(value)
	rt.metrics.recomputed()
	rt.table.refresh(e, deps)
}

// bind computes e once, applies the value and subscribes e when the
// computation read at least one cell.
func (rt *Runtime) bind(e *entry, nodeID uint64) {
	value, deps := rt.collect(e.compute)
	e.apply(value)
	if len(deps) == 0 {
		return
	}
	e.deps = deps
	if dom.IsElement(e.owner) {
		dom.SetAttribute(e.owner, DynamicAttr, formatID(nodeID))
	}
	rt.table.subscribe(e)
	if rt.doc.IsConnected(e.owner) {
		rt.table.markAttached(e.owner)
	}
	rt.metrics.setLive(rt.table.size(), rt.events.size())
}
