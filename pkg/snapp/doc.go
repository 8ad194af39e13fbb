// Package snapp is a fine-grained reactive rendering runtime.
//
// A Runtime builds nodes of a dom.Document from a declarative description and
// records, for every dynamic attribute, style property and text node, which
// cells the value read while it was computed. When a cell changes, only the
// recorded values are recomputed and written back to their nodes. There is no
// virtual tree and no diff pass.
//
// # Cells
//
//	count := snapp.Dynamic(rt, 0)
//	count.Value()     // tracked read
//	count.Peek()      // untracked read
//	count.Update(1)   // no-op when equal, otherwise synchronous propagation
//
// # Building
//
// Create takes a tag name, the Fragment marker or a Component, followed by
// props and children in any order:
//
//	button := rt.Create("button",
//	    snapp.Attr("className", "btn"),
//	    snapp.Bind("title", func() any { return fmt.Sprintf("clicked %d", count.Value()) }),
//	    snapp.On("click", func(*dom.Event) { count.Modify(func(n int) int { return n + 1 }) }),
//	    snapp.Style(snapp.StyleBind("color", func() any {
//	        if count.Value()%2 == 0 {
//	            return "red"
//	        }
//	        return "blue"
//	    })),
//	    func() any { return count.Value() },
//	)
//	rt.Render(rt.Select("#app"), button, snapp.ReplaceChildren, nil)
//
// # Events
//
// Handlers are never attached to the nodes themselves. The runtime keeps one
// listener per event type on the document and routes each event to the
// nearest ancestor-or-self of the target that registered a handler for it.
//
// # Lifecycle
//
// Nodes removed through the runtime (Remove, Dispose, Handle.Dispose, or
// displaced by Render) release their subscriptions and handlers immediately.
// Nodes removed from the document by other means are detected by a mutation
// observer: their handlers are released at once and their subscriptions are
// swept after SweepDelay, or as soon as SweepThreshold removals accumulate.
//
// # Threading
//
// A Runtime and its Document are not safe for concurrent use. Drive them
// from a single goroutine, typically an eventloop.Loop.
package snapp
