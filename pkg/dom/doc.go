// Package dom provides the in-memory host document that the snapp runtime
// renders into.
//
// Nodes are plain golang.org/x/net/html nodes, so a document can be parsed
// from and serialized back to HTML. The Document adds the pieces a browser
// would normally supply:
//
//   - Tree mutation with insertion modes (Append, Prepend, Before, After,
//     ReplaceWith, ReplaceChildren, Remove)
//   - Connectedness checks (IsConnected, Contains)
//   - Inline style declarations (StyleOf)
//   - CSS selector queries (QuerySelector, QuerySelectorAll)
//   - A MutationObserver reporting added and removed nodes
//   - Root-level event listeners and dispatch, built on go-eventloop's
//     EventTarget
//
// # Mutation
//
// Only mutations made through Document methods are observed. Calling the
// html.Node methods directly bypasses observers.
//
//	doc := dom.NewDocument()
//	div := doc.CreateElement("div")
//	doc.Append(doc.Body(), div)
//	doc.IsConnected(div) // true
//
// # Events
//
// A Document has exactly one event target: the document root. Events
// dispatched on a connected node reach every root listener for that type,
// with Event.Target set to the originating node:
//
//	id := doc.AddEventListener("click", func(e *dom.Event) { ... })
//	doc.Dispatch(button, "click")
//	doc.RemoveEventListener("click", id)
//
// # Thread Safety
//
// A Document is not safe for concurrent use. Use it from a single goroutine,
// typically an eventloop.Loop.
package dom
