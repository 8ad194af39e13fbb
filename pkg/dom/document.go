package dom

import (
	"io"
	"strings"

	"github.com/joeycumines/go-eventloop"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FragmentData is the Data value carried by document fragment nodes.
const FragmentData = "#document-fragment"

// SVGNamespace is the namespace assigned to SVG elements.
const SVGNamespace = "svg"

// Document is an in-memory HTML document.
type Document struct {
	root *html.Node
	head *html.Node
	body *html.Node

	// target is the single native event target of the document.
	target *eventloop.EventTarget

	observers []*MutationObserver

	ready bool
}

// NewDocument creates an empty document: <!DOCTYPE html><html><head></head><body></body></html>.
func NewDocument() *Document {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := newElement("html", "")
	head := newElement("head", "")
	body := newElement("body", "")
	htmlEl.AppendChild(head)
	htmlEl.AppendChild(body)
	root.AppendChild(htmlEl)

	return &Document{
		root:   root,
		head:   head,
		body:   body,
		target: eventloop.NewEventTarget(),
	}
}

// Parse builds a document from HTML source.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	d := &Document{
		root:   root,
		target: eventloop.NewEventTarget(),
	}
	Walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch n.DataAtom {
		case atom.Head:
			if d.head == nil {
				d.head = n
			}
		case atom.Body:
			if d.body == nil {
				d.body = n
			}
		}
		return true
	})
	return d, nil
}

// ParseString is Parse for a string source.
func ParseString(source string) (*Document, error) {
	return Parse(strings.NewReader(source))
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Head returns the <head> element.
func (d *Document) Head() *html.Node { return d.head }

// Body returns the <body> element.
func (d *Document) Body() *html.Node { return d.body }

// Ready reports whether the document has been marked ready.
func (d *Document) Ready() bool { return d.ready }

// SetReady sets the readiness flag.
func (d *Document) SetReady(ready bool) { d.ready = ready }

// CreateElement creates a detached HTML element.
func (d *Document) CreateElement(tag string) *html.Node {
	return newElement(tag, "")
}

// CreateElementNS creates a detached element in the given namespace
// (e.g. SVGNamespace).
func (d *Document) CreateElementNS(namespace, tag string) *html.Node {
	return newElement(tag, namespace)
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// CreateFragment creates an empty document fragment. Inserting a fragment
// moves its children into the destination and leaves the fragment empty.
func (d *Document) CreateFragment() *html.Node {
	return &html.Node{Type: html.DocumentNode, Data: FragmentData}
}

// IsConnected reports whether n is attached to this document.
func (d *Document) IsConnected(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == d.root {
			return true
		}
	}
	return false
}

// Contains is IsConnected under its DOM name.
func (d *Document) Contains(n *html.Node) bool {
	return n != nil && d.IsConnected(n)
}

func newElement(tag, namespace string) *html.Node {
	n := &html.Node{
		Type:      html.ElementNode,
		Data:      tag,
		Namespace: namespace,
	}
	if namespace == "" {
		n.DataAtom = atom.Lookup([]byte(tag))
	}
	return n
}
