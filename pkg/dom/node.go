package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// IsText reports whether n is a text node.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// IsFragment reports whether n is a document fragment.
func IsFragment(n *html.Node) bool {
	return n != nil && n.Type == html.DocumentNode && n.Data == FragmentData
}

// GetAttribute returns the value of the named attribute and whether it is present.
func GetAttribute(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttribute reports whether n carries the named attribute.
func HasAttribute(n *html.Node, key string) bool {
	_, ok := GetAttribute(n, key)
	return ok
}

// SetAttribute sets an attribute, replacing any existing value in place.
func SetAttribute(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttribute deletes the named attribute if present.
func RemoveAttribute(n *html.Node, key string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// AttributeNames returns attribute keys in document order.
func AttributeNames(n *html.Node) []string {
	names := make([]string, 0, len(n.Attr))
	for _, a := range n.Attr {
		names = append(names, a.Key)
	}
	return names
}

// SetNodeValue replaces the data of a text or comment node.
func SetNodeValue(n *html.Node, value string) {
	if n.Type == html.TextNode || n.Type == html.CommentNode {
		n.Data = value
	}
}

// TextContent concatenates all descendant text.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// Children returns the direct children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the node's descendants.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; {
		// fn may detach c
		next := c.NextSibling
		Walk(c, fn)
		c = next
	}
}

// Closest returns the nearest inclusive ancestor element of n for which
// match returns true, or nil.
func Closest(n *html.Node, match func(*html.Node) bool) *html.Node {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && match(p) {
			return p
		}
	}
	return nil
}

// ClosestWithAttribute returns the nearest inclusive ancestor element of n
// carrying the named attribute.
func ClosestWithAttribute(n *html.Node, key string) *html.Node {
	return Closest(n, func(e *html.Node) bool { return HasAttribute(e, key) })
}
