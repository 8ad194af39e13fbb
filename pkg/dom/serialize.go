package dom

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
)

// OuterHTML serializes n including its own tag.
func OuterHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// WriteTo serializes the whole document.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// String serializes the whole document, returning "" if the tree cannot be
// rendered.
func (d *Document) String() string {
	s, err := OuterHTML(d.root)
	if err != nil {
		return ""
	}
	return s
}
