package dom

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// QuerySelector returns the first element in the document matching the CSS
// selector, or nil. An invalid selector is reported as an error.
func (d *Document) QuerySelector(selector string) (*html.Node, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return sel.MatchFirst(d.root), nil
}

// QuerySelectorAll returns every element in the document matching the CSS
// selector, in document order.
func (d *Document) QuerySelectorAll(selector string) ([]*html.Node, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return sel.MatchAll(d.root), nil
}

// Matches reports whether n matches the CSS selector.
func Matches(n *html.Node, selector string) (bool, error) {
	sel, err := compile(selector)
	if err != nil {
		return false, err
	}
	return sel.Match(n), nil
}

func compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: invalid selector %q: %w", selector, err)
	}
	return sel, nil
}
