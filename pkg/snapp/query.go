package snapp

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"

	snapperrors "github.com/snapp-dev/snapp/internal/errors"
)

// QuerySelector returns the first element matching selector, or
// ErrInvalidSelector / ErrNoMatch.
func (rt *Runtime) QuerySelector(selector string) (*html.Node, error) {
	n, err := rt.doc.QuerySelector(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSelector, err)
	}
	if n == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, selector)
	}
	return n, nil
}

// QuerySelectorAll returns every element matching selector, or
// ErrInvalidSelector / ErrNoMatch when there is none.
func (rt *Runtime) QuerySelectorAll(selector string) ([]*html.Node, error) {
	nodes, err := rt.doc.QuerySelectorAll(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSelector, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, selector)
	}
	return nodes, nil
}

// Select returns the first element matching selector. Misses and invalid
// selectors are logged and return nil.
func (rt *Runtime) Select(selector string) *html.Node {
	n, err := rt.QuerySelector(selector)
	if err != nil {
		rt.logSelectError(selector, err)
		return nil
	}
	return n
}

// SelectList selects each selector in turn. Entries for misses are nil.
func (rt *Runtime) SelectList(selectors []string) []*html.Node {
	out := make([]*html.Node, len(selectors))
	for i, sel := range selectors {
		out[i] = rt.Select(sel)
	}
	return out
}

// SelectAll returns every element matching selector. An empty result or an
// invalid selector is logged and returns nil.
func (rt *Runtime) SelectAll(selector string) []*html.Node {
	nodes, err := rt.QuerySelectorAll(selector)
	if err != nil {
		rt.logSelectError(selector, err)
		return nil
	}
	return nodes
}

// SelectAllList applies SelectAll to each selector. Entries for misses are
// nil.
func (rt *Runtime) SelectAllList(selectors []string) [][]*html.Node {
	out := make([][]*html.Node, len(selectors))
	for i, sel := range selectors {
		out[i] = rt.SelectAll(sel)
	}
	return out
}

func (rt *Runtime) logSelectError(selector string, err error) {
	code := "S011"
	if errors.Is(err, ErrInvalidSelector) {
		code = "S010"
	}
	rt.logger.Error("select failed",
		"error", snapperrors.New(code).Wrap(err),
		"selector", selector)
}
