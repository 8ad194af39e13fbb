// Package errors provides coded, structured diagnostics for snapp.
//
// Every misuse the runtime detects (rendering into a detached target, an
// invalid selector, an event name the element does not support) maps to a
// registered code. The runtime logs the diagnostic and reports failure to the
// caller through a sentinel; the CLI prints the same diagnostics with Format.
//
// # Error Categories
//
//   - render: content could not be attached to the document
//   - query: selector lookups
//   - style: inline style manipulation
//   - event: event props and delegation
//   - build: node construction
//   - config: snapp.json loading and validation
//   - cli: command line usage
//
// # Usage
//
//	err := errors.New("S001").
//	    WithDetail(`target <div id="app"> is not connected`).
//	    WithSuggestion("Render into a node that is part of the document")
//
//	slog.Error("render failed", "error", err)
//	fmt.Fprint(os.Stderr, err.Format())
package errors
