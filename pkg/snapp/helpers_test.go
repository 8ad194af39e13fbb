package snapp

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"golang.org/x/net/html"

	"github.com/snapp-dev/snapp/pkg/dom"
)

func newTestRuntime(opts ...Option) (*Runtime, *dom.Document) {
	doc := dom.NewDocument()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(doc, opts...), doc
}

// newLoggedRuntime returns a runtime whose log output is captured.
func newLoggedRuntime(opts ...Option) (*Runtime, *dom.Document, *bytes.Buffer) {
	var buf bytes.Buffer
	doc := dom.NewDocument()
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append([]Option{WithLogger(logger)}, opts...)
	return New(doc, opts...), doc, &buf
}

func mustRender(t *testing.T, rt *Runtime, target *html.Node, content any, mode Mode) {
	t.Helper()
	if err := rt.RenderErr(target, content, mode); err != nil {
		t.Fatalf("RenderErr() error: %v", err)
	}
}

func attr(n *html.Node, key string) string {
	v, _ := dom.GetAttribute(n, key)
	return v
}

func innerHTML(t *testing.T, n *html.Node) string {
	t.Helper()
	s, err := dom.InnerHTML(n)
	if err != nil {
		t.Fatalf("InnerHTML() error: %v", err)
	}
	return s
}

func recoverPanic(fn func()) (r any) {
	defer func() { r = recover() }()
	fn()
	return nil
}

func bytesContains(b []byte, s string) bool {
	return bytes.Contains(b, []byte(s))
}
