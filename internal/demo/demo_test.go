package demo

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/snapp-dev/snapp/pkg/dom"
	"github.com/snapp-dev/snapp/pkg/snapp"
)

func newRuntime(t *testing.T) *snapp.Runtime {
	t.Helper()
	doc, err := dom.ParseString(Shell)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	return snapp.New(doc, snapp.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func heading(t *testing.T, rt *snapp.Runtime) string {
	t.Helper()
	h2 := rt.Select("h2")
	if h2 == nil {
		t.Fatal("h2 not rendered")
	}
	return dom.TextContent(h2)
}

func TestMountRendersCounter(t *testing.T) {
	rt := newRuntime(t)

	app, err := Mount(rt, Target, snapp.ReplaceChildren)
	if err != nil {
		t.Fatalf("Mount() error: %v", err)
	}
	if !rt.Document().Ready() {
		t.Error("document should be ready after Mount")
	}
	if got := heading(t, rt); got != "Welcome to snapp: 0" {
		t.Errorf("heading = %q", got)
	}
	if got := dom.TextContent(app.Button()); got != "Click To Count" {
		t.Errorf("button text = %q", got)
	}
	if got := dom.StyleOf(app.Root()).Get("place-items"); got != "center" {
		t.Errorf("place-items = %q", got)
	}
}

func TestClickIncrementsCount(t *testing.T) {
	rt := newRuntime(t)
	app, err := Mount(rt, Target, snapp.ReplaceChildren)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		rt.Dispatch(app.Button(), "click")
	}

	if app.Count.Peek() != 3 {
		t.Errorf("Count = %d, want 3", app.Count.Peek())
	}
	if got := heading(t, rt); got != "Welcome to snapp: 3" {
		t.Errorf("heading = %q", got)
	}
	if n := rt.ListenerCount("click"); n != 1 {
		t.Errorf("click listeners = %d, want 1", n)
	}
}

func TestHoverStyles(t *testing.T) {
	rt := newRuntime(t)
	app, err := Mount(rt, Target, snapp.ReplaceChildren)
	if err != nil {
		t.Fatal(err)
	}
	style := dom.StyleOf(app.Button())

	if got := style.Get("background-color"); got != "#4a90e2" {
		t.Errorf("idle background = %q", got)
	}

	rt.Dispatch(app.Button(), "mouseover")
	if got := dom.StyleOf(app.Button()).Get("background-color"); got != "#357abd" {
		t.Errorf("hover background = %q", got)
	}
	if got := dom.StyleOf(app.Button()).Get("transform"); got != "translateY(-2px)" {
		t.Errorf("hover transform = %q", got)
	}

	rt.Dispatch(app.Button(), "mouseout")
	if got := dom.StyleOf(app.Button()).Get("transform"); got != "none" {
		t.Errorf("idle transform = %q", got)
	}
	if got := dom.StyleOf(app.Button()).Get("border-radius"); got != "8px" {
		t.Errorf("border-radius = %q", got)
	}
}

func TestMountMissingTarget(t *testing.T) {
	rt := newRuntime(t)

	_, err := Mount(rt, "#nowhere", snapp.ReplaceChildren)
	if !errors.Is(err, snapp.ErrNoMatch) {
		t.Errorf("Mount() error = %v, want ErrNoMatch", err)
	}
}

func TestRemountDisposesPrevious(t *testing.T) {
	rt := newRuntime(t)
	first, err := Mount(rt, Target, snapp.ReplaceChildren)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Mount(rt, Target, snapp.ReplaceChildren)
	if err != nil {
		t.Fatal(err)
	}

	rt.Dispatch(second.Button(), "click")
	first.Count.Update(10)

	if got := heading(t, rt); got != "Welcome to snapp: 1" {
		t.Errorf("heading = %q", got)
	}
	out, _ := dom.InnerHTML(rt.Document().Body())
	if strings.Count(out, "<button") != 1 {
		t.Errorf("expected one button, got %s", out)
	}
}

func TestMountAppend(t *testing.T) {
	rt := newRuntime(t)
	if _, err := Mount(rt, "body", snapp.Append); err != nil {
		t.Fatal(err)
	}

	body := rt.Document().Body()
	if rt.Select(Target) == nil {
		t.Error("existing mount point should survive Append")
	}
	if last := body.LastChild; last == nil || !strings.Contains(dom.TextContent(last), "Welcome") {
		t.Error("counter should be the last child of body")
	}
}
