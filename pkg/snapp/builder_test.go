package snapp

import (
	"strconv"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/snapp-dev/snapp/pkg/dom"
)

func TestCreateStaticAttributes(t *testing.T) {
	rt, _ := newTestRuntime()

	el := rt.Create("label",
		Attr("className", "field"),
		Attr("htmlFor", "name"),
		Attr("tabindex", 3),
		Attr("title", nil),
	)

	tests := []struct {
		key  string
		want string
	}{
		{"class", "field"},
		{"for", "name"},
		{"tabindex", "3"},
	}
	for _, tt := range tests {
		if got := attr(el, tt.key); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.key, got, tt.want)
		}
	}
	if dom.HasAttribute(el, "title") {
		t.Error("nil static prop should be skipped")
	}
	if dom.HasAttribute(el, DynamicAttr) || dom.HasAttribute(el, DataAttr) {
		t.Error("static element should carry no markers")
	}
}

func TestDynamicAttributeUpdatesSynchronously(t *testing.T) {
	rt, doc := newTestRuntime()
	count := Dynamic(rt, 1)

	el := rt.Create("div", Bind("data-count", func() any { return count.Value() * 10 }))
	if got := attr(el, "data-count"); got != "10" {
		t.Fatalf("initial = %q, want 10", got)
	}
	if attr(el, DynamicAttr) == "" {
		t.Error("dynamic element should carry the dynamic marker")
	}
	mustRender(t, rt, doc.Body(), el, Append)

	for _, v := range []int{2, 7, 0} {
		count.Update(v)
		if got, want := attr(el, "data-count"), strconv.Itoa(v*10); got != want {
			t.Errorf("after Update(%d) = %q, want %q", v, got, want)
		}
	}
}

func TestDynamicAttributeNilRemoves(t *testing.T) {
	rt, _ := newTestRuntime()
	disabled := Dynamic(rt, true)

	el := rt.Create("button", Bind("disabled", func() any {
		if disabled.Value() {
			return ""
		}
		return nil
	}))
	if !dom.HasAttribute(el, "disabled") {
		t.Fatal("attribute should be set")
	}

	disabled.Update(false)
	if dom.HasAttribute(el, "disabled") {
		t.Error("nil result should remove the attribute")
	}
}

func TestDynamicWithoutCellsIsNotSubscribed(t *testing.T) {
	rt, _ := newTestRuntime()

	el := rt.Create("div", Bind("id", func() any { return "static" }))
	if attr(el, "id") != "static" {
		t.Errorf("id = %q", attr(el, "id"))
	}
	if dom.HasAttribute(el, DynamicAttr) {
		t.Error("no dependency should mean no dynamic marker")
	}
	if rt.table.has(el) {
		t.Error("no dependency should mean no subscription")
	}
}

func TestStyleProps(t *testing.T) {
	rt, _ := newTestRuntime()
	size := Dynamic(rt, 12)

	el := rt.Create("p", Style(
		StyleValue("backgroundColor", "black"),
		StyleValue("text-align", "center"),
		StyleBind("font-size", func() any { return stringify(size.Value()) + "px" }),
		StyleBind("marginTop", func() any { return stringify(size.Value()/2) + "px" }),
	))

	style := dom.StyleOf(el)
	checks := map[string]string{
		"background-color": "black",
		"text-align":       "center",
		"font-size":        "12px",
		"margin-top":       "6px",
	}
	for name, want := range checks {
		if got := style.Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}

	size.Update(20)
	if style.Get("font-size") != "20px" || style.Get("margin-top") != "10px" {
		t.Errorf("after update: %q", attr(el, "style"))
	}
}

func TestBooleanStyleScenario(t *testing.T) {
	rt, doc := newTestRuntime()
	on := Dynamic(rt, true)

	var seen []string
	el := rt.Create("div", Style(StyleBind("color", func() any {
		v := "blue"
		if on.Value() {
			v = "red"
		}
		seen = append(seen, v)
		return v
	})))
	mustRender(t, rt, doc.Body(), el, Append)

	on.Update(false)
	if got := dom.StyleOf(el).Get("color"); got != "blue" {
		t.Errorf("after false = %q, want blue", got)
	}
	on.Update(true)
	if got := dom.StyleOf(el).Get("color"); got != "red" {
		t.Errorf("after true = %q, want red", got)
	}

	want := []string{"red", "blue", "red"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Errorf("computed values = %v, want %v", seen, want)
	}
}

func TestEmptyStyleIsLogged(t *testing.T) {
	rt, _, logs := newLoggedRuntime()

	el := rt.Create("div", Style())
	if dom.HasAttribute(el, "style") {
		t.Error("empty style should not write an attribute")
	}
	if !strings.Contains(logs.String(), "S021") {
		t.Errorf("expected S021 in logs: %s", logs.String())
	}
}

func TestSVGNamespace(t *testing.T) {
	rt, _ := newTestRuntime()

	svg := rt.Create("svg", Attr("viewBox", "0 0 10 10"),
		rt.Create("circle", Attr("r", 5)),
		rt.Create("linearGradient"),
	)
	if svg.Namespace != dom.SVGNamespace {
		t.Errorf("svg namespace = %q", svg.Namespace)
	}
	for _, c := range dom.Children(svg) {
		if c.Namespace != dom.SVGNamespace {
			t.Errorf("<%s> namespace = %q", c.Data, c.Namespace)
		}
	}
	if div := rt.Create("div"); div.Namespace != "" {
		t.Errorf("div namespace = %q", div.Namespace)
	}
}

func TestChildrenFlattening(t *testing.T) {
	rt, _ := newTestRuntime()

	el := rt.Create("p",
		"a", nil, false, "", 1, 2.5, true,
		[]any{"b", []string{"c", ""}, []any{nil, "d"}},
		[]*html.Node{rt.Create("em", "e"), nil},
	)

	if got := dom.TextContent(el); got != "a12.5truebcde" {
		t.Errorf("text = %q", got)
	}
}

func TestUnsupportedChildIsLogged(t *testing.T) {
	rt, _, logs := newLoggedRuntime()

	el := rt.Create("p", struct{}{}, "ok")
	if dom.TextContent(el) != "ok" {
		t.Errorf("text = %q", dom.TextContent(el))
	}
	if !strings.Contains(logs.String(), "S040") {
		t.Errorf("expected S040 in logs: %s", logs.String())
	}
}

func TestDynamicTextChild(t *testing.T) {
	rt, _ := newTestRuntime()
	name := Dynamic(rt, "world")

	el := rt.Create("h1", "hello ", func() string { return name.Value() }, "!")
	if got := dom.TextContent(el); got != "hello world!" {
		t.Fatalf("text = %q", got)
	}

	name.Update("snapp")
	if got := dom.TextContent(el); got != "hello snapp!" {
		t.Errorf("text = %q", got)
	}
}

func TestCellChildIsDynamic(t *testing.T) {
	rt, _ := newTestRuntime()
	count := Dynamic(rt, 1)

	el := rt.Create("span", "n=", count)
	if got := dom.TextContent(el); got != "n=1" {
		t.Fatalf("text = %q", got)
	}

	count.Update(2)
	if got := dom.TextContent(el); got != "n=2" {
		t.Errorf("text = %q, want %q", got, "n=2")
	}
	if len(rt.table.byCell[count.ID()]) != 1 {
		t.Error("cell child not subscribed")
	}
}

func TestFragment(t *testing.T) {
	rt, doc := newTestRuntime()
	c := Dynamic(rt, 0)

	frag := rt.Create(Fragment, "a", c.Text(), rt.Create("b", "x"))
	if !dom.IsFragment(frag) {
		t.Fatal("expected a fragment")
	}
	mustRender(t, rt, doc.Body(), frag, Append)

	if got := innerHTML(t, doc.Body()); got != "a0<b>x</b>" {
		t.Fatalf("body = %q", got)
	}
	c.Update(1)
	if got := innerHTML(t, doc.Body()); got != "a1<b>x</b>" {
		t.Errorf("body = %q", got)
	}
}

func TestComponent(t *testing.T) {
	rt, _ := newTestRuntime()

	var received Props
	Button := func(p Props) *html.Node {
		received = p
		return rt.Create("button", Attr("class", p.String("variant")), p.Without("variant"), p.Children)
	}

	el := rt.Create(Button, Attr("variant", "primary"), Attr("type", "submit"), "Go", []string{"!", ""})
	if el.Data != "button" {
		t.Fatalf("tag = %q", el.Data)
	}
	if attr(el, "class") != "primary" || attr(el, "type") != "submit" {
		t.Errorf("attributes = class %q type %q", attr(el, "class"), attr(el, "type"))
	}
	if dom.HasAttribute(el, "variant") {
		t.Error("Without should drop the variant prop")
	}
	if dom.TextContent(el) != "Go!" {
		t.Errorf("text = %q", dom.TextContent(el))
	}
	if len(received.Children) != 2 {
		t.Errorf("children = %v", received.Children)
	}
	if v, ok := received.Get("variant"); !ok || v != "primary" {
		t.Errorf("Get(variant) = %v, %v", v, ok)
	}
	if _, ok := received.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
	if len(received.All()) != 2 {
		t.Errorf("All() = %v", received.All())
	}

	typed := Component(Button)
	if n := rt.Create(typed, "x"); n == nil || dom.TextContent(n) != "x" {
		t.Error("typed Component should build")
	}
}

func TestInvalidTagIsLogged(t *testing.T) {
	rt, _, logs := newLoggedRuntime()

	if n := rt.Create(""); n != nil {
		t.Error("empty tag should return nil")
	}
	if n := rt.Create(42); n != nil {
		t.Error("non-tag should return nil")
	}
	if strings.Count(logs.String(), "S041") != 2 {
		t.Errorf("expected two S041 diagnostics: %s", logs.String())
	}
}

func TestPanicInDynamicPropPropagates(t *testing.T) {
	rt, _ := newTestRuntime()
	c := Dynamic(rt, 0)

	r := recoverPanic(func() {
		rt.Create("div", Bind("title", func() any {
			c.Value()
			panic("evaluation failed")
		}))
	})
	if r != "evaluation failed" {
		t.Fatalf("recovered %v", r)
	}
	if len(rt.scopes) != 0 {
		t.Error("scope stack not restored")
	}
	if len(rt.table.byCell[c.ID()]) != 0 {
		t.Error("failing prop left a subscription behind")
	}
}

func TestFailedBuildReleasesEarlierProps(t *testing.T) {
	rt, _ := newTestRuntime()
	c := Dynamic(rt, "t")

	r := recoverPanic(func() {
		rt.Create("div",
			On("click", func(*dom.Event) {}),
			Bind("title", func() any { return c.Value() }),
			Bind("alt", func() any { panic("evaluation failed") }),
		)
	})
	if r != "evaluation failed" {
		t.Fatalf("recovered %v", r)
	}
	if n := rt.ListenerCount("click"); n != 0 {
		t.Errorf("click listeners = %d, want 0", n)
	}
	if n := rt.events.size(); n != 0 {
		t.Errorf("handlers = %d, want 0", n)
	}
	if n := rt.table.size(); n != 0 {
		t.Errorf("table entries = %d, want 0", n)
	}
	if len(rt.table.byCell[c.ID()]) != 0 {
		t.Error("earlier prop left a subscription behind")
	}
}

func TestFailedChildReleasesSiblings(t *testing.T) {
	rt, _ := newTestRuntime()
	c := Dynamic(rt, "t")

	r := recoverPanic(func() {
		rt.Create(Fragment,
			c.Text(),
			rt.Create("b", On("click", func(*dom.Event) {})),
			func() any { panic("child failed") },
		)
	})
	if r != "child failed" {
		t.Fatalf("recovered %v", r)
	}
	if n := rt.table.size(); n != 0 {
		t.Errorf("table entries = %d, want 0", n)
	}
	if n := rt.events.size(); n != 0 {
		t.Errorf("handlers = %d, want 0", n)
	}
}

func TestCreateHandleDisposesFragmentRoots(t *testing.T) {
	rt, doc := newTestRuntime()
	c := Dynamic(rt, "a")

	h := rt.CreateHandle(Fragment,
		rt.Create("span", On("click", func(*dom.Event) {}), c.Text()),
		rt.Create("span", Bind("title", func() any { return c.Value() })),
	)
	if len(h.Roots()) != 2 {
		t.Fatalf("roots = %d, want 2", len(h.Roots()))
	}
	mustRender(t, rt, doc.Body(), h.Node(), Append)
	if rt.ListenerCount("click") != 1 {
		t.Fatalf("listeners = %d", rt.ListenerCount("click"))
	}

	h.Dispose()
	h.Dispose()

	if rt.ListenerCount("click") != 0 {
		t.Errorf("listeners after dispose = %d", rt.ListenerCount("click"))
	}
	if rt.table.size() != 0 {
		t.Errorf("subscriptions after dispose = %d", rt.table.size())
	}

	c.Update("b")
	if got := dom.TextContent(doc.Body()); got != "a" {
		t.Errorf("disposed nodes still update: %q", got)
	}
}
