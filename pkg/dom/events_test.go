package dom

import (
	"testing"

	"golang.org/x/net/html"
)

func TestDispatchReachesRootListener(t *testing.T) {
	doc := NewDocument()
	button := doc.CreateElement("button")
	doc.Append(doc.Body(), button)

	var got []*Event
	id := doc.AddEventListener("click", func(e *Event) {
		got = append(got, e)
	})
	if n := doc.ListenerCount("click"); n != 1 {
		t.Fatalf("ListenerCount() = %d, want 1", n)
	}

	if !doc.Dispatch(button, "click") {
		t.Error("Dispatch() = false, want true")
	}
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
	if got[0].Type != "click" || got[0].Target != button {
		t.Errorf("event = %+v", got[0])
	}

	if !doc.RemoveEventListener("click", id) {
		t.Error("RemoveEventListener() = false")
	}
	if n := doc.ListenerCount("click"); n != 0 {
		t.Errorf("ListenerCount() = %d after removal", n)
	}

	doc.Dispatch(button, "click")
	if len(got) != 1 {
		t.Errorf("removed listener still called")
	}
}

func TestDispatchOnDetachedNodeIsDropped(t *testing.T) {
	doc := NewDocument()
	detached := doc.CreateElement("button")

	calls := 0
	doc.AddEventListener("click", func(*Event) { calls++ })
	doc.Dispatch(detached, "click")

	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestPreventDefault(t *testing.T) {
	doc := NewDocument()
	form := doc.CreateElement("form")
	doc.Append(doc.Body(), form)

	doc.AddEventListener("submit", func(e *Event) { e.PreventDefault() })

	ev := NewEvent("submit", form)
	if doc.DispatchEvent(ev) {
		t.Error("DispatchEvent() = true, want false")
	}
	if !ev.DefaultPrevented() {
		t.Error("DefaultPrevented() = false")
	}
}

func TestOnceListener(t *testing.T) {
	doc := NewDocument()
	calls := 0
	doc.AddEventListenerOnce(ReadyEvent, func(e *Event) {
		calls++
		if e.Target != doc.Root() {
			t.Errorf("target = %v, want document root", e.Target)
		}
	})

	doc.DispatchEvent(NewEvent(ReadyEvent, nil))
	doc.DispatchEvent(NewEvent(ReadyEvent, nil))

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if n := doc.ListenerCount(ReadyEvent); n != 0 {
		t.Errorf("ListenerCount() = %d, want 0", n)
	}
}

func TestEventDetail(t *testing.T) {
	doc := NewDocument()
	input := doc.CreateElement("input")
	doc.Append(doc.Body(), input)

	var value any
	doc.AddEventListener("input", func(e *Event) { value = e.Detail })

	ev := NewEvent("input", input)
	ev.Detail = "typed"
	doc.DispatchEvent(ev)

	if value != "typed" {
		t.Errorf("detail = %v, want typed", value)
	}
}

func TestHasEventHandler(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")

	tests := []struct {
		node  string
		event string
		want  bool
	}{
		{"div", "click", true},
		{"div", "MouseOver", true},
		{"div", "mouseenterx", false},
		{"div", "resize", false},
		{"body", "resize", true},
		{"text", "click", false},
	}
	nodes := map[string]*html.Node{
		"div":  div,
		"body": doc.Body(),
		"text": doc.CreateTextNode("x"),
	}

	for _, tt := range tests {
		if got := HasEventHandler(nodes[tt.node], tt.event); got != tt.want {
			t.Errorf("HasEventHandler(%s, %q) = %v, want %v", tt.node, tt.event, got, tt.want)
		}
	}
}
