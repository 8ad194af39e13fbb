package dom

import (
	"testing"
)

func TestQuerySelector(t *testing.T) {
	doc, err := ParseString(`<body>
		<ul id="list"><li class="item">a</li><li class="item on">b</li></ul>
	</body>`)
	if err != nil {
		t.Fatal(err)
	}

	first, err := doc.QuerySelector("#list .item")
	if err != nil {
		t.Fatalf("QuerySelector() error: %v", err)
	}
	if got := TextContent(first); got != "a" {
		t.Errorf("first = %q, want a", got)
	}

	all, err := doc.QuerySelectorAll("li.item")
	if err != nil {
		t.Fatalf("QuerySelectorAll() error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("matches = %d, want 2", len(all))
	}

	miss, err := doc.QuerySelector(".missing")
	if err != nil || miss != nil {
		t.Errorf("QuerySelector(.missing) = %v, %v", miss, err)
	}

	ok, err := Matches(all[1], ".on")
	if err != nil || !ok {
		t.Errorf("Matches(.on) = %v, %v", ok, err)
	}
}

func TestQuerySelectorInvalid(t *testing.T) {
	doc := NewDocument()

	if _, err := doc.QuerySelector("div["); err == nil {
		t.Error("expected error for malformed selector")
	}
	if _, err := doc.QuerySelectorAll(""); err == nil {
		t.Error("expected error for empty selector")
	}
}
