package snapp

import (
	"testing"
)

func TestDynamicIDsIncrease(t *testing.T) {
	rt, _ := newTestRuntime()
	a := Dynamic(rt, 0)
	b := Dynamic(rt, "x")

	if a.ID() >= b.ID() {
		t.Errorf("ids not increasing: %d then %d", a.ID(), b.ID())
	}

	other, _ := newTestRuntime()
	if c := Dynamic(other, 0); c.ID() != 1 {
		t.Errorf("a new runtime should start at id 1, got %d", c.ID())
	}
}

func TestCellValueAndUpdate(t *testing.T) {
	rt, _ := newTestRuntime()
	c := Dynamic(rt, 10)

	if c.Value() != 10 || c.Peek() != 10 {
		t.Fatalf("initial value = %d/%d, want 10", c.Value(), c.Peek())
	}

	c.Update(20)
	if c.Peek() != 20 {
		t.Errorf("after Update(20) = %d", c.Peek())
	}

	c.Modify(func(n int) int { return n + 1 })
	if c.Peek() != 21 {
		t.Errorf("after Modify = %d, want 21", c.Peek())
	}

	if c.String() != "21" {
		t.Errorf("String() = %q", c.String())
	}
}

func TestUpdateWithEqualValueIsNoOp(t *testing.T) {
	rt, _ := newTestRuntime()
	c := Dynamic(rt, "same")

	runs := 0
	rt.Create("div", Bind("title", func() any {
		runs++
		return c.Value()
	}))
	if runs != 1 {
		t.Fatalf("initial runs = %d, want 1", runs)
	}

	c.Update("same")
	if runs != 1 {
		t.Errorf("equal update ran recompute: runs = %d", runs)
	}

	c.Update("other")
	if runs != 2 {
		t.Errorf("changed update runs = %d, want 2", runs)
	}
}

func TestWithEquals(t *testing.T) {
	rt, _ := newTestRuntime()
	type point struct{ X, Y int }

	// Only X matters.
	c := Dynamic(rt, point{1, 1}).WithEquals(func(a, b point) bool { return a.X == b.X })
	runs := 0
	rt.Create("div", Bind("data-x", func() any {
		runs++
		return c.Value().X
	}))

	c.Update(point{1, 5})
	if runs != 1 {
		t.Errorf("custom equal update should not propagate, runs = %d", runs)
	}
	if c.Peek().Y != 1 {
		t.Errorf("equal update should not store the value, got %+v", c.Peek())
	}

	c.Update(point{2, 5})
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestSliceCellUsesDeepEqual(t *testing.T) {
	rt, _ := newTestRuntime()
	c := Dynamic(rt, []string{"a", "b"})
	runs := 0
	rt.Create("ul", func() any {
		runs++
		return len(c.Value())
	})

	c.Update([]string{"a", "b"})
	if runs != 1 {
		t.Errorf("deep-equal slice propagated, runs = %d", runs)
	}
	c.Update([]string{"a"})
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestDefaultEquals(t *testing.T) {
	tests := []struct {
		name string
		eq   bool
	}{
		{"int", defaultEquals(1, 1)},
		{"float", defaultEquals(1.5, 1.5)},
		{"string", defaultEquals("a", "a")},
		{"bool", defaultEquals(true, true)},
		{"map", defaultEquals(map[string]int{"a": 1}, map[string]int{"a": 1})},
	}
	for _, tt := range tests {
		if !tt.eq {
			t.Errorf("%s: equal values reported unequal", tt.name)
		}
	}

	if defaultEquals(1, 2) || defaultEquals("a", "b") || defaultEquals([]int{1}, []int{2}) {
		t.Error("unequal values reported equal")
	}
}
