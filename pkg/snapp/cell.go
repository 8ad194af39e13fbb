package snapp

import (
	"fmt"
	"reflect"
)

// CellID identifies a cell within its runtime. IDs increase monotonically
// and are never reused.
type CellID uint64

// Cell is a reactive value. Reading it with Value inside a dynamic prop,
// style or text child records a dependency; Update re-runs exactly the
// values that depend on it.
type Cell[T any] struct {
	id    CellID
	rt    *Runtime
	value T

	// equal decides whether an update is a change. nil uses defaultEquals.
	equal func(T, T) bool
}

// Dynamic creates a cell owned by rt.
func Dynamic[T any](rt *Runtime, initial T) *Cell[T] {
	c := &Cell[T]{
		id:    rt.nextCellID(),
		rt:    rt,
		value: initial,
	}
	rt.metrics.cellCreated()
	return c
}

// ID returns the cell's identifier.
func (c *Cell[T]) ID() CellID {
	return c.id
}

// Value returns the current value and records the read in the active
// tracking scope, if any.
func (c *Cell[T]) Value() T {
	c.rt.track(c.id)
	return c.value
}

// Peek returns the current value without recording a dependency.
func (c *Cell[T]) Peek() T {
	return c.value
}

// Update stores v and synchronously recomputes every subscribed value.
// Updating with a value equal to the current one does nothing.
func (c *Cell[T]) Update(v T) {
	if c.equals(c.value, v) {
		return
	}
	c.value = v
	c.rt.metrics.cellUpdated()
	c.rt.notify(c.id)
}

// Modify updates the cell with fn applied to the current value.
func (c *Cell[T]) Modify(fn func(T) T) {
	c.Update(fn(c.value))
}

// WithEquals sets a custom equality function and returns the cell.
func (c *Cell[T]) WithEquals(fn func(T, T) bool) *Cell[T] {
	c.equal = fn
	return c
}

// Text returns a dynamic child that renders the cell's value.
func (c *Cell[T]) Text() func() any {
	return func() any { return c.Value() }
}

// String formats the current value without tracking.
func (c *Cell[T]) String() string {
	return fmt.Sprint(c.value)
}

func (c *Cell[T]) equals(a, b T) bool {
	if c.equal != nil {
		return c.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for scalar types and reflect.DeepEqual otherwise.
func defaultEquals[T any](a, b T) bool {
	switch any(a).(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, string, bool:
		return any(a) == any(b)
	default:
		return reflect.DeepEqual(a, b)
	}
}
