package snapp

// scope collects the cells read while one value is computed.
type scope struct {
	deps []CellID
	seen map[CellID]struct{}
}

func (s *scope) add(id CellID) {
	if _, ok := s.seen[id]; ok {
		return
	}
	if s.seen == nil {
		s.seen = make(map[CellID]struct{})
	}
	s.seen[id] = struct{}{}
	s.deps = append(s.deps, id)
}

// track records a read in the innermost scope. Outer scopes never see reads
// made while an inner one is open.
func (rt *Runtime) track(id CellID) {
	if n := len(rt.scopes); n > 0 {
		rt.scopes[n-1].add(id)
	}
}

// collect runs fn in a fresh scope and returns its result together with the
// cells it read, in first-read order. The scope is popped even if fn panics.
func (rt *Runtime) collect(fn func() any) (any, []CellID) {
	s := &scope{}
	depth := len(rt.scopes)
	rt.scopes = append(rt.scopes, s)
	defer func() {
		rt.scopes[depth] = nil
		rt.scopes = rt.scopes[:depth]
	}()

	value := fn()
	return value, s.deps
}

// Untracked runs fn without recording any of its reads, even when called
// from inside a dynamic value.
func Untracked[T any](rt *Runtime, fn func() T) T {
	var out T
	rt.collect(func() any {
		out = fn()
		return nil
	})
	return out
}
