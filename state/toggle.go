// ABOUTME: Small finite-state building blocks shared by the store and the views
// ABOUTME: Toggle is a two-state cell; Set is an insertion-ordered set with O(1) membership
package state

// Toggle is a boolean cell. The zero value is off.
type Toggle struct {
	on bool
}

func (t Toggle) On() bool {
	return t.on
}

// Flip inverts the cell and returns the new value.
func (t *Toggle) Flip() bool {
	t.on = !t.on
	return t.on
}

func (t *Toggle) Set(on bool) {
	t.on = on
}

// Set keeps membership in a map and insertion order in a slice.
// The zero value is an empty, usable set. Mutations copy the storage first,
// so value copies never observe each other's changes.
type Set[K comparable] struct {
	index map[K]struct{}
	order []K
}

func NewSet[K comparable](items ...K) Set[K] {
	s := Set[K]{index: make(map[K]struct{}, len(items))}
	for _, it := range items {
		if _, ok := s.index[it]; ok {
			continue
		}
		s.index[it] = struct{}{}
		s.order = append(s.order, it)
	}
	return s
}

func (s Set[K]) Has(k K) bool {
	_, ok := s.index[k]
	return ok
}

func (s Set[K]) Len() int {
	return len(s.order)
}

func (s *Set[K]) Add(k K) bool {
	if s.Has(k) {
		return false
	}
	*s = NewSet(append(s.Items(), k)...)
	return true
}

func (s *Set[K]) Remove(k K) bool {
	if !s.Has(k) {
		return false
	}
	rest := make([]K, 0, len(s.order)-1)
	for _, v := range s.order {
		if v != k {
			rest = append(rest, v)
		}
	}
	*s = NewSet(rest...)
	return true
}

// Toggle removes k if present, otherwise appends it. It reports whether k is now a member.
func (s *Set[K]) Toggle(k K) bool {
	if s.Remove(k) {
		return false
	}
	s.Add(k)
	return true
}

func (s *Set[K]) Clear() {
	s.index = nil
	s.order = nil
}

// Items returns members in insertion order.
func (s Set[K]) Items() []K {
	if len(s.order) == 0 {
		return nil
	}
	return append([]K(nil), s.order...)
}

func (s Set[K]) Clone() Set[K] {
	return NewSet(s.order...)
}
