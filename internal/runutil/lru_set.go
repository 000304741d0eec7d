// internal/runutil/lru_set.go
package runutil

import "container/list"

// DefaultSetCap bounds an LRUSet created with a non-positive capacity.
const DefaultSetCap = 200_000

// LRUSet is a size-bounded set: Add refreshes a key, and inserting past the
// capacity evicts the least recently added or refreshed key.
type LRUSet[K comparable] struct {
	cap int
	ll  *list.List // front = most recent
	m   map[K]*list.Element
}

func NewLRUSet[K comparable](capacity int) *LRUSet[K] {
	if capacity <= 0 {
		capacity = DefaultSetCap
	}
	return &LRUSet[K]{cap: capacity, ll: list.New(), m: make(map[K]*list.Element)}
}

// Add inserts k and reports whether it was already present.
func (s *LRUSet[K]) Add(k K) bool {
	if e, ok := s.m[k]; ok {
		s.ll.MoveToFront(e)
		return true
	}
	s.m[k] = s.ll.PushFront(k)
	if s.ll.Len() > s.cap {
		oldest := s.ll.Back()
		s.ll.Remove(oldest)
		delete(s.m, oldest.Value.(K))
	}
	return false
}

// Contains reports membership without refreshing k.
func (s *LRUSet[K]) Contains(k K) bool {
	_, ok := s.m[k]
	return ok
}

func (s *LRUSet[K]) Len() int { return s.ll.Len() }
