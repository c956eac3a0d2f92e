package extract

import "encoding/json"

// OrderedSet is a string set that remembers insertion order.
type OrderedSet struct {
	items []string
	index map[string]struct{}
}

func NewOrderedSet(values ...string) *OrderedSet {
	s := &OrderedSet{index: make(map[string]struct{}, len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v and reports whether it was new.
func (s *OrderedSet) Add(v string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *OrderedSet) Contains(v string) bool {
	_, ok := s.index[v]
	return ok
}

func (s *OrderedSet) Len() int {
	return len(s.items)
}

// Values returns the members in insertion order.
func (s *OrderedSet) Values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *OrderedSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}
