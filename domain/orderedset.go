package domain

// OrderedSet is a string set that preserves insertion order. Report
// deduplication must not depend on map iteration order, so aggregation
// always goes through this type.
type OrderedSet struct {
	seen   map[string]struct{}
	values []string
}

// NewOrderedSet creates an empty ordered set
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{seen: make(map[string]struct{})}
}

// Add inserts value if not already present. Returns true if inserted.
func (s *OrderedSet) Add(value string) bool {
	if _, ok := s.seen[value]; ok {
		return false
	}
	s.seen[value] = struct{}{}
	s.values = append(s.values, value)
	return true
}

// AddAll inserts every value in order
func (s *OrderedSet) AddAll(values []string) {
	for _, v := range values {
		s.Add(v)
	}
}

// Contains reports whether value is in the set
func (s *OrderedSet) Contains(value string) bool {
	_, ok := s.seen[value]
	return ok
}

// Len returns the number of distinct values
func (s *OrderedSet) Len() int {
	return len(s.values)
}

// Values returns the distinct values in insertion order. The returned
// slice is a copy; mutating it does not affect the set.
func (s *OrderedSet) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}
