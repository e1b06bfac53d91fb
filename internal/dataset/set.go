package dataset

import "sort"

// hashSet is a set of content hashes that remembers insertion order
type hashSet struct {
	order []string
	index map[string]struct{}
}

func newHashSet() *hashSet {
	return &hashSet{index: make(map[string]struct{})}
}

// add inserts hash and reports whether it was new
func (s *hashSet) add(hash string) bool {
	if _, ok := s.index[hash]; ok {
		return false
	}
	s.index[hash] = struct{}{}
	s.order = append(s.order, hash)
	return true
}

func (s *hashSet) has(hash string) bool {
	_, ok := s.index[hash]
	return ok
}

func (s *hashSet) len() int {
	return len(s.order)
}

// list returns the members in insertion order, or sorted when sorted is set
func (s *hashSet) list(sorted bool) []string {
	out := append([]string(nil), s.order...)
	if sorted {
		sort.Strings(out)
	}
	return out
}
