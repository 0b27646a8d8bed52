package content

import "sort"

// LeafSet is a set of leaf nodes keyed by node id. The zero value and a nil
// *LeafSet are both empty.
type LeafSet struct {
	ids map[string]struct{}
}

// NewLeafSet builds a set from nodes, skipping topics.
func NewLeafSet(nodes ...Node) *LeafSet {
	s := &LeafSet{ids: make(map[string]struct{}, len(nodes))}
	for _, n := range nodes {
		s.Add(n)
	}
	return s
}

// Add inserts n unless it is a topic. Returns true if n was added.
func (s *LeafSet) Add(n Node) bool {
	if n.IsTopic() {
		return false
	}
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, ok := s.ids[n.ID]; ok {
		return false
	}
	s.ids[n.ID] = struct{}{}
	return true
}

// Contains reports whether n is in the set.
func (s *LeafSet) Contains(n Node) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[n.ID]
	return ok
}

// Len returns the number of leaves in the set.
func (s *LeafSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Empty reports whether the set has no leaves.
func (s *LeafSet) Empty() bool {
	return s.Len() == 0
}

// sortedIDs returns the node ids in the set, sorted.
func (s *LeafSet) sortedIDs() []string {
	ids := make([]string, 0, s.Len())
	if s != nil {
		for id := range s.ids {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
