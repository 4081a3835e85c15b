package flatten

import "modelgen/internal/model"

// classifierSet is an insertion-ordered set keyed by classifier identity.
// Adding a classifier that is already present replaces it in place.
type classifierSet struct {
	items []model.Classifier
	index map[model.Classifier]int
}

func newClassifierSet() classifierSet {
	return classifierSet{index: make(map[model.Classifier]int)}
}

func (s *classifierSet) add(c model.Classifier) {
	if c == nil {
		return
	}
	if i, ok := s.index[c]; ok {
		s.items[i] = c
		return
	}
	s.index[c] = len(s.items)
	s.items = append(s.items, c)
}

func (s *classifierSet) list() []model.Classifier {
	out := make([]model.Classifier, len(s.items))
	copy(out, s.items)
	return out
}
