package state

import "github.com/atomicstack/tmux-tab-rename/internal/pane"

// IndexStore owns the pane index. Replace swaps the whole index; entries
// are never patched in place.
type IndexStore interface {
	Index() pane.Index
	Replace(pane.Index)
	Len() int
}

type indexStore struct {
	index pane.Index
}

func NewIndexStore() IndexStore {
	return &indexStore{index: pane.Index{}}
}

func (s *indexStore) Index() pane.Index {
	return s.index.Clone()
}

func (s *indexStore) Replace(idx pane.Index) {
	if idx == nil {
		idx = pane.Index{}
	}
	s.index = idx.Clone()
}

func (s *indexStore) Len() int {
	return s.index.Len()
}
