package view

import (
	"slices"

	"userapp/internal/core/domain"
)

// Selection is the set of checked row ids, in the order they were checked.
type Selection struct {
	ids []int64
}

func (s *Selection) Toggle(id int64) {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return
	}
	s.ids = append(s.ids, id)
}

// SelectAll replaces the selection with every id in filtered.
func (s *Selection) SelectAll(filtered []domain.User) {
	s.ids = make([]int64, 0, len(filtered))
	for _, u := range filtered {
		s.ids = append(s.ids, u.ID)
	}
}

func (s *Selection) Clear() { s.ids = nil }

func (s *Selection) Contains(id int64) bool { return slices.Contains(s.ids, id) }

func (s *Selection) Len() int { return len(s.ids) }

func (s *Selection) IDs() []int64 { return slices.Clone(s.ids) }

// AllSelected reports whether the select-all box is checked for filtered.
func (s *Selection) AllSelected(filtered []domain.User) bool {
	return len(filtered) > 0 && len(s.ids) == len(filtered)
}
