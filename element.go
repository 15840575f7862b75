package hashgrid

import (
	"github.com/TheBitDrifter/mask"
)

// element is one tracked entry. cell is the bucket the entry was last
// placed in, which Remove relies on instead of the live position.
type element[T comparable] struct {
	value T
	tags  mask.Mask
	cell  int
}

func (s *storage[T]) AddTag(value T, tag Tag) error {
	if !s.mu.TryLock() {
		return LockedStorageError{}
	}
	defer s.mu.Unlock()
	el, _ := s.lookup(value)
	if el == nil {
		return ElementNotFoundError{Element: value}
	}
	bit := s.RowIndexFor(tag)
	var single mask.Mask
	single.Mark(bit)
	if el.tags.ContainsAll(single) {
		return TagExistsError{Tag: tag}
	}
	el.tags.Mark(bit)
	return nil
}

func (s *storage[T]) RemoveTag(value T, tag Tag) error {
	if !s.mu.TryLock() {
		return LockedStorageError{}
	}
	defer s.mu.Unlock()
	el, _ := s.lookup(value)
	if el == nil {
		return ElementNotFoundError{Element: value}
	}
	bit := s.RowIndexFor(tag)
	var single mask.Mask
	single.Mark(bit)
	if !el.tags.ContainsAll(single) {
		return TagNotFoundError{Tag: tag}
	}
	el.tags.Unmark(bit)
	return nil
}

// lookup returns the first tracked entry equal to value and its position in the tracked set
func (s *storage[T]) lookup(value T) (*element[T], int) {
	for i, el := range s.elements {
		if el.value == value {
			return el, i
		}
	}
	return nil, -1
}
