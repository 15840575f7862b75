package hashgrid

import (
	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// Tag marks a capability of a tracked element
// Tags can be used to build queries that narrow neighbor searches
type Tag interface {
	table.ElementType
}

// TagIndexer resolves tags to their bit in an element's tag mask
type TagIndexer interface {
	RowIndexFor(Tag) uint32
}

// maskFor returns the combined mask of tags, registering any it has not seen
func (s *storage[T]) maskFor(tags ...Tag) mask.Mask {
	var m mask.Mask
	for _, tag := range tags {
		if tag == nil {
			continue
		}
		m.Mark(s.RowIndexFor(tag))
	}
	return m
}
