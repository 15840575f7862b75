package hashgrid

import (
	"iter"

	"github.com/TheBitDrifter/mask"
	"gonum.org/v1/gonum/spatial/r3"
)

// PositionFunc reports the current position of a tracked element.
// It is called concurrently during Update and must not mutate shared state.
type PositionFunc[T any] func(T) r3.Vec

type Storage[T comparable] interface {
	Add(element T, tags ...Tag) error
	Remove(element T) error
	EnqueueAdd(element T, tags ...Tag) error
	EnqueueRemove(element T) error
	EnqueueUpdate() error
	AddTag(element T, tag Tag) error
	RemoveTag(element T, tag Tag) error
	Find(predicate func(T) bool) (T, bool)
	Neighbors(center r3.Vec, distance float64) iter.Seq[T]
	NeighborsMatching(center r3.Vec, distance float64, filter QueryNode) iter.Seq[T]
	Rebuild(cellSize float64, nx, ny, nz int) error
	Update() error
	Stat() [][][]int
	StatAt(position r3.Vec) int
	Summary() GridStats
	Hash() Hash
	All() iter.Seq[T]
	Len() int
	RowIndexFor(Tag) uint32
	Locked() bool
	Lock()
	Unlock()
	Close() error
}

type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

// QueryNode decides whether an element with the given tag mask matches
type QueryNode interface {
	Evaluate(tags mask.Mask, indexer TagIndexer) bool
	Compile(indexer TagIndexer) Matcher
}

type iCursor[T comparable] interface {
	Next() bool
	Element() T
	Reset()
}

// GridStats summarises bucket occupancy for tuning cell size and dimensions
type GridStats struct {
	TotalCells     int
	NonEmptyCells  int
	TotalElements  int
	MaxInCell      int
	AvgPerNonEmpty float64
}
