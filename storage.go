package hashgrid

import (
	"fmt"
	"iter"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/TheBitDrifter/table"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ Storage[int] = &storage[int]{}

// storage guards its buckets with mu. Readers hold it shared for the
// life of a cursor; mutations and queue drains only ever TryLock it, so a
// reader that re-enters a query never waits behind a writer.
type storage[T comparable] struct {
	mu        sync.RWMutex
	locks     atomic.Int32
	tagMu     sync.Mutex
	tagBits   map[Tag]uint32
	schema    table.Schema
	position  PositionFunc[T]
	hash      Hash
	opQueue   opQueue[T]
	elements  []*element[T]
	positions []r3.Vec
	grid      [][]*element[T]
}

func newStorage[T comparable](schema table.Schema, position PositionFunc[T], cellSize float64, nx, ny, nz int) (*storage[T], error) {
	if position == nil {
		return nil, fmt.Errorf("position function is required")
	}
	if schema == nil {
		schema = table.Factory.NewSchema()
	}
	sto := &storage[T]{
		schema:   schema,
		tagBits:  make(map[Tag]uint32),
		position: position,
	}
	if err := sto.Rebuild(cellSize, nx, ny, nz); err != nil {
		return nil, fmt.Errorf("failed to build grid: %w", err)
	}
	return sto, nil
}

func (s *storage[T]) Hash() Hash {
	return s.hash
}

func (s *storage[T]) Len() int {
	return len(s.elements)
}

// All yields the tracked elements in insertion order
func (s *storage[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, el := range s.elements {
			if !yield(el.value) {
				return
			}
		}
	}
}

func (s *storage[T]) Add(value T, tags ...Tag) error {
	if !s.mu.TryLock() {
		return LockedStorageError{}
	}
	defer s.mu.Unlock()
	s.add(value, tags...)
	return nil
}

func (s *storage[T]) add(value T, tags ...Tag) {
	pos := s.position(value)
	el := &element[T]{
		value: value,
		tags:  s.maskFor(tags...),
		cell:  s.hash.CellID(pos),
	}
	s.elements = append(s.elements, el)
	s.positions = append(s.positions, pos)
	s.grid[el.cell] = append(s.grid[el.cell], el)
}

// Remove drops the first tracked entry equal to value. The entry is taken
// out of the bucket it was last indexed into, even if it moved since.
func (s *storage[T]) Remove(value T) error {
	if !s.mu.TryLock() {
		return LockedStorageError{}
	}
	defer s.mu.Unlock()
	return s.remove(value)
}

func (s *storage[T]) remove(value T) error {
	el, i := s.lookup(value)
	if el == nil {
		return ElementNotFoundError{Element: value}
	}
	bucket := s.grid[el.cell]
	if j := slices.Index(bucket, el); j >= 0 {
		s.grid[el.cell] = slices.Delete(bucket, j, j+1)
	}
	s.elements = slices.Delete(s.elements, i, i+1)
	s.positions = slices.Delete(s.positions, i, i+1)
	return nil
}

// Find scans the tracked set in insertion order
func (s *storage[T]) Find(predicate func(T) bool) (T, bool) {
	for _, el := range s.elements {
		if predicate(el.value) {
			return el.value, true
		}
	}
	var zero T
	return zero, false
}

func (s *storage[T]) Neighbors(center r3.Vec, distance float64) iter.Seq[T] {
	return s.NeighborsMatching(center, distance, nil)
}

// NeighborsMatching yields elements strictly closer than distance to center
// whose tags satisfy filter. A nil filter accepts every element. Positions
// are re-read through the position function while iterating, and the storage
// stays locked until the sequence finishes or the caller stops early.
func (s *storage[T]) NeighborsMatching(center r3.Vec, distance float64, filter QueryNode) iter.Seq[T] {
	return func(yield func(T) bool) {
		cursor := newCursor(s, center, distance, filter)
		defer cursor.Reset()
		for cursor.Next() {
			if !yield(cursor.Element()) {
				return
			}
		}
	}
}

// Rebuild replaces the grid geometry and re-indexes every tracked element.
// The previous geometry is kept when the new one is invalid.
func (s *storage[T]) Rebuild(cellSize float64, nx, ny, nz int) error {
	if !s.mu.TryLock() {
		return LockedStorageError{}
	}
	defer s.mu.Unlock()
	hash, err := NewHash(cellSize, nx, ny, nz)
	if err != nil {
		return err
	}
	s.hash = hash
	if total := hash.NumCells(); len(s.grid) != total {
		s.grid = make([][]*element[T], total)
	}
	s.update()
	return nil
}

func (s *storage[T]) Update() error {
	if !s.mu.TryLock() {
		return LockedStorageError{}
	}
	defer s.mu.Unlock()
	s.update()
	return nil
}

// update re-reads every position and rebuilds the buckets. Positions and
// cells are computed on partitions of the tracked set in parallel, each
// worker writing only its own slots; buckets are then filled sequentially
// in tracked order so no bucket is ever appended to concurrently.
func (s *storage[T]) update() {
	for i := range s.grid {
		clear(s.grid[i])
		s.grid[i] = s.grid[i][:0]
	}

	n := len(s.elements)
	s.positions = slices.Grow(s.positions[:0], n)[:n]

	workers := Config.workersFor(n)
	if workers <= 1 {
		s.locate(0, n)
	} else {
		var g errgroup.Group
		g.SetLimit(workers)
		chunk := (n + workers - 1) / workers
		for lo := 0; lo < n; lo += chunk {
			hi := min(lo+chunk, n)
			g.Go(func() error {
				s.locate(lo, hi)
				return nil
			})
		}
		_ = g.Wait()
	}

	for _, el := range s.elements {
		s.grid[el.cell] = append(s.grid[el.cell], el)
	}
}

// locate refreshes the cached position and cell of elements[lo:hi]
func (s *storage[T]) locate(lo, hi int) {
	for i := lo; i < hi; i++ {
		el := s.elements[i]
		pos := s.position(el.value)
		s.positions[i] = pos
		el.cell = s.hash.CellID(pos)
	}
}

// RowIndexFor resolves a tag to its mask bit, registering it on first use.
// Lookups are serialized so concurrent queries can resolve their tags.
func (s *storage[T]) RowIndexFor(tag Tag) uint32 {
	s.tagMu.Lock()
	defer s.tagMu.Unlock()
	if bit, ok := s.tagBits[tag]; ok {
		return bit
	}
	s.schema.Register(tag)
	bit := s.schema.RowIndexFor(tag)
	s.tagBits[tag] = bit
	return bit
}

func (s *storage[T]) Locked() bool {
	return s.locks.Load() > 0
}

// Lock takes a shared hold on the buckets. Several readers may hold it at
// once; mutations are rejected or queued until the last one unlocks.
func (s *storage[T]) Lock() {
	s.mu.RLock()
	s.locks.Add(1)
}

// Unlock releases one hold taken by Lock and then applies queued
// operations if no other reader is left. A stray Unlock only drains.
func (s *storage[T]) Unlock() {
	for {
		n := s.locks.Load()
		if n <= 0 {
			break
		}
		if s.locks.CompareAndSwap(n, n-1) {
			s.mu.RUnlock()
			break
		}
	}
	s.drain()
}

// Close releases every reference held by the storage. The grid geometry is
// kept, so the storage can be reused afterwards.
func (s *storage[T]) Close() error {
	if !s.mu.TryLock() {
		return LockedStorageError{}
	}
	defer s.mu.Unlock()
	clear(s.elements)
	s.elements = nil
	s.positions = nil
	for i := range s.grid {
		clear(s.grid[i])
		s.grid[i] = nil
	}
	s.opQueue.take()
	return nil
}
