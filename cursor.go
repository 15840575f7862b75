package hashgrid

import (
	iter_util "github.com/TheBitDrifter/util/iter"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ iCursor[int] = &Cursor[int]{}

// Cursor steps through the elements within a radius of a center point.
// The storage is held shared from the first call to Next until the cursor
// is exhausted or Reset; other cursors may run alongside it.
type Cursor[T comparable] struct {
	storage *storage[T]
	filter  QueryNode
	match   Matcher
	center  r3.Vec
	radius  float64

	// Current iteration state
	current   T
	cellIndex int
	index     int
	cells     []int

	initialized bool
}

func newCursor[T comparable](sto *storage[T], center r3.Vec, distance float64, filter QueryNode) *Cursor[T] {
	return &Cursor[T]{
		storage: sto,
		filter:  filter,
		center:  center,
		radius:  distance,
	}
}

func (c *Cursor[T]) Next() bool {
	if !c.initialized {
		c.initialize()
	}
	r2 := c.radius * c.radius
	for c.cellIndex < len(c.cells) {
		bucket := c.storage.grid[c.cells[c.cellIndex]]
		for c.index < len(bucket) {
			el := bucket[c.index]
			c.index++
			if c.match != nil && !c.match(el.tags) {
				continue
			}
			if r3.Norm2(r3.Sub(c.storage.position(el.value), c.center)) < r2 {
				c.current = el.value
				return true
			}
		}
		c.cellIndex++
		c.index = 0
	}
	c.Reset()
	return false
}

// Element returns the element found by the last successful Next
func (c *Cursor[T]) Element() T {
	return c.current
}

func (c *Cursor[T]) initialize() {
	if c.initialized {
		return
	}
	c.storage.Lock()
	c.initialized = true
	if c.filter != nil {
		c.match = c.filter.Compile(c.storage)
	}
	if !(c.radius > 0) {
		c.cells = nil
		return
	}
	c.cells = iter_util.Collect(c.storage.hash.CellIDs(c.center, c.radius))
}

// Candidates reports how many cells the search visits. It does not lock
// the storage.
func (c *Cursor[T]) Candidates() int {
	if c.initialized {
		return len(c.cells)
	}
	if !(c.radius > 0) {
		return 0
	}
	n := 0
	for range c.storage.hash.CellIDs(c.center, c.radius) {
		n++
	}
	return n
}

// Reset rewinds the cursor and releases its lock on the storage
func (c *Cursor[T]) Reset() {
	if !c.initialized {
		return
	}
	var zero T
	c.current = zero
	c.cellIndex = 0
	c.index = 0
	c.cells = nil
	c.match = nil
	c.initialized = false
	c.storage.Unlock()
}
