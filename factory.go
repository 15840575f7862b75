package hashgrid

import (
	"iter"

	"github.com/TheBitDrifter/table"
	"gonum.org/v1/gonum/spatial/r3"
)

type factory struct{}

var Factory factory

func (f factory) NewHash(cellSize float64, nx, ny, nz int) (Hash, error) {
	return NewHash(cellSize, nx, ny, nz)
}

func (f factory) NewQuery() Query {
	return newQuery()
}

// NewFilter returns a node matching elements that carry every given tag
func (f factory) NewFilter(tags ...Tag) QueryNode {
	return newLeafNode(tags)
}

// FactoryNewStorage creates a storage over a cellSize grid of nx*ny*nz cells.
// A nil schema gets a fresh one.
func FactoryNewStorage[T comparable](schema table.Schema, position PositionFunc[T], cellSize float64, nx, ny, nz int) (Storage[T], error) {
	sto, err := newStorage(schema, position, cellSize, nx, ny, nz)
	if err != nil {
		return nil, err
	}
	return sto, nil
}

func FactoryNewTag[T any]() Tag {
	return table.FactoryNewElementType[T]()
}

// FactoryNewCursor creates a cursor over the neighbors of center. The
// storage must have been created by FactoryNewStorage.
func FactoryNewCursor[T comparable](sto Storage[T], center r3.Vec, distance float64, filter QueryNode) *Cursor[T] {
	return newCursor(sto.(*storage[T]), center, distance, filter)
}

// NeighborsOf yields the neighbors of center whose dynamic type is S
func NeighborsOf[S any, T comparable](sto Storage[T], center r3.Vec, distance float64) iter.Seq[S] {
	return func(yield func(S) bool) {
		for value := range sto.Neighbors(center, distance) {
			s, ok := any(value).(S)
			if !ok {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}
