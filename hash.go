package hashgrid

import (
	"iter"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Hash maps 3D positions onto the cells of a uniform grid.
//
// The grid's minimum corner sits at the world origin, so the domain covers
// [0, nx*cellSize) x [0, ny*cellSize) x [0, nz*cellSize). Positions outside
// the domain are clamped onto the nearest boundary cell. Cells are flattened
// row-major: ix + nx*(iy + ny*iz).
//
// Build a Hash with NewHash. The zero Hash has no cells: CellID returns -1,
// Coords returns (-1, -1, -1), CellIDs yields nothing and CellIDAt errors.
type Hash struct {
	cellSize float64
	nx       int
	ny       int
	nz       int
}

// NewHash validates the geometry and returns the grid it describes.
func NewHash(cellSize float64, nx, ny, nz int) (Hash, error) {
	invalid := InvalidConfigurationError{CellSize: cellSize, Nx: nx, Ny: ny, Nz: nz}
	if !(cellSize > 0) || math.IsInf(cellSize, 1) {
		return Hash{}, invalid
	}
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return Hash{}, invalid
	}
	if nx > math.MaxInt/ny || nx*ny > math.MaxInt/nz {
		return Hash{}, invalid
	}
	return Hash{
		cellSize: cellSize,
		nx:       nx,
		ny:       ny,
		nz:       nz,
	}, nil
}

func (h Hash) CellSize() float64 {
	return h.cellSize
}

// Dims returns the cell counts along x, y and z.
func (h Hash) Dims() (nx, ny, nz int) {
	return h.nx, h.ny, h.nz
}

func (h Hash) NumCells() int {
	return h.nx * h.ny * h.nz
}

// Bounds returns the axis-aligned box covered by the grid.
func (h Hash) Bounds() r3.Box {
	return r3.Box{
		Max: r3.Vec{
			X: float64(h.nx) * h.cellSize,
			Y: float64(h.ny) * h.cellSize,
			Z: float64(h.nz) * h.cellSize,
		},
	}
}

// CellID returns the index of the cell containing p, clamping each axis into the grid.
func (h Hash) CellID(p r3.Vec) int {
	if h.nx == 0 {
		return -1
	}
	return h.cellID(
		h.axis(p.X, h.nx),
		h.axis(p.Y, h.ny),
		h.axis(p.Z, h.nz),
	)
}

// CellIDAt flattens an explicit coordinate triple.
func (h Hash) CellIDAt(ix, iy, iz int) (int, error) {
	if ix < 0 || ix >= h.nx || iy < 0 || iy >= h.ny || iz < 0 || iz >= h.nz {
		return -1, CoordinateOutOfRangeError{
			X: ix, Y: iy, Z: iz,
			Nx: h.nx, Ny: h.ny, Nz: h.nz,
		}
	}
	return h.cellID(ix, iy, iz), nil
}

// Coords is the inverse of CellIDAt. The result is undefined for ids outside [0, NumCells()).
func (h Hash) Coords(id int) (ix, iy, iz int) {
	if h.nx == 0 {
		return -1, -1, -1
	}
	ix = id % h.nx
	id /= h.nx
	iy = id % h.ny
	iz = id / h.ny
	return ix, iy, iz
}

// CellIDs yields every cell overlapped by the bounding box of the sphere
// (center, radius). The box over-approximates the sphere; callers still
// need an exact distance test on the contents.
func (h Hash) CellIDs(center r3.Vec, radius float64) iter.Seq[int] {
	return func(yield func(int) bool) {
		if !(radius >= 0) {
			return
		}
		x0, x1 := h.axis(center.X-radius, h.nx), h.axis(center.X+radius, h.nx)
		y0, y1 := h.axis(center.Y-radius, h.ny), h.axis(center.Y+radius, h.ny)
		z0, z1 := h.axis(center.Z-radius, h.nz), h.axis(center.Z+radius, h.nz)

		for iz := z0; iz <= z1; iz++ {
			for iy := y0; iy <= y1; iy++ {
				row := h.nx * (iy + h.ny*iz)
				for ix := x0; ix <= x1; ix++ {
					if !yield(ix + row) {
						return
					}
				}
			}
		}
	}
}

func (h Hash) cellID(ix, iy, iz int) int {
	return ix + h.nx*(iy+h.ny*iz)
}

// axis converts one coordinate to a clamped cell coordinate. Clamping happens
// before the integer conversion so infinities never reach int().
func (h Hash) axis(v float64, n int) int {
	f := math.Floor(v / h.cellSize)
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= float64(n-1):
		return n - 1
	}
	return int(f)
}
