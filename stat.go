package hashgrid

import "gonum.org/v1/gonum/spatial/r3"

// Stat returns the number of elements in every cell, indexed [x][y][z]
func (s *storage[T]) Stat() [][][]int {
	nx, ny, nz := s.hash.Dims()
	counter := make([][][]int, nx)
	for x := range counter {
		counter[x] = make([][]int, ny)
		for y := range counter[x] {
			counter[x][y] = make([]int, nz)
		}
	}
	for id, bucket := range s.grid {
		x, y, z := s.hash.Coords(id)
		counter[x][y][z] = len(bucket)
	}
	return counter
}

// StatAt returns the number of elements in the cell containing position
func (s *storage[T]) StatAt(position r3.Vec) int {
	return len(s.grid[s.hash.CellID(position)])
}

func (s *storage[T]) Summary() GridStats {
	var total, maxInCell, nonEmpty int
	for _, bucket := range s.grid {
		count := len(bucket)
		total += count
		if count > maxInCell {
			maxInCell = count
		}
		if count > 0 {
			nonEmpty++
		}
	}

	avg := 0.0
	if nonEmpty > 0 {
		avg = float64(total) / float64(nonEmpty)
	}

	return GridStats{
		TotalCells:     len(s.grid),
		NonEmptyCells:  nonEmpty,
		TotalElements:  total,
		MaxInCell:      maxInCell,
		AvgPerNonEmpty: avg,
	}
}
