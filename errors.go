package hashgrid

import "fmt"

type LockedStorageError struct{}

func (e LockedStorageError) Error() string {
	return "storage is currently locked"
}

// InvalidConfigurationError reports a grid geometry that cannot be built.
type InvalidConfigurationError struct {
	CellSize   float64
	Nx, Ny, Nz int
}

func (e InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid grid configuration: cell size %v, dimensions %dx%dx%d", e.CellSize, e.Nx, e.Ny, e.Nz)
}

type CoordinateOutOfRangeError struct {
	X, Y, Z    int
	Nx, Ny, Nz int
}

func (e CoordinateOutOfRangeError) Error() string {
	return fmt.Sprintf("cell coordinate (%d, %d, %d) outside grid %dx%dx%d", e.X, e.Y, e.Z, e.Nx, e.Ny, e.Nz)
}

type ElementNotFoundError struct {
	Element any
}

func (e ElementNotFoundError) Error() string {
	return fmt.Sprintf("element is not tracked: %v", e.Element)
}

type TagExistsError struct {
	Tag Tag
}

func (e TagExistsError) Error() string {
	return fmt.Sprintf("tag already exists on element: %T", e.Tag)
}

type TagNotFoundError struct {
	Tag Tag
}

func (e TagNotFoundError) Error() string {
	return fmt.Sprintf("tag does not exist on element: %T", e.Tag)
}
