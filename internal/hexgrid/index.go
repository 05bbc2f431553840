// Package hexgrid walks the H3 cell hierarchy from chunk cells down to
// world-resolution descendants.
package hexgrid

import (
	"fmt"

	"github.com/uber/h3-go/v4"

	"github.com/Faultbox/hexsphere/pkg/sphere"
)

// MaxResolution is the finest resolution of the grid.
const MaxResolution = h3.MaxResolution

// Cell identifies one grid cell. Cells are produced by an Index, never
// constructed by callers.
type Cell uint64

// String returns the cell in the grid's usual hexadecimal form.
func (c Cell) String() string {
	return fmt.Sprintf("%x", uint64(c))
}

// Index is the spatial index the walker consumes.
type Index interface {
	// BaseCells returns every resolution 0 cell.
	BaseCells() ([]Cell, error)
	// Children returns the descendants of c at res, which is not coarser
	// than c's resolution.
	Children(c Cell, res int) ([]Cell, error)
	// Boundary returns the ordered boundary ring of c.
	Boundary(c Cell) ([]sphere.GeoPoint, error)
	IsPentagon(c Cell) bool
	Resolution(c Cell) int
}

// H3 is the Index backed by the H3 library.
type H3 struct{}

// BaseCells implements Index.
func (H3) BaseCells() ([]Cell, error) {
	cells, err := h3.Res0Cells()
	if err != nil {
		return nil, fmt.Errorf("listing base cells: %w", err)
	}
	return fromH3(cells), nil
}

// Children implements Index.
func (H3) Children(c Cell, res int) ([]Cell, error) {
	cells, err := h3.Cell(c).Children(res)
	if err != nil {
		return nil, fmt.Errorf("children of %s at resolution %d: %w", c, res, err)
	}
	return fromH3(cells), nil
}

// Boundary implements Index. H3 reports degrees; the ring is converted to
// radians.
func (H3) Boundary(c Cell) ([]sphere.GeoPoint, error) {
	boundary, err := h3.Cell(c).Boundary()
	if err != nil {
		return nil, fmt.Errorf("boundary of %s: %w", c, err)
	}
	ring := make([]sphere.GeoPoint, len(boundary))
	for i, ll := range boundary {
		ring[i] = sphere.GeoPointFromDegrees(ll.Lat, ll.Lng)
	}
	return ring, nil
}

// IsPentagon implements Index.
func (H3) IsPentagon(c Cell) bool {
	return h3.Cell(c).IsPentagon()
}

// Resolution implements Index.
func (H3) Resolution(c Cell) int {
	return h3.Cell(c).Resolution()
}

func fromH3(cells []h3.Cell) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[i] = Cell(c)
	}
	return out
}
