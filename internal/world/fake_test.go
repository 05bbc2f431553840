package world

import (
	"errors"
	"math"

	"github.com/Faultbox/hexsphere/internal/hexgrid"
	"github.com/Faultbox/hexsphere/pkg/sphere"
)

var errBoundary = errors.New("boundary lookup failed")

// fakeIndex is a hexagon-only grid: bases base cells, every cell has seven
// children. Cell ids pack (base, resolution, ordinal).
type fakeIndex struct {
	bases int
	// degenerate cells get a two-point boundary.
	degenerate map[hexgrid.Cell]bool
	// broken cells fail their boundary lookup.
	broken map[hexgrid.Cell]bool
}

func fakeCell(base, res, k int) hexgrid.Cell {
	return hexgrid.Cell(uint64(base)<<40 | uint64(res)<<32 | uint64(k))
}

func unpack(c hexgrid.Cell) (base, res, k int) {
	return int(c >> 40), int(c>>32) & 0xff, int(c & 0xffffffff)
}

func (f *fakeIndex) BaseCells() ([]hexgrid.Cell, error) {
	cells := make([]hexgrid.Cell, f.bases)
	for b := range cells {
		cells[b] = fakeCell(b, 0, 0)
	}
	return cells, nil
}

func (f *fakeIndex) Children(c hexgrid.Cell, res int) ([]hexgrid.Cell, error) {
	base, r, k := unpack(c)
	n := 1
	for i := r; i < res; i++ {
		n *= 7
	}
	out := make([]hexgrid.Cell, n)
	for j := range out {
		out[j] = fakeCell(base, res, k*n+j)
	}
	return out, nil
}

func (f *fakeIndex) Boundary(c hexgrid.Cell) ([]sphere.GeoPoint, error) {
	if f.broken[c] {
		return nil, errBoundary
	}
	base, res, k := unpack(c)
	lat := -60 + float64(k%80)*1.5 + float64(res)*0.1
	lng := -170 + float64(base)*25 + float64(k/80)*1.5

	n := 6
	if f.degenerate[c] {
		n = 2
	}
	ring := make([]sphere.GeoPoint, n)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / 6
		ring[i] = sphere.GeoPointFromDegrees(lat+0.4*math.Sin(a), lng+0.4*math.Cos(a))
	}
	return ring, nil
}

func (f *fakeIndex) IsPentagon(hexgrid.Cell) bool { return false }

func (f *fakeIndex) Resolution(c hexgrid.Cell) int {
	_, res, _ := unpack(c)
	return res
}
