package hexgrid

import (
	"errors"
	"fmt"
)

// Resolution errors.
var (
	ErrInvalidResolution   = errors.New("resolution out of range")
	ErrInvertedResolutions = errors.New("chunk resolution is finer than world resolution")
)

// ConfigError reports an unusable pair of resolutions. It is raised before
// any work starts.
type ConfigError struct {
	ChunkRes int
	WorldRes int
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid resolutions (chunk %d, world %d): %v", e.ChunkRes, e.WorldRes, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ValidateResolutions checks that both resolutions are within 0..MaxResolution
// and that chunkRes is not finer than worldRes.
func ValidateResolutions(chunkRes, worldRes int) error {
	for _, r := range []int{chunkRes, worldRes} {
		if r < 0 || r > MaxResolution {
			return &ConfigError{ChunkRes: chunkRes, WorldRes: worldRes,
				Err: fmt.Errorf("%w: %d (must be 0..%d)", ErrInvalidResolution, r, MaxResolution)}
		}
	}
	if chunkRes > worldRes {
		return &ConfigError{ChunkRes: chunkRes, WorldRes: worldRes, Err: ErrInvertedResolutions}
	}
	return nil
}

// Walker enumerates chunk cells and their descendants through an Index.
type Walker struct {
	index Index
}

// NewWalker returns a walker over index.
func NewWalker(index Index) *Walker {
	return &Walker{index: index}
}

// Index returns the underlying index.
func (w *Walker) Index() Index {
	return w.index
}

// ChunkCells returns every cell at res covering the sphere: base cells in
// index order, each expanded to its children at res.
func (w *Walker) ChunkCells(res int) ([]Cell, error) {
	if res < 0 || res > MaxResolution {
		return nil, &ConfigError{ChunkRes: res, WorldRes: res,
			Err: fmt.Errorf("%w: %d (must be 0..%d)", ErrInvalidResolution, res, MaxResolution)}
	}

	base, err := w.index.BaseCells()
	if err != nil {
		return nil, err
	}
	if res == 0 {
		return base, nil
	}

	var cells []Cell
	for _, b := range base {
		children, err := w.index.Children(b, res)
		if err != nil {
			return nil, err
		}
		cells = append(cells, children...)
	}
	return cells, nil
}

// Descendants returns every cell at worldRes below cell. worldRes must not
// be coarser than the cell's own resolution.
func (w *Walker) Descendants(cell Cell, worldRes int) ([]Cell, error) {
	if err := ValidateResolutions(w.index.Resolution(cell), worldRes); err != nil {
		return nil, err
	}
	if w.index.Resolution(cell) == worldRes {
		return []Cell{cell}, nil
	}
	return w.index.Children(cell, worldRes)
}

// DescendantCount returns how many cells Descendants would return without
// enumerating them. A hexagon has 7^d descendants d levels down; a
// pentagon has one pentagonal and five hexagonal children per level.
func (w *Walker) DescendantCount(cell Cell, worldRes int) int {
	d := worldRes - w.index.Resolution(cell)
	if d < 0 {
		return 0
	}
	pow := 1
	for i := 0; i < d; i++ {
		pow *= 7
	}
	if w.index.IsPentagon(cell) {
		return 1 + 5*(pow-1)/6
	}
	return pow
}
