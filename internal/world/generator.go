// Package world drives chunked geometry generation: it walks the grid,
// builds one mesh per chunk cell and exports it.
package world

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alitto/pond/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/hexsphere/internal/hexgrid"
	"github.com/Faultbox/hexsphere/pkg/gltf"
	"github.com/Faultbox/hexsphere/pkg/mesh"
	"github.com/Faultbox/hexsphere/pkg/sphere"
)

// Options configure a generation run.
type Options struct {
	ChunkRes int
	WorldRes int

	OutputDir string
	Prefix    string

	// Seed drives color selection. Each chunk derives its own stream from
	// Seed and its cell, so output does not depend on Workers.
	Seed      uint64
	ColorMode sphere.ColorMode
	Shading   sphere.Shading
	Up        sphere.UpAxis
	// Radius is written as the node scale of every chunk.
	Radius float64

	// Workers > 1 builds chunks in parallel.
	Workers int
	// FailFast stops the run at the first failed export instead of
	// skipping the chunk.
	FailFast bool

	Generator string
	Logger    *zap.Logger
}

// RunStats summarizes a run.
type RunStats struct {
	Chunks   int
	Exported int
	// Failed lists the 1-based indices of chunks that were not exported.
	Failed []int
	Totals mesh.Stats
}

// ChunkResult is the outcome of one chunk.
type ChunkResult struct {
	Index int
	Cell  hexgrid.Cell
	Files gltf.Files
	Stats mesh.Stats
	Err   error
}

// Generator turns grid chunks into exported meshes.
type Generator struct {
	walker    *hexgrid.Walker
	opts      Options
	projector sphere.Projector
	log       *zap.Logger
}

// NewGenerator returns a generator over walker.
func NewGenerator(walker *hexgrid.Walker, opts Options) *Generator {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Shading == "" {
		opts.Shading = sphere.ShadingFlat
	}
	if opts.ColorMode == "" {
		opts.ColorMode = sphere.ColorPerCell
	}
	return &Generator{
		walker:    walker,
		opts:      opts,
		projector: sphere.NewProjector(opts.Up),
		log:       log,
	}
}

// Run generates and exports every chunk.
//
// A failed export is logged, recorded in RunStats.Failed and the run goes
// on with the next chunk, unless FailFast is set. Every failure is part of
// the returned error, so a run with gaps never reports success. Index
// errors and degenerate boundaries abort the run. ctx is checked between
// chunks.
func (g *Generator) Run(ctx context.Context) (RunStats, error) {
	if err := hexgrid.ValidateResolutions(g.opts.ChunkRes, g.opts.WorldRes); err != nil {
		return RunStats{}, err
	}

	chunks, err := g.walker.ChunkCells(g.opts.ChunkRes)
	if err != nil {
		return RunStats{}, err
	}
	totalCells := 0
	for _, c := range chunks {
		totalCells += g.walker.DescendantCount(c, g.opts.WorldRes)
	}

	g.log.Info("Preparing chunks",
		zap.Int("chunks", len(chunks)),
		zap.Int("chunk_res", g.opts.ChunkRes),
		zap.Int("world_res", g.opts.WorldRes),
		zap.Int("cells", totalCells),
	)

	if err := os.MkdirAll(g.opts.OutputDir, 0755); err != nil {
		return RunStats{}, fmt.Errorf("creating output folder: %w", err)
	}

	prog := newProgress(g.log, len(chunks), totalCells)
	var results []ChunkResult
	if g.opts.Workers > 1 {
		results = g.runParallel(ctx, chunks, prog)
	} else {
		results = g.runSequential(ctx, chunks, prog)
	}

	stats := RunStats{Chunks: len(chunks)}
	var errs error
	for _, r := range results {
		if r.Err != nil {
			stats.Failed = append(stats.Failed, r.Index)
			errs = multierr.Append(errs, fmt.Errorf("chunk %d (%s): %w", r.Index, r.Cell, r.Err))
			continue
		}
		stats.Exported++
		stats.Totals.Add(r.Stats)
	}
	if err := ctx.Err(); err != nil && len(results) < len(chunks) {
		errs = multierr.Append(errs, err)
	}
	return stats, errs
}

// fatal reports whether err must stop the whole run.
func (g *Generator) fatal(err error) bool {
	var exportErr *gltf.ExportError
	if errors.As(err, &exportErr) {
		return g.opts.FailFast
	}
	return true
}

func (g *Generator) runSequential(ctx context.Context, chunks []hexgrid.Cell, prog *progress) []ChunkResult {
	results := make([]ChunkResult, 0, len(chunks))
	for i, cell := range chunks {
		if ctx.Err() != nil {
			break
		}
		r := g.processChunk(i+1, cell, prog)
		results = append(results, r)
		if r.Err != nil && g.fatal(r.Err) {
			break
		}
	}
	return results
}

func (g *Generator) runParallel(ctx context.Context, chunks []hexgrid.Cell, prog *progress) []ChunkResult {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]ChunkResult, len(chunks))
	ran := make([]bool, len(chunks))

	pool := pond.NewPool(g.opts.Workers)
	for i, cell := range chunks {
		pool.Submit(func() {
			if ctx.Err() != nil {
				return
			}
			r := g.processChunk(i+1, cell, prog)
			results[i] = r
			ran[i] = true
			if r.Err != nil && g.fatal(r.Err) {
				cancel()
			}
		})
	}
	pool.StopAndWait()

	out := results[:0]
	for i, r := range results {
		if ran[i] {
			out = append(out, r)
		}
	}
	return out
}

// processChunk builds and exports chunk n (1-based). The mesh is dropped
// before it returns.
func (g *Generator) processChunk(n int, cell hexgrid.Cell, prog *progress) ChunkResult {
	res := ChunkResult{Index: n, Cell: cell}

	m, stats, err := g.buildChunk(n, cell, prog)
	if err != nil {
		res.Err = err
		prog.chunkFailed(n, g.walker.DescendantCount(cell, g.opts.WorldRes), err)
		return res
	}
	res.Stats = stats

	res.Files, res.Err = gltf.Export(m, g.opts.OutputDir, g.opts.Prefix, n, gltf.Options{
		Generator: g.opts.Generator,
		NodeName:  cell.String(),
		Scale:     g.opts.Radius,
	})
	if res.Err != nil {
		prog.chunkFailed(n, stats.Cells, res.Err)
		return res
	}
	prog.chunkFinished(n, res.Files, stats)
	return res
}

// BuildChunk triangulates every world-resolution descendant of cell into a
// fresh mesh without exporting it.
func (g *Generator) BuildChunk(cell hexgrid.Cell) (*mesh.Mesh, mesh.Stats, error) {
	return g.buildChunk(1, cell, nil)
}

func (g *Generator) buildChunk(n int, cell hexgrid.Cell, prog *progress) (*mesh.Mesh, mesh.Stats, error) {
	cells, err := g.walker.Descendants(cell, g.opts.WorldRes)
	if err != nil {
		return nil, mesh.Stats{}, err
	}
	if prog != nil {
		prog.chunkStarted(n, cell, len(cells))
	}

	index := g.walker.Index()
	palette := sphere.NewPalette(g.opts.Seed, uint64(cell))
	chunkColor := palette.Next()

	b := mesh.NewBuilder()
	for i, c := range cells {
		ring, err := index.Boundary(c)
		if err != nil {
			return nil, mesh.Stats{}, err
		}

		color := chunkColor
		if g.opts.ColorMode == sphere.ColorPerCell {
			color = palette.Next()
		}
		facet, err := g.projector.TriangulateShaded(ring, color, g.opts.Shading)
		if err != nil {
			return nil, mesh.Stats{}, fmt.Errorf("cell %s: %w", c, err)
		}
		b.AddFacet(facet, index.IsPentagon(c))

		if prog != nil {
			prog.cellStep(n, i+1, len(cells))
		}
	}

	m, stats := b.Finalize()
	return m, stats, nil
}
