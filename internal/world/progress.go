package world

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/hexsphere/internal/hexgrid"
	"github.com/Faultbox/hexsphere/pkg/gltf"
	"github.com/Faultbox/hexsphere/pkg/mesh"
)

// progress logs chunk and overall completion. Safe for concurrent use.
type progress struct {
	log         *zap.Logger
	totalChunks int
	totalCells  int

	mu        sync.Mutex
	doneCells int
}

func newProgress(log *zap.Logger, totalChunks, totalCells int) *progress {
	return &progress{log: log, totalChunks: totalChunks, totalCells: totalCells}
}

func (p *progress) chunkStarted(n int, cell hexgrid.Cell, cells int) {
	p.log.Sugar().Infof("Processing chunk %d/%d (%s, %d cells)", n, p.totalChunks, cell, cells)
}

// cellStep logs every quarter of a chunk.
func (p *progress) cellStep(n, done, total int) {
	step := max(total, 4) / 4
	if done%step != 0 && done != total {
		return
	}
	p.log.Sugar().Infof("  chunk %d: %d/%d cells (%.0f%%)", n, done, total, percent(done, total))
}

func (p *progress) chunkFinished(n int, files gltf.Files, stats mesh.Stats) {
	p.mu.Lock()
	p.doneCells += stats.Cells
	done := p.doneCells
	p.mu.Unlock()

	p.log.Info("Exported chunk",
		zap.Int("chunk", n),
		zap.String("gltf", files.GLTF),
		zap.String("bin", files.Bin),
		zap.Int("vertices", stats.Vertices),
		zap.Int("triangles", stats.Triangles),
		zap.Int("dedup_hits", stats.DedupHits),
	)
	p.log.Sugar().Infof("Overall progress: %d/%d cells (%.2f%%)", done, p.totalCells, percent(done, p.totalCells))
}

func (p *progress) chunkFailed(n int, cells int, err error) {
	p.mu.Lock()
	p.doneCells += cells
	p.mu.Unlock()

	p.log.Error("Chunk failed", zap.Int("chunk", n), zap.Error(err))
}

func percent(done, total int) float64 {
	if total == 0 {
		return 100
	}
	return 100 * float64(done) / float64(total)
}
