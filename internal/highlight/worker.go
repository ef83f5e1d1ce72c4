package highlight

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/interpretive-systems/vig/internal/diffview"
)

// Result is the full highlight of one file, tagged with the refresh epoch
// it was computed for.
type Result struct {
	Epoch uint64
	Path  string
	Left  [][]Color
	Right [][]Color
}

// Precompute highlights every text file in the background and publishes one
// Result per file. The channel is buffered for all files so the worker never
// blocks on a slow reader, and is closed when the worker finishes or ctx is
// cancelled.
func (h *Highlighter) Precompute(ctx context.Context, epoch uint64, files []diffview.FileEntry) <-chan Result {
	out := make(chan Result, len(files))
	go func() {
		defer close(out)
		start := time.Now()
		done := 0
		for _, f := range files {
			if ctx.Err() != nil {
				h.logger.Debug("highlight worker cancelled", zap.Uint64("epoch", epoch), zap.Int("done", done))
				return
			}
			if f.IsBinary || len(f.Hunks) == 0 {
				continue
			}
			r, ok := h.HighlightAll(f.Path, diffview.Project(f, diffview.SideLeft), diffview.Project(f, diffview.SideRight))
			if !ok {
				continue
			}
			r.Epoch = epoch
			select {
			case out <- r:
				done++
			case <-ctx.Done():
				return
			}
		}
		h.logger.Debug("highlight worker finished",
			zap.Uint64("epoch", epoch),
			zap.Int("files", done),
			zap.Duration("elapsed", time.Since(start)))
	}()
	return out
}
