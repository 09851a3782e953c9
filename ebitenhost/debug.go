package ebitenhost

import (
	"time"

	"go.uber.org/zap"
)

// debugLogEvery is the number of frames between debug stat lines.
const debugLogEvery = 120

// debugStats holds per-frame timing and draw-call metrics.
// Only logged when RunConfig.Debug is true.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	draw       drawStats
	frames     int
}

// debugLog writes frame stats at debug level every debugLogEvery frames.
func (h *Host) debugLog() {
	h.stats.frames++
	if h.stats.frames%debugLogEvery != 0 {
		return
	}
	h.log.Debug("frame stats",
		zap.Float64("elapsed", h.elapsed),
		zap.Duration("update", h.stats.updateTime),
		zap.Duration("draw", h.stats.drawTime),
		zap.Int("vertices", h.stats.draw.vertices),
		zap.Int("draw_calls", h.stats.draw.drawCalls),
		zap.Int("culled", h.stats.draw.culled),
		zap.Bool("paused", h.paused),
	)
}
