package engine

import (
	"sync/atomic"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// Gate suppresses key emission while the configured target window is not in the foreground.
type Gate struct {
	windows contracts.WindowQuery
	logger  contracts.Logger
	failing atomic.Bool
}

// NewGate builds a gate over the window-query capability. A nil query disables gating.
func NewGate(windows contracts.WindowQuery, logger contracts.Logger) *Gate {
	return &Gate{windows: windows, logger: logger}
}

// CanEmit reports whether a key may be emitted under cfg. A failing window
// query permits emission (fail-open); the first failure of a streak is logged.
func (g *Gate) CanEmit(cfg contracts.Config) bool {
	if !cfg.GateActive() || g.windows == nil {
		return true
	}
	title, err := g.windows.ActiveWindowTitle()
	if err != nil {
		if !g.failing.Swap(true) {
			g.logger.Warn("Foreground window query failed; focus gate is letting input through",
				g.logger.Field().String("target", cfg.TargetTitle),
				g.logger.Field().Error("error", err))
		}
		return true
	}
	if g.failing.Swap(false) {
		g.logger.Info("Foreground window query recovered")
	}
	return title == cfg.TargetTitle
}
