package compress

import (
	"github.com/careerkit/cvforge/internal/layout"
	"github.com/careerkit/cvforge/internal/types"
)

// denseUsageThreshold marks a CV as dense when the final structure still
// consumes at least this share of the budget at maximum compression
const denseUsageThreshold = 0.95

// Result is the outcome of an auto-compression pass
type Result struct {
	CV    *types.CVOptimized
	Level int
	Fits  bool
	Dense bool
	Stats types.UnitStats
	Loss  *types.LossReport
}

// AutoCompress escalates compression one level at a time until the layout
// engine reports a fit or the maximum level is reached. The escalation is
// monotonic: levels only increase within a single fitting pass, starting
// from 0 (uncompressed). Overflow at maximum level is reported via
// Fits=false and Dense=true, never as an error: generation must not fail
// because content is abundant.
func (c *Compressor) AutoCompress(cv *types.CVOptimized, engine *layout.Engine) *Result {
	level, fits := engine.RequiredLevel(cv, c)
	final, loss := c.ApplyLevel(cv, level)

	units := engine.EstimateUnits(final)
	budget := engine.Budget()
	stats := types.UnitStats{
		TotalUnits:     units,
		BudgetUnits:    budget,
		RemainingUnits: budget - units,
	}
	if budget > 0 {
		stats.UsagePercent = units / budget * 100
	}

	dense := level == MaxLevel && units >= budget*denseUsageThreshold

	return &Result{
		CV:    final,
		Level: level,
		Fits:  fits,
		Dense: dense,
		Stats: stats,
		Loss:  loss,
	}
}
