package waterfall

import (
	"github.com/askiada/go-buildwaterfall/pkg/waterfall/model"
)

// buildTimeline assembles the reconciled steps into the final result:
// categories, totals, and the overall build span. The step order stays
// the discovery order; later stages only sort internally.
func buildTimeline(dialect model.Dialect, rec *reconciliation) *model.Result {
	result := &model.Result{
		Dialect:    dialect,
		Steps:      rec.steps,
		TotalSteps: len(rec.steps),
		Precision:  rec.precision,
		StartedAt:  rec.origin,
		Warnings:   rec.warnings,
	}

	for _, step := range rec.steps {
		step.Category = model.Categorize(step.Command, step.Cached)
		if step.Cached {
			result.CachedCount++
		}
	}

	if len(rec.steps) > 0 {
		minStart, maxEnd := rec.steps[0].Start, rec.steps[0].End
		for _, step := range rec.steps[1:] {
			if step.Start < minStart {
				minStart = step.Start
			}
			if step.End > maxEnd {
				maxEnd = step.End
			}
		}
		result.TotalDuration = maxEnd - minStart
	}

	return result
}
