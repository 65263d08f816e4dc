package waterfall

import (
	"fmt"
	"time"

	"github.com/askiada/go-buildwaterfall/internal/logline"
	"github.com/askiada/go-buildwaterfall/pkg/waterfall/model"
)

// syntheticSpacing is the interval between steps when the log carries
// no usable timing at all. The resulting durations only encode order.
const syntheticSpacing = time.Second

// reconciliation is the output of the timing stage: every step with
// start and end resolved on a shared timeline.
type reconciliation struct {
	steps     []*model.Step
	precision model.Precision
	origin    time.Time
	warnings  []model.Warning
}

func (r *reconciliation) warn(line int, message string) {
	r.warnings = append(r.warnings, model.Warning{Line: line, Message: message})
}

// reconcile resolves the raw timing tokens of every provisional step
// into [start, end) offsets. A malformed token never aborts the parse:
// the step degrades to zero duration and a warning is recorded.
func reconcile(dialect model.Dialect, ext *extraction) *reconciliation {
	rec := &reconciliation{warnings: ext.warnings}

	if dialect == model.DialectBuildKit {
		reconcileBuildKit(rec, ext)
	} else {
		reconcileLegacy(rec, ext)
	}

	return rec
}

func reconcileBuildKit(rec *reconciliation, ext *extraction) {
	absolute := !ext.origin.IsZero()
	if absolute {
		rec.precision = model.PrecisionAbsolute
		rec.origin = ext.origin
	} else {
		rec.precision = model.PrecisionRelative
	}

	for idx, raw := range ext.steps {
		step := newStep(raw)

		if absolute {
			step.Start = stampOffset(raw.announced, ext.origin)
		} else {
			// No wall-clock anchor anywhere: the line-encounter order
			// position stands in for the start instant.
			step.Start = time.Duration(idx) * syntheticSpacing
		}

		switch {
		case raw.cached:
			step.End = step.Start
		case raw.elapsed.token != "":
			step.End = step.Start + rec.elapsed(raw.elapsed) + rec.extendedBy(raw)
		case absolute && !raw.completed.IsZero():
			step.End = stampOffset(raw.completed, ext.origin)
		case absolute:
			// Never closed: the step runs until the last thing the log
			// recorded.
			step.End = stampOffset(ext.last, ext.origin)
		default:
			step.End = step.Start + syntheticSpacing
		}

		if step.End < step.Start {
			rec.warn(raw.line, fmt.Sprintf("step %s ends before it starts", raw.id))
			step.End = step.Start
		}

		rec.steps = append(rec.steps, step)
	}
}

func reconcileLegacy(rec *reconciliation, ext *extraction) {
	if legacyTimestamped(ext) {
		rec.precision = model.PrecisionAbsolute
		rec.origin = ext.origin
		reconcileLegacyAbsolute(rec, ext)

		return
	}

	rec.precision = model.PrecisionRelative
	for idx, raw := range ext.steps {
		step := newStep(raw)
		step.Start = time.Duration(idx) * syntheticSpacing
		step.End = step.Start + syntheticSpacing
		if raw.cached {
			step.End = step.Start
		}
		rec.steps = append(rec.steps, step)
	}
}

// reconcileLegacyAbsolute infers each step's end from the start of the
// next one, the sequential execution assumption of the classic builder.
// The final step ends at the last observed timestamp.
func reconcileLegacyAbsolute(rec *reconciliation, ext *extraction) {
	for idx, raw := range ext.steps {
		step := newStep(raw)
		step.Start = stampOffset(raw.announced, ext.origin)

		switch {
		case raw.cached:
			step.End = step.Start
		case idx+1 < len(ext.steps):
			step.End = stampOffset(ext.steps[idx+1].announced, ext.origin)
		default:
			step.End = stampOffset(ext.last, ext.origin)
		}

		if step.End < step.Start {
			rec.warn(raw.line, fmt.Sprintf("step %s ends before it starts", raw.id))
			step.End = step.Start
		}

		rec.steps = append(rec.steps, step)
	}
}

// legacyTimestamped reports whether every step header carried a
// timestamp. Anything less and line order alone establishes ordering.
func legacyTimestamped(ext *extraction) bool {
	if len(ext.steps) == 0 || ext.origin.IsZero() {
		return false
	}
	for _, raw := range ext.steps {
		if raw.announced.IsZero() {
			return false
		}
	}

	return true
}

func (r *reconciliation) elapsed(token rawToken) time.Duration {
	elapsed, err := logline.ParseElapsed(token.token)
	if err != nil {
		r.warn(token.line, fmt.Sprintf("malformed timing token %q", token.token))

		return 0
	}

	return elapsed
}

func (r *reconciliation) extendedBy(raw *rawStep) time.Duration {
	var total time.Duration
	for _, token := range raw.extends {
		total += r.elapsed(token)
	}

	return total
}

func newStep(raw *rawStep) *model.Step {
	return &model.Step{
		ID:      raw.id,
		Label:   raw.label,
		Command: raw.command,
		Group:   raw.group,
		Cached:  raw.cached,
	}
}

func stampOffset(stamp, origin time.Time) time.Duration {
	if stamp.IsZero() {
		return 0
	}

	return stamp.Sub(origin)
}
