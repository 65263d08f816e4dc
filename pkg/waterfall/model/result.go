package model

import (
	"fmt"
	"time"
)

// Precision states whether step instants are anchored to wall-clock
// timestamps found in the log, or synthesized from line order.
type Precision string

const (
	// PrecisionAbsolute means offsets are measured from StartedAt.
	PrecisionAbsolute Precision = "absolute"
	// PrecisionRelative means offsets only encode ordering and relative
	// spacing. They must not be presented as wall-clock durations.
	PrecisionRelative Precision = "relative"
)

// Warning is a recoverable parse condition tied to a log line. Warnings
// never block rendering; they are surfaced alongside the result.
type Warning struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Result is the structure handed to rendering collaborators once the
// whole pipeline has run. Steps keep their discovery order.
type Result struct {
	Dialect Dialect `json:"dialect"`
	Steps   []*Step `json:"steps"`

	TotalSteps    int           `json:"total_steps"`
	TotalDuration time.Duration `json:"total_duration"`
	CachedCount   int           `json:"cached_count"`

	Precision Precision `json:"timing_precision"`
	// StartedAt anchors the step offsets to wall-clock time. Zero when
	// Precision is PrecisionRelative.
	StartedAt time.Time `json:"started_at,omitempty"`

	Warnings []Warning `json:"warnings,omitempty"`
}

// Rows returns the number of distinct rows used by the layout, which
// equals the maximum number of steps in flight at any instant.
func (r *Result) Rows() int {
	rows := 0
	for _, step := range r.Steps {
		if step.Row+1 > rows {
			rows = step.Row + 1
		}
	}

	return rows
}
