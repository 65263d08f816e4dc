package model

import (
	"strings"
	"time"
)

// Dialect identifies the build-log flavour a log was written in.
type Dialect string

const (
	// DialectAuto lets the parser detect the dialect from the log text.
	DialectAuto Dialect = "auto"
	// DialectBuildKit is the concurrent `#N ...` output of BuildKit.
	DialectBuildKit Dialect = "buildkit"
	// DialectLegacy is the sequential `Step N/M : ...` output of the
	// classic docker builder.
	DialectLegacy Dialect = "legacy"
)

// Category classifies a step by the instruction that produced it.
type Category string

const (
	CategoryFrom   Category = "FROM"
	CategoryRun    Category = "RUN"
	CategoryCopy   Category = "COPY"
	CategoryCached Category = "CACHED"
	CategoryOther  Category = "OTHER"
)

// Categorize derives a category from a command string. A cached step is
// always CategoryCached, whatever its command says. COPY also covers ADD
// since both move files into the layer.
func Categorize(command string, cached bool) Category {
	if cached {
		return CategoryCached
	}

	upper := strings.ToUpper(strings.TrimSpace(command))
	switch {
	case strings.HasPrefix(upper, "FROM"):
		return CategoryFrom
	case strings.HasPrefix(upper, "RUN"):
		return CategoryRun
	case strings.HasPrefix(upper, "COPY"), strings.HasPrefix(upper, "ADD"):
		return CategoryCopy
	default:
		return CategoryOther
	}
}

// Step is a single build step placed on the shared build timeline.
// Start and End are offsets from the build origin; see Result.StartedAt
// for the wall-clock anchor when the log carried absolute timestamps.
type Step struct {
	// ID is unique within one parsed log, e.g. "#4" or "Step 2".
	ID string `json:"id"`
	// Label is the human readable description, e.g. "[stage-1 2/3]".
	Label string `json:"label"`
	// Command is the raw command text of the step.
	Command string `json:"command"`
	// Group is the BuildKit pipeline index the step belongs to. Empty
	// for dialects without interleaved output.
	Group string `json:"group,omitempty"`

	Category Category      `json:"category"`
	Start    time.Duration `json:"start"`
	End      time.Duration `json:"end"`
	Cached   bool          `json:"cached"`

	// Row is filled by the row assigner, Bottleneck by the bottleneck
	// detector. Both are zero until layout runs.
	Row        int  `json:"row"`
	Bottleneck bool `json:"bottleneck"`
}

// Duration returns the time the step occupied on the timeline. Cached
// steps have zero duration.
func (s *Step) Duration() time.Duration {
	return s.End - s.Start
}

// Overlaps reports whether the half-open intervals [Start, End) of two
// steps intersect. Zero-duration steps never overlap anything.
func (s *Step) Overlaps(other *Step) bool {
	return s.Start < other.End && other.Start < s.End
}
