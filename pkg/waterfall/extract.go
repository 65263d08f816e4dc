package waterfall

import (
	"time"

	"github.com/askiada/go-buildwaterfall/internal/logline"
	"github.com/askiada/go-buildwaterfall/pkg/waterfall/model"
)

// extractor is the dialect-specific scanning strategy. Exactly two
// implementations exist; a third dialect would need matching changes in
// the reconciler, so this stays a closed set rather than a registry.
type extractor interface {
	extract(lines []logline.Line) *extraction
}

func extractorFor(dialect model.Dialect) extractor {
	if dialect == model.DialectBuildKit {
		return &buildkitExtractor{}
	}

	return &legacyExtractor{}
}

// rawToken is a timing token kept unparsed until reconciliation, so a
// malformed token degrades into a warning instead of a failed scan.
type rawToken struct {
	token string
	line  int
}

// rawStep is a provisional build step as discovered by an extractor.
// Timing is still raw: absolute stamps may be zero and elapsed tokens
// are unparsed strings.
type rawStep struct {
	id      string
	label   string
	command string
	group   string
	line    int
	cached  bool

	// announced and completed are the line timestamps of the opening
	// and closing lines, zero when the log carries no timestamps.
	announced time.Time
	completed time.Time

	// elapsed is the `DONE 2.1s` token, empty when the step never
	// closed. extends holds `extracting ... 1.2s` tokens that lengthen
	// the step.
	elapsed rawToken
	extends []rawToken
}

// extraction is the output of one forward scan: provisional steps in
// discovery order plus recoverable warnings and the observed wall-clock
// boundaries of the log.
type extraction struct {
	steps    []*rawStep
	warnings []model.Warning

	// origin and last are the first and last timestamps seen anywhere
	// in the log, zero when the log has none.
	origin time.Time
	last   time.Time
}

func (e *extraction) warn(line int, message string) {
	e.warnings = append(e.warnings, model.Warning{Line: line, Message: message})
}

func (e *extraction) observe(stamp time.Time) {
	if stamp.IsZero() {
		return
	}
	if e.origin.IsZero() || stamp.Before(e.origin) {
		e.origin = stamp
	}
	if stamp.After(e.last) {
		e.last = stamp
	}
}
