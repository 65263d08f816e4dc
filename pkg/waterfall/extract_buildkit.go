package waterfall

import (
	"fmt"
	"regexp"

	"github.com/askiada/go-buildwaterfall/internal/logline"
)

var (
	buildkitLinePattern = regexp.MustCompile(`^#\d+\s`)

	// Announce lines: `#4 [stage-1 2/3] RUN make`, `#1 [internal] load
	// build definition from Dockerfile`. A trailing elapsed token is
	// progress noise and is stripped from the command.
	buildkitStagePattern  = regexp.MustCompile(`^#(\d+)\s+\[([^\]]+)\s+(\d+/\d+)\]\s+(.+?)(?:\s+\d+\.\d+s)?$`)
	buildkitSimplePattern = regexp.MustCompile(`^#(\d+)\s+\[([^\]]+)\]\s+(.+?)(?:\s+\d+\.\d+s)?$`)

	// Completion lines. The elapsed token is captured loosely so that a
	// malformed token surfaces during reconciliation instead of being
	// silently unmatched here.
	buildkitDonePattern   = regexp.MustCompile(`^#(\d+)\s+DONE\s+(\S+)\s*$`)
	buildkitCachedPattern = regexp.MustCompile(`^#(\d+)\s+CACHED(?:\s+\[([^\]]+)\]\s+(.+))?$`)

	// Auxiliary lines that belong to an already-open step. Extracting
	// lines may carry an elapsed token that lengthens the step.
	buildkitExtractingPattern   = regexp.MustCompile(`^#(\d+)\s+extracting\s+.+?(?:\s+(\d+\.\d+s))?$`)
	buildkitAuxPattern          = regexp.MustCompile(`^#(\d+)\s+(?:transferring|writing|preparing|loading|resolve|sha256:[0-9a-f]+|\d+\.\d+s?)(?:\s|$)`)
	buildkitContinuationPattern = regexp.MustCompile(`^#(\d+)\s+\.\.\.$`)

	buildkitFallbackPattern = regexp.MustCompile(`^#(\d+)\s+(.+)$`)
)

// buildkitExtractor scans the interleaved output of BuildKit. Steps are
// announced and completed on non-adjacent lines, so the scan keeps a
// lookup table from pipeline index to the step still in flight.
type buildkitExtractor struct{}

func (x *buildkitExtractor) extract(lines []logline.Line) *extraction {
	ext := &extraction{}
	open := make(map[string]*rawStep)

	for _, line := range lines {
		ext.observe(line.Stamp)
		x.scanLine(ext, open, line)
	}

	return ext
}

//nolint:gocyclo // one branch per line shape, mirroring the dialect
func (x *buildkitExtractor) scanLine(ext *extraction, open map[string]*rawStep, line logline.Line) {
	switch {
	case buildkitCachedPattern.MatchString(line.Text):
		m := buildkitCachedPattern.FindStringSubmatch(line.Text)
		x.cached(ext, open, line, m)

	case buildkitStagePattern.MatchString(line.Text):
		m := buildkitStagePattern.FindStringSubmatch(line.Text)
		x.announce(ext, open, line, m[1], fmt.Sprintf("[%s %s]", m[2], m[3]), m[4])

	case buildkitDonePattern.MatchString(line.Text):
		m := buildkitDonePattern.FindStringSubmatch(line.Text)
		step, ok := open[m[1]]
		if !ok {
			ext.warn(line.Number, fmt.Sprintf("completion for unknown step #%s", m[1]))

			return
		}
		if step.cached {
			return
		}
		step.elapsed = rawToken{token: m[2], line: line.Number}
		step.completed = line.Stamp

	case buildkitSimplePattern.MatchString(line.Text):
		m := buildkitSimplePattern.FindStringSubmatch(line.Text)
		x.announce(ext, open, line, m[1], fmt.Sprintf("[%s]", m[2]), m[3])

	case buildkitExtractingPattern.MatchString(line.Text):
		m := buildkitExtractingPattern.FindStringSubmatch(line.Text)
		step, ok := open[m[1]]
		if !ok {
			ext.warn(line.Number, fmt.Sprintf("extraction progress for unknown step #%s", m[1]))

			return
		}
		if m[2] != "" {
			step.extends = append(step.extends, rawToken{token: m[2], line: line.Number})
		}

	case buildkitContinuationPattern.MatchString(line.Text):
		// Continuation marker, nothing to record.

	case buildkitAuxPattern.MatchString(line.Text):
		m := buildkitAuxPattern.FindStringSubmatch(line.Text)
		if _, ok := open[m[1]]; !ok {
			ext.warn(line.Number, fmt.Sprintf("progress for unknown step #%s", m[1]))
		}

	case buildkitFallbackPattern.MatchString(line.Text):
		// Any other `#N text` line opens a provisional step, which
		// covers shapes like `#1 [internal] ...` variants the stricter
		// patterns miss.
		m := buildkitFallbackPattern.FindStringSubmatch(line.Text)
		if _, ok := open[m[1]]; !ok {
			x.announce(ext, open, line, m[1], "#"+m[1], m[2])
		}
	}
}

func (x *buildkitExtractor) announce(ext *extraction, open map[string]*rawStep, line logline.Line, index, label, command string) {
	if _, ok := open[index]; ok {
		return
	}

	step := &rawStep{
		id:        "#" + index,
		label:     label,
		command:   command,
		group:     "#" + index,
		line:      line.Number,
		announced: line.Stamp,
	}
	open[index] = step
	ext.steps = append(ext.steps, step)
}

// cached handles both forms of the cache marker: `#N CACHED` closing an
// announced step, and `#N CACHED [stage] cmd` opening the step itself.
func (x *buildkitExtractor) cached(ext *extraction, open map[string]*rawStep, line logline.Line, m []string) {
	if step, ok := open[m[1]]; ok {
		step.cached = true

		return
	}

	label, command := "CACHED", m[3]
	if m[2] != "" {
		label = "[" + m[2] + "]"
	}
	x.announce(ext, open, line, m[1], label, command)
	open[m[1]].cached = true
}
