package waterfall

import (
	"fmt"
	"regexp"

	"github.com/askiada/go-buildwaterfall/internal/logline"
)

var (
	legacyStepPattern    = regexp.MustCompile(`^Step\s+(\d+)/(\d+)\s*:\s*(.+)$`)
	legacyCachePattern   = regexp.MustCompile(`^--->\s+Using cache`)
	legacyRunningPattern = regexp.MustCompile(`^--->\s+Running in [0-9a-f]+`)
)

// legacyExtractor scans classic docker build output. Each `Step N/M`
// header begins exactly one step and implicitly ends the previous one,
// so the scan only tracks the step currently in progress. Command
// output between headers is skipped.
type legacyExtractor struct{}

func (x *legacyExtractor) extract(lines []logline.Line) *extraction {
	ext := &extraction{}

	var current *rawStep
	for _, line := range lines {
		ext.observe(line.Stamp)

		if m := legacyStepPattern.FindStringSubmatch(line.Text); m != nil {
			current = &rawStep{
				id:        "Step " + m[1],
				label:     fmt.Sprintf("Step %s/%s", m[1], m[2]),
				command:   m[3],
				line:      line.Number,
				announced: line.Stamp,
			}
			ext.steps = append(ext.steps, current)

			continue
		}

		if current != nil && legacyCachePattern.MatchString(line.Text) {
			current.cached = true

			continue
		}

		if legacyRunningPattern.MatchString(line.Text) {
			continue
		}
	}

	return ext
}
