package waterfall

import (
	"strings"

	"github.com/askiada/go-buildwaterfall/internal/logline"
	"github.com/askiada/go-buildwaterfall/pkg/waterfall/model"
)

// detectWindow bounds how many non-empty lines the detector inspects
// before giving up. Build logs announce their dialect immediately, so a
// short prefix is enough and the whole log never has to be scanned.
const detectWindow = 20

// Detect classifies raw log content as one of the supported dialects.
// It returns ErrUnrecognizedFormat when no dialect marker appears within
// the detection window.
func Detect(content string) (model.Dialect, error) {
	return detectDialect(logline.Split(content))
}

func detectDialect(lines []logline.Line) (model.Dialect, error) {
	window := lines
	if len(window) > detectWindow {
		window = window[:detectWindow]
	}

	for _, line := range window {
		if isBuildKitMarker(line.Text) {
			return model.DialectBuildKit, nil
		}
		if legacyStepPattern.MatchString(line.Text) {
			return model.DialectLegacy, nil
		}
	}

	return "", ErrUnrecognizedFormat
}

// isBuildKitMarker reports whether a line looks like BuildKit pipeline
// output: a `#N` prefix together with a status or stage marker.
func isBuildKitMarker(text string) bool {
	if !buildkitLinePattern.MatchString(text) {
		return false
	}

	return strings.Contains(text, "DONE") ||
		strings.Contains(text, "CACHED") ||
		strings.Contains(text, "[")
}
