// Package logline provides the line-level primitives shared by the
// dialect extractors: splitting raw log content, stripping and parsing
// optional leading timestamps, and parsing elapsed-time tokens.
package logline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Line is one non-empty log line with the optional timestamp prefix
// already removed. Number is 1-based and refers to the original input.
type Line struct {
	Number int
	Text   string
	// Stamp is the leading timestamp, zero when the line had none.
	Stamp time.Time
}

var timestampPattern = regexp.MustCompile(
	`^(\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?)\s+`,
)

// timestampLayouts are tried in order against the captured prefix.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Split breaks raw log content into trimmed non-empty lines, stripping
// and parsing the optional leading timestamp on each.
func Split(content string) []Line {
	raw := strings.Split(content, "\n")
	lines := make([]Line, 0, len(raw))

	for idx, text := range raw {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		line := Line{Number: idx + 1, Text: text}
		if match := timestampPattern.FindStringSubmatch(text); match != nil {
			if stamp, err := parseTimestamp(match[1]); err == nil {
				line.Stamp = stamp
			}
			line.Text = strings.TrimSpace(text[len(match[0]):])
		}

		lines = append(lines, line)
	}

	return lines
}

func parseTimestamp(token string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if stamp, err := time.Parse(layout, token); err == nil {
			return stamp, nil
		}
	}

	return time.Time{}, errors.Errorf("unsupported timestamp %q", token)
}

// ParseElapsed parses a BuildKit elapsed token such as "2.1s" into a
// duration.
func ParseElapsed(token string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSuffix(token, "s"), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "unable to parse elapsed token %q", token)
	}
	if seconds < 0 {
		return 0, errors.Errorf("negative elapsed token %q", token)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}
