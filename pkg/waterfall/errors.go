package waterfall

import "github.com/pkg/errors"

var (
	// ErrUnrecognizedFormat is returned when no dialect marker appears
	// within the detection window. Nothing is laid out; the caller must
	// surface the condition.
	ErrUnrecognizedFormat = errors.New("log format not recognized")
	// ErrEmptyInput is returned when the log matched a dialect but
	// yielded no build steps.
	ErrEmptyInput = errors.New("log contains no build steps")
)
