package waterfall

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-buildwaterfall/pkg/waterfall/model"
)

func TestDetect(t *testing.T) {
	tcs := map[string]struct {
		content     string
		expected    model.Dialect
		expectedErr error
	}{
		"buildkit done": {
			content:  "#1 [internal] load build definition\n#1 DONE 0.1s",
			expected: model.DialectBuildKit,
		},
		"buildkit cached": {
			content:  "#4 CACHED",
			expected: model.DialectBuildKit,
		},
		"buildkit stage": {
			content:  "#2 [stage-0 1/4] FROM docker.io/library/golang:1.21",
			expected: model.DialectBuildKit,
		},
		"legacy": {
			content:  "Sending build context to Docker daemon\nStep 1/5 : FROM golang:1.21",
			expected: model.DialectLegacy,
		},
		"legacy with timestamps": {
			content:  "2024-01-01T10:00:00Z Step 1/5 : FROM golang:1.21",
			expected: model.DialectLegacy,
		},
		"plain text": {
			content:     "hello world\nthis is not a build log",
			expectedErr: ErrUnrecognizedFormat,
		},
		"empty": {
			content:     "",
			expectedErr: ErrUnrecognizedFormat,
		},
		"marker outside window": {
			content:     strings.Repeat("noise line\n", detectWindow) + "Step 1/2 : FROM base",
			expectedErr: ErrUnrecognizedFormat,
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			got, err := Detect(tc.content)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
