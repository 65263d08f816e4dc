package logline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	content := "first line\n\n   \nsecond line\n"
	lines := Split(content)

	require.Len(t, lines, 2)
	assert.Equal(t, Line{Number: 1, Text: "first line"}, lines[0])
	assert.Equal(t, Line{Number: 4, Text: "second line"}, lines[1])
}

func TestSplitTimestamps(t *testing.T) {
	tcs := map[string]struct {
		line          string
		expectedText  string
		expectedStamp time.Time
	}{
		"rfc3339": {
			line:          "2024-01-01T10:00:00Z #1 DONE 0.5s",
			expectedText:  "#1 DONE 0.5s",
			expectedStamp: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		"fractional seconds": {
			line:          "2024-01-01T10:00:00.250Z #1 DONE 0.5s",
			expectedText:  "#1 DONE 0.5s",
			expectedStamp: time.Date(2024, 1, 1, 10, 0, 0, 250000000, time.UTC),
		},
		"space separated": {
			line:          "2024-01-01 10:00:00 Step 1/2 : FROM base",
			expectedText:  "Step 1/2 : FROM base",
			expectedStamp: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		"no timestamp": {
			line:         "#1 [internal] load build definition",
			expectedText: "#1 [internal] load build definition",
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			lines := Split(tc.line)
			require.Len(t, lines, 1)
			assert.Equal(t, tc.expectedText, lines[0].Text)
			assert.True(t, tc.expectedStamp.Equal(lines[0].Stamp))
		})
	}
}

func TestParseElapsed(t *testing.T) {
	tcs := map[string]struct {
		token       string
		expected    time.Duration
		expectedErr bool
	}{
		"sub second":  {token: "0.5s", expected: 500 * time.Millisecond},
		"seconds":     {token: "3.0s", expected: 3 * time.Second},
		"no suffix":   {token: "2.5", expected: 2500 * time.Millisecond},
		"malformed":   {token: "abc", expectedErr: true},
		"empty":       {token: "", expectedErr: true},
		"negative":    {token: "-1.0s", expectedErr: true},
		"only suffix": {token: "s", expectedErr: true},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			got, err := ParseElapsed(tc.token)
			if tc.expectedErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
