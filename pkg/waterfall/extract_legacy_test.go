package waterfall

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-buildwaterfall/internal/logline"
)

func TestLegacyExtract(t *testing.T) {
	content := `Sending build context to Docker daemon  3.072kB
Step 1/3 : FROM golang:1.21
 ---> a1b2c3d4e5f6
Step 2/3 : COPY . /src
 ---> Using cache
 ---> f6e5d4c3b2a1
Step 3/3 : RUN go build ./...
 ---> Running in 0123456789ab
Successfully built f00dfeed`

	ext := (&legacyExtractor{}).extract(logline.Split(content))

	require.Len(t, ext.steps, 3)
	assert.Empty(t, ext.warnings)

	assert.Equal(t, "Step 1", ext.steps[0].id)
	assert.Equal(t, "Step 1/3", ext.steps[0].label)
	assert.Equal(t, "FROM golang:1.21", ext.steps[0].command)
	assert.False(t, ext.steps[0].cached)

	assert.Equal(t, "Step 2", ext.steps[1].id)
	assert.True(t, ext.steps[1].cached)

	assert.Equal(t, "Step 3", ext.steps[2].id)
	assert.Equal(t, "RUN go build ./...", ext.steps[2].command)
	assert.False(t, ext.steps[2].cached)
}

func TestLegacyExtractTimestamped(t *testing.T) {
	content := `2024-01-01T10:00:00Z Step 1/2 : FROM alpine
2024-01-01T10:00:02Z Step 2/2 : RUN apk add curl
2024-01-01T10:00:09Z Successfully built abc123`

	ext := (&legacyExtractor{}).extract(logline.Split(content))

	require.Len(t, ext.steps, 2)
	assert.True(t, ext.steps[0].announced.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
	assert.True(t, ext.steps[1].announced.Equal(time.Date(2024, 1, 1, 10, 0, 2, 0, time.UTC)))
	assert.True(t, ext.origin.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
	assert.True(t, ext.last.Equal(time.Date(2024, 1, 1, 10, 0, 9, 0, time.UTC)))
}

func TestLegacyExtractNoSteps(t *testing.T) {
	content := "Sending build context to Docker daemon\nSuccessfully built abc123"

	ext := (&legacyExtractor{}).extract(logline.Split(content))

	assert.Empty(t, ext.steps)
}
