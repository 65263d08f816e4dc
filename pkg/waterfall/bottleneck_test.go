package waterfall

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-buildwaterfall/pkg/waterfall/model"
)

func stepsWithDurations(durations ...time.Duration) []*model.Step {
	steps := make([]*model.Step, len(durations))
	var cursor time.Duration
	for idx, d := range durations {
		steps[idx] = &model.Step{Start: cursor, End: cursor + d, Cached: d == 0}
		cursor += d
	}

	return steps
}

func TestMarkBottlenecksStatistical(t *testing.T) {
	// One step far above the rest passes the mean+stddev test.
	steps := stepsWithDurations(
		time.Second, time.Second, time.Second, time.Second, 20*time.Second,
	)

	markBottlenecks(steps)

	assert.False(t, steps[0].Bottleneck)
	assert.False(t, steps[1].Bottleneck)
	assert.False(t, steps[2].Bottleneck)
	assert.False(t, steps[3].Bottleneck)
	assert.True(t, steps[4].Bottleneck)
}

func TestMarkBottlenecksFloor(t *testing.T) {
	// With two durations the threshold lands exactly on the longer one,
	// so nothing passes the statistical test and the longest step is
	// flagged anyway.
	steps := stepsWithDurations(time.Second, 2*time.Second)

	markBottlenecks(steps)

	assert.False(t, steps[0].Bottleneck)
	assert.True(t, steps[1].Bottleneck)
}

func TestMarkBottlenecksFloorTies(t *testing.T) {
	steps := stepsWithDurations(2*time.Second, time.Second, 2*time.Second)

	markBottlenecks(steps)

	assert.True(t, steps[0].Bottleneck)
	assert.False(t, steps[1].Bottleneck)
	assert.True(t, steps[2].Bottleneck)
}

func TestMarkBottlenecksUniform(t *testing.T) {
	// All identical: every step ties for longest.
	steps := stepsWithDurations(time.Second, time.Second, time.Second)

	markBottlenecks(steps)

	for _, step := range steps {
		assert.True(t, step.Bottleneck)
	}
}

func TestMarkBottlenecksCachedNeverEligible(t *testing.T) {
	steps := stepsWithDurations(0, time.Second, 0)

	markBottlenecks(steps)

	assert.False(t, steps[0].Bottleneck)
	assert.True(t, steps[1].Bottleneck)
	assert.False(t, steps[2].Bottleneck)
}

func TestMarkBottlenecksAllCached(t *testing.T) {
	steps := stepsWithDurations(0, 0)

	markBottlenecks(steps)

	assert.False(t, steps[0].Bottleneck)
	assert.False(t, steps[1].Bottleneck)
}

func TestMarkBottlenecksAtLeastOne(t *testing.T) {
	// Any list with one positive duration flags at least one step.
	tcs := map[string][]time.Duration{
		"single":      {3 * time.Second},
		"two equal":   {time.Second, time.Second},
		"descending":  {5 * time.Second, 4 * time.Second, 3 * time.Second},
		"with cached": {0, time.Second},
	}

	for name, durations := range tcs {
		durations := durations
		t.Run(name, func(t *testing.T) {
			steps := stepsWithDurations(durations...)
			markBottlenecks(steps)

			marked := 0
			for _, step := range steps {
				if step.Bottleneck {
					marked++
				}
			}
			assert.GreaterOrEqual(t, marked, 1)
		})
	}
}
