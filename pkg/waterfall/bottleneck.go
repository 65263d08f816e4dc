package waterfall

import (
	"math"
	"time"

	"github.com/askiada/go-buildwaterfall/pkg/waterfall/model"
)

// markBottlenecks flags the steps that dominate the build time: every
// step whose duration exceeds mean + one standard deviation of the
// positive durations. When no step passes the statistical test (near
// uniform durations), the longest step is flagged instead, ties
// included. Cached steps have zero duration and are never eligible.
func markBottlenecks(steps []*model.Step) {
	var durations []time.Duration
	for _, step := range steps {
		if step.Duration() > 0 {
			durations = append(durations, step.Duration())
		}
	}
	if len(durations) == 0 {
		return
	}

	threshold := mean(durations) + stddev(durations)

	marked := false
	for _, step := range steps {
		if step.Duration() > threshold {
			step.Bottleneck = true
			marked = true
		}
	}
	if marked {
		return
	}

	longest := durations[0]
	for _, d := range durations[1:] {
		if d > longest {
			longest = d
		}
	}
	for _, step := range steps {
		if step.Duration() == longest {
			step.Bottleneck = true
		}
	}
}

func mean(durations []time.Duration) time.Duration {
	var total time.Duration
	for _, d := range durations {
		total += d
	}

	return total / time.Duration(len(durations))
}

func stddev(durations []time.Duration) time.Duration {
	avg := float64(mean(durations))

	var variance float64
	for _, d := range durations {
		diff := float64(d) - avg
		variance += diff * diff
	}
	variance /= float64(len(durations))

	return time.Duration(math.Sqrt(variance))
}
