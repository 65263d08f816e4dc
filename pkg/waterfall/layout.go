package waterfall

import (
	"sort"
	"time"

	"github.com/askiada/go-buildwaterfall/pkg/waterfall/model"
)

// assignRows solves the interval layout: every step gets a row index
// such that no two steps on one row overlap in [start, end), using the
// minimum number of rows.
//
// This is the greedy minimum-platform sweep: steps are visited in start
// order (ties broken by discovery order, keeping the layout
// deterministic), each row remembers the end of the step currently
// occupying it, and a step reuses the lowest-numbered row that freed up
// before its start. The greedy choice is optimal for intervals: the row
// count equals the maximum number of steps simultaneously in flight.
func assignRows(steps []*model.Step) {
	order := make([]int, len(steps))
	for idx := range order {
		order[idx] = idx
	}
	sort.SliceStable(order, func(i, j int) bool {
		return steps[order[i]].Start < steps[order[j]].Start
	})

	// rowEnds[r] is when row r becomes free. Zero-duration steps store
	// their own start, so they free the row immediately.
	var rowEnds []time.Duration
	for _, idx := range order {
		step := steps[idx]

		assigned := -1
		for row, end := range rowEnds {
			if end <= step.Start {
				assigned = row

				break
			}
		}
		if assigned == -1 {
			assigned = len(rowEnds)
			rowEnds = append(rowEnds, 0)
		}

		rowEnds[assigned] = step.End
		step.Row = assigned
	}
}
