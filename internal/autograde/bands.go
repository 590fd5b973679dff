package autograde

import (
	"math"
	"sort"
)

// EvaluateBands walks the grade bands in ascending threshold order and
// reports the band fully reached plus, optionally, linear partial
// credit earned inside the next band up.
func EvaluateBands(bands []GradeBand, count int, addPartialCredit bool) BandResult {
	var res BandResult
	if len(bands) == 0 {
		return res
	}

	ordered := make([]GradeBand, len(bands))
	copy(ordered, bands)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Threshold < ordered[j].Threshold })

	complete := GradeBand{} // below the lowest band: 0 items, 0 percent
	var current *GradeBand
	for i := range ordered {
		if ordered[i].Threshold <= count {
			complete = ordered[i]
			continue
		}
		current = &ordered[i]
		break
	}

	res.CompleteCount = complete.Threshold
	res.CompletePercent = complete.Percent

	// At or above the top band there is nothing left to interpolate.
	if current == nil || !addPartialCredit {
		return res
	}
	widthItems := current.Threshold - complete.Threshold
	widthPercent := current.Percent - complete.Percent
	if widthItems <= 0 {
		return res
	}
	res.PartialCount = count - complete.Threshold
	res.PartialPercent = int(math.Round(float64(res.PartialCount) / float64(widthItems) * float64(widthPercent)))
	return res
}
