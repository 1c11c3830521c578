package subtitle

import "sort"

// ActiveCues returns every cue whose [StartMs, EndMs] range contains t.
// Overlapping cues are all returned, in timeline order.
func ActiveCues(cues []Cue, t int64) []Cue {
	last := NearestIndex(cues, t)
	if last < 0 {
		return nil
	}
	var active []Cue
	for i := 0; i <= last; i++ {
		if cues[i].Contains(t) {
			active = append(active, cues[i])
		}
	}
	return active
}

// NearestIndex returns the index of the latest cue whose start is <= t,
// or -1 when t precedes every cue or the timeline is empty. The cue at
// the returned index may already have ended; callers that need an active
// cue should check Contains.
func NearestIndex(cues []Cue, t int64) int {
	// First index with start > t; the answer is the one before it.
	i := sort.Search(len(cues), func(i int) bool {
		return cues[i].StartMs > t
	})
	return i - 1
}
