package plan

import "sort"

// resolveOverlaps sorts edits by start ascending, then end descending, and
// drops any edit whose start falls before the previously-kept edit's end.
// This keeps the leftmost/outermost edit whenever two overlap, rather than
// rejecting the whole batch (spec §4.6).
func resolveOverlaps(edits []Edit) (kept []Edit, dropped []Dropped) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start < edits[j].Start
		}
		return edits[i].End > edits[j].End
	})

	lastEnd := -1
	for _, e := range edits {
		if lastEnd >= 0 && e.Start < lastEnd {
			dropped = append(dropped, Dropped{Edit: e, Reason: "DroppedOverlap"})
			continue
		}
		kept = append(kept, e)
		lastEnd = e.End
	}
	return kept, dropped
}
