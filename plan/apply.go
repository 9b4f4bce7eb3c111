package plan

import "bytes"

// Apply applies edits to source in reverse order of Start, so that
// offsets earlier in the file remain valid while later ones are rewritten
// (spec §4.6). Callers are expected to pass edits already sorted and
// overlap-resolved (the return of Plan); Apply itself re-sorts by Start
// descending defensively.
func Apply(source string, edits []Edit) string {
	buf := []byte(source)
	ordered := append([]Edit(nil), edits...)
	sortDescByStart(ordered)
	for _, e := range ordered {
		buf = splice(buf, e.Start, e.End, []byte(e.Replacement))
	}
	return string(buf)
}

func sortDescByStart(edits []Edit) {
	for i := 1; i < len(edits); i++ {
		for j := i; j > 0 && edits[j-1].Start < edits[j].Start; j-- {
			edits[j-1], edits[j] = edits[j], edits[j-1]
		}
	}
}

// splice replaces b[start:end] with replacement, copying rather than
// mutating in place so earlier-computed slices into b stay valid.
func splice(b []byte, start, end int, replacement []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(b) - (end - start) + len(replacement))
	buf.Write(b[:start])
	buf.Write(replacement)
	buf.Write(b[end:])
	return buf.Bytes()
}
