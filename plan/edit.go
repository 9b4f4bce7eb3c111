package plan

// Edit is a single planned textual change to a file: replace the
// half-open byte range [Start, End) with Replacement. BaseIndent is
// recorded for inspection/debugging; it has already been folded into
// Replacement by the time an Edit is produced by Plan.
type Edit struct {
	File        string
	Start       int
	End         int
	Replacement string
	BaseIndent  string
}

// Dropped records an edit the overlap resolver refused to keep, and why.
type Dropped struct {
	Edit   Edit
	Reason string
}
