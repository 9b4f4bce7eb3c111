package report

import (
	"encoding/json"
	"strings"

	"github.com/oxhq/sgrep/orchestrate"
	"github.com/oxhq/sgrep/plan"
)

// MatchEntry is one element of Document.Matches (spec §6's JSON schema).
type MatchEntry struct {
	FilePath     string            `json:"filePath"`
	Line         int               `json:"line"`
	Column       int               `json:"column"`
	MatchedCode  string            `json:"matchedCode"`
	Placeholders map[string]string `json:"placeholders,omitempty"`
}

// ErrorEntry is one element of Document.Errors.
type ErrorEntry struct {
	FilePath  string `json:"filePath"`
	ErrorType string `json:"errorType"`
	Message   string `json:"message"`
}

// ReplacementEntry is one element of Document.Replacements (replace mode).
type ReplacementEntry struct {
	FilePath        string `json:"filePath"`
	OriginalCode    string `json:"originalCode"`
	ReplacementCode string `json:"replacementCode"`
}

// ApplicationResult is one element of Document.ApplicationResults (apply
// mode).
type ApplicationResult struct {
	FilePath            string `json:"filePath"`
	ReplacementsApplied int    `json:"replacementsApplied"`
	Success             bool   `json:"success"`
	Error               string `json:"error,omitempty"`
}

// Document is the top-level JSON object spec.md §6 describes.
type Document struct {
	MatchCount          int                 `json:"matchCount"`
	Matches             []MatchEntry        `json:"matches"`
	Errors              []ErrorEntry        `json:"errors,omitempty"`
	Replacements        []ReplacementEntry  `json:"replacements,omitempty"`
	ApplicationResults  []ApplicationResult `json:"applicationResults,omitempty"`
}

// Build assembles a Document from an orchestrator result. sources maps
// each file path to the text it was parsed from, needed to compute
// line/column and slice matchedCode/originalCode. applied, when non-nil,
// supplies one ApplicationResult per file that was actually written (apply
// mode); when nil the document describes a search or a replace preview.
func Build(res *orchestrate.Result, sources map[string]string, applied map[string]error) *Document {
	doc := &Document{MatchCount: len(res.Matches)}

	for _, m := range res.Matches {
		src := sources[m.File]
		line, col := lineCol(src, m.Span.Start)
		entry := MatchEntry{
			FilePath:    m.File,
			Line:        line,
			Column:      col,
			MatchedCode: sliceSafe(src, m.Span.Start, m.Span.End),
		}
		if len(m.Bindings) > 0 {
			entry.Placeholders = make(map[string]string, len(m.Bindings))
			for name, b := range m.Bindings {
				entry.Placeholders[name] = b.Text
			}
		}
		doc.Matches = append(doc.Matches, entry)
	}

	for _, e := range res.Errors {
		doc.Errors = append(doc.Errors, ErrorEntry{
			FilePath:  e.FilePath,
			ErrorType: string(e.Kind),
			Message:   e.Message,
		})
	}

	for file, edits := range res.Edits {
		src := sources[file]
		for _, e := range edits {
			doc.Replacements = append(doc.Replacements, ReplacementEntry{
				FilePath:        file,
				OriginalCode:    sliceSafe(src, e.Start, e.End),
				ReplacementCode: e.Replacement,
			})
		}
	}

	if applied != nil {
		for file, edits := range res.Edits {
			err := applied[file]
			ar := ApplicationResult{
				FilePath:            file,
				ReplacementsApplied: len(edits),
				Success:             err == nil,
			}
			if err != nil {
				ar.Error = err.Error()
				ar.ReplacementsApplied = 0
			}
			doc.ApplicationResults = append(doc.ApplicationResults, ar)
		}
	}

	return doc
}

// MarshalIndent renders doc as spec.md §6 expects: a single pretty-printed
// object.
func (doc *Document) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func lineCol(src string, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	line = 1
	lastNL := -1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			lastNL = i
		}
	}
	return line, offset - lastNL
}

func sliceSafe(src string, start, end int) string {
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return strings.Clone(src[start:end])
}

// PlanEditOriginal returns the pre-edit text an edit replaced, used by
// callers that have a plan.Edit but not a match.Match handy.
func PlanEditOriginal(src string, e plan.Edit) string {
	return sliceSafe(src, e.Start, e.End)
}
