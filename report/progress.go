package report

import (
	"encoding/json"
	"io"

	"github.com/oxhq/sgrep/orchestrate"
)

type progressLine struct {
	Type           string `json:"type"`
	Stage          string `json:"stage"`
	Message        string `json:"message"`
	TotalFiles     int    `json:"totalFiles"`
	ProcessedFiles int    `json:"processedFiles"`
}

// StreamProgress writes one JSON object per line to w for every event
// received on events, until the channel closes. Matches spec.md §6:
// `{ "type":"progress", "stage", "message", "totalFiles", "processedFiles" }`,
// one per line to stderr.
func StreamProgress(w io.Writer, events <-chan orchestrate.ProgressEvent) {
	enc := json.NewEncoder(w)
	for ev := range events {
		enc.Encode(progressLine{
			Type:           "progress",
			Stage:          string(ev.Stage),
			Message:        ev.Message,
			TotalFiles:     ev.TotalFiles,
			ProcessedFiles: ev.ProcessedFiles,
		})
	}
}
