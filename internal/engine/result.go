package engine

import "time"

// MergeResult summarizes a completed merge. Immutable once returned.
type MergeResult struct {
	OutputPath      string        `json:"output_path"`
	InputArchives   int           `json:"input_archives"`
	ExtractedFiles  int           `json:"extracted_files"`
	Elapsed         time.Duration `json:"elapsed_ns"`
	OutputSizeBytes int64         `json:"output_size_bytes"`
}

// ElapsedSeconds returns the wall-clock duration as seconds, the unit
// collaborators display.
func (r MergeResult) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}
