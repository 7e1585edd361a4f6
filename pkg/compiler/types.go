package compiler

import "time"

// ResearchItem is one angle's worth of compiled content.
type ResearchItem struct {
	Angle          string  `json:"angle"`
	Content        string  `json:"content"`
	WordCount      int     `json:"word_count"`
	ProcessingTime float64 `json:"processing_time"`
}

// BundleMetadata aggregates compile-time totals across all items.
type BundleMetadata struct {
	CompiledAt     time.Time `json:"research_timestamp"`
	TotalWords     int       `json:"content_length"`
	TotalSeconds   float64   `json:"total_seconds"`
	WordsPerSecond float64   `json:"words_per_second"`
}

// ResearchBundle is the output of one compile run. It is owned by the run
// that produced it and never mutated afterwards.
type ResearchBundle struct {
	Topic    string         `json:"topic"`
	Items    []ResearchItem `json:"content"`
	Metadata BundleMetadata `json:"metadata"`
}
