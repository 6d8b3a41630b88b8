// Package task holds the signal/noise task list model.
package task

import (
	"fmt"
	"strings"
)

// Bucket is the list a task belongs to.
type Bucket string

const (
	// Signal is the capacity-constrained, high-priority bucket.
	Signal Bucket = "signal"

	// Noise is the uncapped, low-priority bucket.
	Noise Bucket = "noise"
)

// Buckets lists every bucket in display order.
var Buckets = []Bucket{Signal, Noise}

// Valid reports whether b is one of the known buckets.
func (b Bucket) Valid() bool {
	return b == Signal || b == Noise
}

// Title returns the display name of the bucket.
func (b Bucket) Title() string {
	switch b {
	case Signal:
		return "Signal"
	case Noise:
		return "Noise"
	}
	return string(b)
}

// Letter returns the task reference letter used for the bucket.
func (b Bucket) Letter() rune {
	if b == Signal {
		return 's'
	}
	return 'n'
}

// ParseBucket parses a bucket name or its short form (case-insensitive).
func ParseBucket(s string) (Bucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "signal", "s":
		return Signal, nil
	case "noise", "n", "x":
		return Noise, nil
	}
	return "", fmt.Errorf("unknown list: %s", s)
}

// Task is a single item on the list. Field names on the wire match the
// records written by earlier versions.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	List      Bucket `json:"list"`
	Done      bool   `json:"done"`
	CreatedAt int64  `json:"createdAt"` // epoch ms
	UpdatedAt int64  `json:"updatedAt"` // epoch ms
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Text *string
	List *Bucket
	Done *bool
}

// Counts summarizes the list for display.
type Counts struct {
	SignalOpen int
	NoiseOpen  int
	Done       int
}

// ArchiveEntry is a dated snapshot of completed tasks.
type ArchiveEntry struct {
	Date  string `json:"date"` // ISO-8601
	Items []Task `json:"items"`
}
