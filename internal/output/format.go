// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"svns/internal/task"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"

	// DateFormat is the short day used in the plan header.
	DateFormat = "Mon, Jan 2"
)

// FormatSectionHeader formats a bucket header. Signal shows open/limit,
// noise shows its open count.
func FormatSectionHeader(w io.Writer, b task.Bucket, open, limit int) {
	title := b.Title()
	if b == task.Signal {
		title = fmt.Sprintf("%s (%d/%d)", title, open, limit)
	} else {
		title = fmt.Sprintf("%s (%d)", title, open)
	}
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, ListSeparator)
}

// FormatTask formats one task line.
// Format: "{REF:>4}  [ ] {TEXT}\n", with [x] for done tasks.
func FormatTask(w io.Writer, b task.Bucket, num int, t task.Task) {
	mark := " "
	if t.Done {
		mark = "x"
	}
	ref := fmt.Sprintf("%c%d", b.Letter(), num)
	fmt.Fprintf(w, "%4s  [%s] %s\n", ref, mark, normalizeText(t.Text))
}

// FormatCounts prints the summary counts.
func FormatCounts(w io.Writer, c task.Counts, limit int) {
	fmt.Fprintf(w, "signal: %d/%d\n", c.SignalOpen, limit)
	fmt.Fprintf(w, "noise: %d\n", c.NoiseOpen)
	fmt.Fprintf(w, "done: %d\n", c.Done)
}

// FormatPlan prints the day's plan as plain text: open signal, open noise,
// then everything completed.
func FormatPlan(w io.Writer, day time.Time, tasks []task.Task) {
	var signal, noise, done []string
	for _, t := range tasks {
		text := normalizeText(t.Text)
		switch {
		case t.Done:
			done = append(done, text)
		case t.List == task.Signal:
			signal = append(signal, text)
		default:
			noise = append(noise, text)
		}
	}

	fmt.Fprintf(w, "Signal vs Noise - %s\n", day.Format(DateFormat))
	writeBlock(w, "Signal", signal)
	writeBlock(w, "Noise", noise)
	writeBlock(w, "Completed", done)
}

func writeBlock(w io.Writer, title string, lines []string) {
	fmt.Fprintf(w, "\n%s:\n", title)
	if len(lines) == 0 {
		fmt.Fprintln(w, "-")
		return
	}
	for _, l := range lines {
		fmt.Fprintf(w, "* %s\n", l)
	}
}

// normalizeText puts a task on one line.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
