package output

import (
	"bytes"
	"testing"
	"time"

	"svns/internal/task"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		b    task.Bucket
		num  int
		task task.Task
		want string
	}{
		{"open signal", task.Signal, 1, task.Task{Text: "Ship it"}, "  s1  [ ] Ship it\n"},
		{"done noise", task.Noise, 12, task.Task{Text: "Milk", Done: true}, " n12  [x] Milk\n"},
		{"multiline", task.Noise, 2, task.Task{Text: "a\nb\r\nc"}, "  n2  [ ] a b  c\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.b, tt.num, tt.task)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatSectionHeader(t *testing.T) {
	var buf bytes.Buffer
	FormatSectionHeader(&buf, task.Signal, 2, 5)
	FormatSectionHeader(&buf, task.Noise, 3, 5)

	want := "------------\nSignal (2/5)\n------------\n------------\nNoise (3)\n------------\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatPlan(t *testing.T) {
	var buf bytes.Buffer
	day := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	FormatPlan(&buf, day, []task.Task{
		{Text: "Ship it", List: task.Signal},
		{Text: "Old thing", List: task.Signal, Done: true},
	})

	want := "Signal vs Noise - Thu, Oct 15\n\nSignal:\n* Ship it\n\nNoise:\n-\n\nCompleted:\n* Old thing\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
