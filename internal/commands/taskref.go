package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"svns/internal/task"
)

// TaskRef points at the N-th task (1-based, list order) of a bucket.
type TaskRef struct {
	Bucket  task.Bucket
	TaskNum int
}

func (r TaskRef) String() string {
	return fmt.Sprintf("%c%d", r.Bucket.Letter(), r.TaskNum)
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from the front of args and returns
// how many args it used.
//
// Accepted forms:
//  1. <letter><digits>, e.g. s1, n12 (one arg)
//  2. <letter> <digits>, e.g. s 1 (two args)
//
// The letter is s for signal or n for noise.
func ParseTaskRef(args []string) (TaskRef, int, error) {
	if len(args) == 0 {
		return TaskRef{}, 0, ErrTaskRefRequired
	}

	first := args[0]
	if first == "" {
		return TaskRef{}, 0, fmt.Errorf("invalid task reference: %s", first)
	}

	b, ok := bucketForLetter(rune(first[0]))
	if !ok {
		if isAllDigits(first) {
			return TaskRef{}, 0, fmt.Errorf("invalid task reference: %s (use s%s or n%s)", first, first, first)
		}
		return TaskRef{}, 0, fmt.Errorf("invalid task reference: %s", first)
	}

	if len(first) > 1 {
		if !isAllDigits(first[1:]) {
			return TaskRef{}, 0, fmt.Errorf("invalid task reference: %s", first)
		}
		num, err := strconv.Atoi(first[1:])
		if err != nil {
			return TaskRef{}, 0, fmt.Errorf("invalid task reference: %s", first)
		}
		return TaskRef{Bucket: b, TaskNum: num}, 1, nil
	}

	// Lone letter: number must follow
	if len(args) < 2 {
		return TaskRef{}, 0, ErrTaskRefRequired
	}
	if !isAllDigits(args[1]) {
		return TaskRef{}, 0, fmt.Errorf("invalid task reference: %s %s", first, args[1])
	}
	num, err := strconv.Atoi(args[1])
	if err != nil {
		return TaskRef{}, 0, fmt.Errorf("invalid task reference: %s %s", first, args[1])
	}
	return TaskRef{Bucket: b, TaskNum: num}, 2, nil
}

func bucketForLetter(r rune) (task.Bucket, bool) {
	switch unicode.ToLower(r) {
	case 's':
		return task.Signal, true
	case 'n':
		return task.Noise, true
	}
	return "", false
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// errOutOfRange is returned by findTask for a number past the end of the bucket.
var errOutOfRange = errors.New("task number out of range")

// findTask resolves a reference against the model.
func findTask(m *task.Model, ref TaskRef) (task.Task, error) {
	tasks := m.Bucket(ref.Bucket)
	if ref.TaskNum < 1 || ref.TaskNum > len(tasks) {
		return task.Task{}, fmt.Errorf("%w: %s", errOutOfRange, ref)
	}
	return tasks[ref.TaskNum-1], nil
}

// lookupTask parses a reference from the front of args and finds its task.
// Errors are printed to errOut; rest holds the args after the reference.
func lookupTask(m *task.Model, args []string, errOut io.Writer) (t task.Task, rest []string, found bool) {
	ref, n, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, nil, false
	}
	t, err = findTask(m, ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, nil, false
	}
	return t, args[n:], true
}
