package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the default open-task limit of the signal bucket.
const DefaultCapacity = 5

// Persister stores the task collection and the archive log.
type Persister interface {
	Load(ctx context.Context) []Task
	Save(ctx context.Context, tasks []Task) error
	Archive(ctx context.Context, completed []Task) error
}

// Option configures a Model.
type Option func(*Model)

// WithCapacity sets the signal open-task limit. Values below 1 keep the default.
func WithCapacity(n int) Option {
	return func(m *Model) {
		if n >= 1 {
			m.capacity = n
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithIDGenerator replaces the task identifier generator.
func WithIDGenerator(newID func() string) Option {
	return func(m *Model) { m.newID = newID }
}

// Model is the in-memory, ordered task collection. It has a single owner
// and is not safe for concurrent use. Every mutation is persisted before it
// returns; queries hand out copies only.
type Model struct {
	tasks    []Task
	capacity int
	store    Persister
	now      func() time.Time
	newID    func() string
}

// NewModel loads the collection from store and returns a model over it.
func NewModel(ctx context.Context, store Persister, opts ...Option) *Model {
	m := &Model{
		capacity: DefaultCapacity,
		store:    store,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.tasks = store.Load(ctx)
	if m.tasks == nil {
		m.tasks = []Task{}
	}
	return m
}

// Capacity returns the signal open-task limit.
func (m *Model) Capacity() int {
	return m.capacity
}

// Tasks returns a copy of the whole collection in order.
func (m *Model) Tasks() []Task {
	out := make([]Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// Bucket returns the tasks of one bucket in collection order.
func (m *Model) Bucket(b Bucket) []Task {
	var out []Task
	for _, t := range m.tasks {
		if t.List == b {
			out = append(out, t)
		}
	}
	return out
}

// Get returns the task with the given id.
func (m *Model) Get(id string) (Task, bool) {
	if i := m.index(id); i >= 0 {
		return m.tasks[i], true
	}
	return Task{}, false
}

// CountOpen counts the not-done tasks in a bucket.
func (m *Model) CountOpen(b Bucket) int {
	n := 0
	for _, t := range m.tasks {
		if t.List == b && !t.Done {
			n++
		}
	}
	return n
}

// Summary returns the open counts per bucket and the total done count.
func (m *Model) Summary() Counts {
	var c Counts
	for _, t := range m.tasks {
		switch {
		case t.Done:
			c.Done++
		case t.List == Signal:
			c.SignalOpen++
		case t.List == Noise:
			c.NoiseOpen++
		}
	}
	return c
}

// PreferredBucket is where a task goes when the caller does not pick a
// bucket: signal while it has room, noise otherwise.
func (m *Model) PreferredBucket() Bucket {
	if m.signalFull() {
		return Noise
	}
	return Signal
}

// Add appends a new open task. Blank text is a no-op and returns the zero
// Task. Adding to a full signal bucket returns ErrCapacityExceeded.
func (m *Model) Add(ctx context.Context, text string, b Bucket) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, nil
	}
	if !b.Valid() {
		return Task{}, fmt.Errorf("unknown list: %s", b)
	}
	if b == Signal && m.signalFull() {
		return Task{}, m.capacityErr()
	}

	now := m.now().UnixMilli()
	t := Task{
		ID:        m.newID(),
		Text:      text,
		List:      b,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.tasks = append(m.tasks, t)
	return t, m.store.Save(ctx, m.tasks)
}

// Update merges p into the task with the given id and refreshes its update
// time. found is false, and nothing changes, when the id is unknown. Blank
// text in p is ignored. Update does not enforce the signal limit; use Move
// for user-driven bucket changes.
func (m *Model) Update(ctx context.Context, id string, p Patch) (t Task, found bool, err error) {
	i := m.index(id)
	if i < 0 {
		return Task{}, false, nil
	}
	if p.List != nil && !p.List.Valid() {
		return m.tasks[i], true, fmt.Errorf("unknown list: %s", *p.List)
	}

	cur := &m.tasks[i]
	if p.Text != nil {
		if text := strings.TrimSpace(*p.Text); text != "" {
			cur.Text = text
		}
	}
	if p.List != nil {
		cur.List = *p.List
	}
	if p.Done != nil {
		cur.Done = *p.Done
	}
	cur.UpdatedAt = m.now().UnixMilli()

	return *cur, true, m.store.Save(ctx, m.tasks)
}

// Move puts the task into bucket b. Moving into a full signal bucket from
// noise returns ErrCapacityExceeded; a task already in signal may always
// be "moved" there.
func (m *Model) Move(ctx context.Context, id string, b Bucket) (Task, bool, error) {
	i := m.index(id)
	if i < 0 {
		return Task{}, false, nil
	}
	if b == Signal && m.tasks[i].List != Signal && m.signalFull() {
		return m.tasks[i], true, m.capacityErr()
	}
	return m.Update(ctx, id, Patch{List: &b})
}

// Delete removes the task with the given id, if any.
func (m *Model) Delete(ctx context.Context, id string) (bool, error) {
	i := m.index(id)
	if i < 0 {
		return false, nil
	}
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	return true, m.store.Save(ctx, m.tasks)
}

// Clear removes every task.
func (m *Model) Clear(ctx context.Context) error {
	m.tasks = []Task{}
	return m.store.Save(ctx, m.tasks)
}

// Reorder repositions the tasks of bucket b to follow orderedIDs. The other
// buckets keep their relative order and come first; then the named tasks
// in the given order; then any task of b that was not named, in its prior
// order. Ids that are unknown, belong to another bucket, or repeat are
// skipped, so the bucket's membership never changes.
func (m *Model) Reorder(ctx context.Context, b Bucket, orderedIDs []string) error {
	others := make([]Task, 0, len(m.tasks))
	within := make(map[string]Task)
	for _, t := range m.tasks {
		if t.List == b {
			within[t.ID] = t
		} else {
			others = append(others, t)
		}
	}

	placed := make(map[string]bool, len(orderedIDs))
	reordered := make([]Task, 0, len(within))
	for _, id := range orderedIDs {
		t, ok := within[id]
		if !ok || placed[id] {
			continue
		}
		placed[id] = true
		reordered = append(reordered, t)
	}

	var leftovers []Task
	for _, t := range m.tasks {
		if t.List == b && !placed[t.ID] {
			leftovers = append(leftovers, t)
		}
	}

	next := append(others, reordered...)
	m.tasks = append(next, leftovers...)
	return m.store.Save(ctx, m.tasks)
}

// ArchiveCompleted copies every done task into one new archive entry. The
// live collection is left as is, so archiving again repeats those tasks in
// the next entry. Returns the number of tasks archived; nothing is written
// when no task is done.
func (m *Model) ArchiveCompleted(ctx context.Context) (int, error) {
	var done []Task
	for _, t := range m.tasks {
		if t.Done {
			done = append(done, t)
		}
	}
	if len(done) == 0 {
		return 0, nil
	}
	return len(done), m.store.Archive(ctx, done)
}

func (m *Model) index(id string) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) signalFull() bool {
	return m.CountOpen(Signal) >= m.capacity
}

func (m *Model) capacityErr() error {
	return fmt.Errorf("%w: limit %d", ErrCapacityExceeded, m.capacity)
}
