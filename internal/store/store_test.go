package store

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svns/internal/kv"
	"svns/internal/task"
)

func sampleTasks() []task.Task {
	return []task.Task{
		{ID: "a", Text: "ship release", List: task.Signal, CreatedAt: 1700000000000, UpdatedAt: 1700000000500},
		{ID: "b", Text: "buy milk", List: task.Noise, Done: true, CreatedAt: 1700000001000, UpdatedAt: 1700000002000},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory(), zerolog.Nop())

	want := sampleTasks()
	require.NoError(t, s.Save(ctx, want))
	assert.Equal(t, want, s.Load(ctx))
}

func TestSave_WireFormat(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	s := New(mem, zerolog.Nop())

	require.NoError(t, s.Save(ctx, sampleTasks()[:1]))
	raw, _, _ := mem.Get(ctx, TasksKey)
	assert.JSONEq(t,
		`[{"id":"a","text":"ship release","list":"signal","done":false,"createdAt":1700000000000,"updatedAt":1700000000500}]`,
		raw)

	require.NoError(t, s.Save(ctx, nil))
	raw, _, _ = mem.Get(ctx, TasksKey)
	assert.Equal(t, "[]", raw)
}

func TestLoad_Recovers(t *testing.T) {
	tests := map[string]string{
		"not json":    "not json",
		"json object": `{"id":"a"}`,
		"json string": `"tasks"`,
		"json null":   `null`,
		"empty value": ``,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			mem := kv.NewMemory()
			require.NoError(t, mem.Set(ctx, TasksKey, raw))

			got := New(mem, zerolog.Nop()).Load(ctx)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestLoad_MissingKey(t *testing.T) {
	got := New(kv.NewMemory(), zerolog.Nop()).Load(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoad_LogsParseFailure(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, TasksKey, "not json"))

	var buf bytes.Buffer
	New(mem, zerolog.New(&buf)).Load(ctx)
	assert.Contains(t, buf.String(), "failed to load tasks")
}

func TestSave_StorageFailure(t *testing.T) {
	mem := kv.NewMemory()
	mem.SetErr = assert.AnError

	err := New(mem, zerolog.Nop()).Save(context.Background(), sampleTasks())
	assert.ErrorIs(t, err, ErrStorage)
}

func TestArchive_AppendsEntries(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	s := New(mem, zerolog.Nop())
	s.SetClock(func() time.Time { return time.Date(2026, 10, 15, 8, 30, 0, 123e6, time.UTC) })

	done := sampleTasks()[1:]
	require.NoError(t, s.Archive(ctx, done))
	require.NoError(t, s.Archive(ctx, done))

	raw, found, _ := mem.Get(ctx, ArchiveKey)
	require.True(t, found)

	var entries []task.ArchiveEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "2026-10-15T08:30:00.123Z", entries[0].Date)
	assert.Equal(t, done, entries[0].Items)
	assert.Equal(t, done, entries[1].Items)
}

func TestArchive_AbandonsOnCorruptLog(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, ArchiveKey, "{broken"))

	var buf bytes.Buffer
	s := New(mem, zerolog.New(&buf))
	require.NoError(t, s.Archive(ctx, sampleTasks()))

	raw, _, _ := mem.Get(ctx, ArchiveKey)
	assert.Equal(t, "{broken", raw)
	assert.Contains(t, buf.String(), "failed to archive")
}

func TestArchive_StorageFailure(t *testing.T) {
	mem := kv.NewMemory()
	mem.SetErr = assert.AnError

	err := New(mem, zerolog.Nop()).Archive(context.Background(), sampleTasks())
	assert.ErrorIs(t, err, ErrStorage)
}
