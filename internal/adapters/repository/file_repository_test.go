package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readSnapshot(t *testing.T, path string) domain.Snapshot {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	return snap
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "habits.json")
	store := NewFileStore(path, zap.NewNop())

	require.NoError(t, store.Ping(context.Background()))

	habits, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, habits)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "reads never create the file")
}

func TestFileStore_WritesVersionedDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "habits.json")
	store := NewFileStore(path, zap.NewNop())

	h := mustHabit(t, "Journal", 42)
	require.NoError(t, store.Create(ctx, h))
	_, err := store.Toggle(ctx, h.ID, "2024-06-05")
	require.NoError(t, err)

	snap := readSnapshot(t, path)
	assert.Equal(t, domain.CurrentVersion, snap.Version)
	require.Len(t, snap.Habits, 1)
	assert.Equal(t, "Journal", snap.Habits[0].Name)
	require.Len(t, snap.Completions, 1)
	assert.Equal(t, "2024-06-05", snap.Completions[0].Date)

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".habits-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "temp files are cleaned up")
}

func TestFileStore_ReopenSeesData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "habits.json")

	first := NewFileStore(path, zap.NewNop())
	h := mustHabit(t, "Meditate", 1)
	require.NoError(t, first.Create(ctx, h))
	_, err := first.Toggle(ctx, h.ID, "2024-01-01")
	require.NoError(t, err)

	second := NewFileStore(path, zap.NewNop())
	got, err := second.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meditate", got.Name)

	done, err := second.Exists(ctx, h.ID, "2024-01-01")
	require.NoError(t, err)
	assert.True(t, done)
}

func TestFileStore_CorruptFileIsMovedAside(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "habits.json")
	writeFile(t, path, "{not json")

	store := NewFileStore(path, zap.NewNop())

	habits, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, habits)

	backups, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	require.Len(t, backups, 1)

	raw, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(raw), "the original bytes are preserved")

	require.NoError(t, store.Create(ctx, mustHabit(t, "Fresh", 1)))
	assert.Len(t, readSnapshot(t, path).Habits, 1)
}

func TestFileStore_EmptyFileIsEmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.json")
	writeFile(t, path, "")

	habits, err := NewFileStore(path, zap.NewNop()).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestFileStore_MigratesUnversionedDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "habits.json")
	writeFile(t, path, `{
		"habits": [
			{"id": "h1", "name": "Read", "created_at": 1},
			null
		],
		"completions": [
			{"id": "c1", "habit_id": "h1", "date": "2024-06-05", "created_at": 1},
			{"id": "c2", "habit_id": "h1", "date": "2024-06-05", "created_at": 2},
			{"id": "c3", "habit_id": "gone", "date": "2024-06-05", "created_at": 3}
		]
	}`)

	store := NewFileStore(path, zap.NewNop())

	habits, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "h1", habits[0].ID)

	list, err := store.ListByHabitID(ctx, "h1")
	require.NoError(t, err)
	assert.Len(t, list, 1, "duplicate completions collapse")

	_, err = store.Toggle(ctx, "h1", "2024-06-06")
	require.NoError(t, err)

	snap := readSnapshot(t, path)
	assert.Equal(t, domain.CurrentVersion, snap.Version, "writes persist the migrated version")
	assert.Len(t, snap.Completions, 2)
}

func TestFileStore_RejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.json")
	writeFile(t, path, `{"version": 99, "habits": [], "completions": []}`)

	store := NewFileStore(path, zap.NewNop())

	_, err := store.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnsupportedVersion)
	assert.ErrorIs(t, store.Ping(context.Background()), domain.ErrUnsupportedVersion)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"version": 99`, "the file is left untouched")
}

func TestFileStore_DropsUnreadableDates(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "habits.json")
	writeFile(t, path, `{
		"version": 1,
		"habits": [
			{"id": "h1", "name": "Read", "created_at": 1},
			{"id": "h2", "name": "Run", "created_at": 2}
		],
		"completions": [
			{"id": "c1", "habit_id": "h1", "date": "2024-06-14", "created_at": 1},
			{"id": "c2", "habit_id": "h2", "date": "2024-6-14", "created_at": 2},
			{"id": "c3", "habit_id": "h2", "date": "2024-06-13", "created_at": 3},
			null
		]
	}`)

	core, logs := observer.New(zapcore.WarnLevel)
	store := NewFileStore(path, zap.New(core))

	list, err := store.ListByHabitID(ctx, "h2")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-13"}, domain.Dates(list))

	list, err = store.ListByHabitID(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-14"}, domain.Dates(list))

	dropped := logs.FilterMessage("Dropping unreadable completion").All()
	require.NotEmpty(t, dropped)
	assert.Equal(t, "2024-6-14", dropped[0].ContextMap()["date"])

	_, err = store.Toggle(ctx, "h1", "2024-06-15")
	require.NoError(t, err)
	assert.Len(t, readSnapshot(t, path).Completions, 3, "the next write drops the bad entries from disk")
}

func TestFileStore_DeleteRemovesCompletionsInSameWrite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "habits.json")
	store := NewFileStore(path, zap.NewNop())

	keep := mustHabit(t, "Keep", 1)
	drop := mustHabit(t, "Drop", 2)
	require.NoError(t, store.Create(ctx, keep))
	require.NoError(t, store.Create(ctx, drop))
	for _, h := range []*domain.Habit{keep, drop} {
		_, err := store.Toggle(ctx, h.ID, "2024-06-05")
		require.NoError(t, err)
	}

	require.NoError(t, store.Delete(ctx, drop.ID))

	snap := readSnapshot(t, path)
	require.Len(t, snap.Habits, 1)
	require.Len(t, snap.Completions, 1)
	assert.Equal(t, keep.ID, snap.Completions[0].HabitID)
}
