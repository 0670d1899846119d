package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var (
	_ domain.HabitRepository      = (*FileStore)(nil)
	_ domain.CompletionRepository = (*FileStore)(nil)
)

// FileStore keeps the whole dataset as one versioned JSON document on disk.
// Every operation reloads the document, so external edits are picked up.
type FileStore struct {
	path string
	log  *zap.Logger

	mu sync.Mutex
}

func NewFileStore(path string, log *zap.Logger) *FileStore {
	return &FileStore{
		path: path,
		log:  log,
	}
}

func (s *FileStore) Path() string {
	return s.path
}

// load returns the stored snapshot. A missing file yields an empty dataset.
// An unparsable file is moved aside and replaced by an empty dataset.
func (s *FileStore) load() (*domain.Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("file store: read %s: %w", s.path, err)
	}
	if len(raw) == 0 {
		return domain.NewSnapshot(), nil
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		backup := fmt.Sprintf("%s.corrupt-%d", s.path, time.Now().UnixMilli())
		s.log.Warn("Corrupted store file, starting from an empty dataset",
			zap.String("path", s.path),
			zap.String("backup", backup),
			zap.Error(err))
		if renameErr := os.Rename(s.path, backup); renameErr != nil {
			s.log.Error("Failed to move corrupted store file aside", zap.Error(renameErr))
		}
		return domain.NewSnapshot(), nil
	}

	if snap.Version != domain.CurrentVersion {
		from := snap.Version
		if err := domain.Migrate(&snap); err != nil {
			return nil, fmt.Errorf("file store: %w", err)
		}
		s.log.Info("Migrated store file", zap.Int("from", from), zap.Int("to", snap.Version))
	}

	if snap.Habits == nil {
		snap.Habits = []*domain.Habit{}
	}
	if snap.Completions == nil {
		snap.Completions = []*domain.Completion{}
	}

	s.dropUnreadable(&snap)
	return &snap, nil
}

// dropUnreadable removes null records and completions with a non-canonical
// date, which only hand edits produce. The next write drops them from disk.
func (s *FileStore) dropUnreadable(snap *domain.Snapshot) {
	habits := snap.Habits[:0]
	for _, h := range snap.Habits {
		if h != nil {
			habits = append(habits, h)
		}
	}
	snap.Habits = habits

	kept := snap.Completions[:0]
	for _, c := range snap.Completions {
		if c == nil || !calendar.Valid(c.Date) {
			fields := []zap.Field{zap.String("path", s.path)}
			if c != nil {
				fields = append(fields, zap.String("habit_id", c.HabitID), zap.String("date", c.Date))
			}
			s.log.Warn("Dropping unreadable completion", fields...)
			continue
		}
		kept = append(kept, c)
	}
	snap.Completions = kept
}

// save writes the snapshot atomically via a temp file in the same directory.
func (s *FileStore) save(snap *domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("file store: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".habits-*.tmp")
	if err != nil {
		return fmt.Errorf("file store: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("file store: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file store: close: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("file store: replace %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) update(fn func(snap *domain.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(snap); err != nil {
		return err
	}
	return s.save(snap)
}

func (s *FileStore) read() (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Ping checks that the document can be read.
func (s *FileStore) Ping(ctx context.Context) error {
	_, err := s.read()
	return err
}

func (s *FileStore) Create(ctx context.Context, habit *domain.Habit) error {
	return s.update(func(snap *domain.Snapshot) error {
		clone := *habit
		snap.Habits = append(snap.Habits, &clone)
		return nil
	})
}

func (s *FileStore) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	snap, err := s.read()
	if err != nil {
		return nil, err
	}

	for _, h := range snap.Habits {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, domain.ErrHabitNotFound
}

func (s *FileStore) List(ctx context.Context) ([]*domain.Habit, error) {
	snap, err := s.read()
	if err != nil {
		return nil, err
	}

	sortHabits(snap.Habits)
	return snap.Habits, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	return s.update(func(snap *domain.Snapshot) error {
		kept := snap.Habits[:0]
		found := false
		for _, h := range snap.Habits {
			if h.ID == id {
				found = true
				continue
			}
			kept = append(kept, h)
		}
		if !found {
			return domain.ErrHabitNotFound
		}
		snap.Habits = kept

		// Same write as the habit, so a failure never leaves half a delete.
		completions := snap.Completions[:0]
		for _, c := range snap.Completions {
			if c.HabitID != id {
				completions = append(completions, c)
			}
		}
		snap.Completions = completions
		return nil
	})
}

func (s *FileStore) Toggle(ctx context.Context, habitID, date string) (bool, error) {
	var completed bool

	err := s.update(func(snap *domain.Snapshot) error {
		for i, c := range snap.Completions {
			if c.HabitID == habitID && c.Date == date {
				snap.Completions = append(snap.Completions[:i], snap.Completions[i+1:]...)
				completed = false
				return nil
			}
		}

		c, err := domain.NewCompletion(habitID, date)
		if err != nil {
			return err
		}
		snap.Completions = append(snap.Completions, c)
		completed = true
		return nil
	})

	return completed, err
}

func (s *FileStore) Exists(ctx context.Context, habitID, date string) (bool, error) {
	snap, err := s.read()
	if err != nil {
		return false, err
	}

	for _, c := range snap.Completions {
		if c.HabitID == habitID && c.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (s *FileStore) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error) {
	snap, err := s.read()
	if err != nil {
		return nil, err
	}

	list := []*domain.Completion{}
	for _, c := range snap.Completions {
		if c.HabitID == habitID {
			list = append(list, c)
		}
	}

	sortCompletions(list)
	return list, nil
}

func (s *FileStore) DeleteByHabitID(ctx context.Context, habitID string) error {
	return s.update(func(snap *domain.Snapshot) error {
		kept := snap.Completions[:0]
		for _, c := range snap.Completions {
			if c.HabitID != habitID {
				kept = append(kept, c)
			}
		}
		snap.Completions = kept
		return nil
	})
}
