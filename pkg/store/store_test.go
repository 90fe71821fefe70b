package store

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stefanpenner/quest/pkg/goal"
	"github.com/stefanpenner/quest/pkg/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(dir, opts...)
	require.NoError(t, err)
	return s
}

func sampleTracker(t *testing.T) *tracker.Tracker {
	t.Helper()
	tr := tracker.New()
	_, err := tr.CreateGoal(goal.Spec{Kind: goal.KindSimple, Name: "Read scriptures", Points: 10})
	require.NoError(t, err)
	_, err = tr.CreateGoal(goal.Spec{Kind: goal.KindChecklist, Name: "Exercise", Points: 5, Target: 3, Bonus: 20})
	require.NoError(t, err)
	_, err = tr.RecordEvent(1)
	require.NoError(t, err)
	return tr
}

func TestNewStoreCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "quest")
	s, err := NewStore(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, DefaultGoalsFile), s.GoalsPath())

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGoalsFileOption(t *testing.T) {
	s := setupTestStore(t, WithGoalsFile("mine.txt"))
	assert.Equal(t, filepath.Join(s.Root, "mine.txt"), s.GoalsPath())

	abs := filepath.Join(t.TempDir(), "elsewhere.txt")
	s = setupTestStore(t, WithGoalsFile(abs))
	assert.Equal(t, abs, s.GoalsPath())
}

func TestSaveAndLoad(t *testing.T) {
	s := setupTestStore(t)
	tr := sampleTracker(t)

	assert.False(t, s.Exists())
	require.NoError(t, s.Save(tr))
	assert.True(t, s.Exists())

	data, err := os.ReadFile(s.GoalsPath())
	require.NoError(t, err)
	assert.Equal(t, "5\nSimple,Read scriptures,,10,False\nChecklist,Exercise,,5,3,1,20\n", string(data))

	loaded := tracker.New()
	require.NoError(t, s.Load(loaded))
	assert.Equal(t, tr.TotalScore(), loaded.TotalScore())
	assert.Equal(t, tr.ListGoals(), loaded.ListGoals())

	// No temp files are left behind.
	entries, err := os.ReadDir(s.Root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadMissing(t *testing.T) {
	s := setupTestStore(t)
	tr := sampleTracker(t)

	err := s.Load(tr)
	assert.ErrorIs(t, err, tracker.ErrNotFound)
	assert.Equal(t, 2, tr.Len())
}

func TestLoadMalformedKeepsState(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, os.WriteFile(s.GoalsPath(), []byte("10\nEternal,Pray,,3,extra\n"), 0644))

	tr := sampleTracker(t)
	err := s.Load(tr)
	assert.ErrorIs(t, err, goal.ErrFormat)
	assert.Equal(t, 5, tr.TotalScore())
	assert.Equal(t, 2, tr.Len())
}

func TestLoadExistingFileFormat(t *testing.T) {
	s := setupTestStore(t)
	content := "45\r\nSimple,Run a marathon,Finish one,1000,False\r\nEternal,Read scriptures,Daily,100\r\nChecklist,Attend the temple,Ten times,50,10,3,500\r\n"
	require.NoError(t, os.WriteFile(s.GoalsPath(), []byte(content), 0644))

	tr := tracker.New()
	require.NoError(t, s.Load(tr))
	assert.Equal(t, 45, tr.TotalScore())

	list := tr.ListGoals()
	require.Len(t, list, 3)
	assert.Equal(t, "[ ]", list[0].Status)
	assert.Equal(t, goal.EternalStatus, list[1].Status)
	assert.Equal(t, "[3/10]", list[2].Status)
}

func TestLoadOrNew(t *testing.T) {
	s := setupTestStore(t)

	tr, err := s.LoadOrNew()
	require.NoError(t, err)
	assert.Equal(t, 0, tr.Len())

	require.NoError(t, s.Save(sampleTracker(t)))
	tr, err = s.LoadOrNew()
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Len())
}

func TestSaveFailureKeepsPreviousFile(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}
	s := setupTestStore(t)
	require.NoError(t, s.Save(sampleTracker(t)))
	before, err := os.ReadFile(s.GoalsPath())
	require.NoError(t, err)

	require.NoError(t, os.Chmod(s.Root, 0555))
	t.Cleanup(func() { os.Chmod(s.Root, 0755) })

	tr := sampleTracker(t)
	_, err = tr.RecordEvent(0)
	require.NoError(t, err)
	err = s.Save(tr)
	assert.ErrorIs(t, err, tracker.ErrIO)

	after, err := os.ReadFile(s.GoalsPath())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRoutineSaveLoadQuietAtInfo(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo}))
	s := setupTestStore(t, WithLogger(logger))

	require.NoError(t, s.Save(sampleTracker(t)))
	_, err := s.LoadOrNew(tracker.WithLogger(logger))
	require.NoError(t, err)
	assert.Empty(t, logs.String())
}
