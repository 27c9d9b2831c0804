package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/gridstate/internal/fsm"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := openTestStore(t)

	err := store.BeginSession(SessionRecord{
		ID:         "s1",
		Mode:       "classic",
		Variant:    "classic",
		Level:      "maze",
		StartLives: 3,
	})
	if err != nil {
		t.Fatalf("BeginSession() failed: %v", err)
	}

	running, err := store.Session("s1")
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if running.FinalState != "" || !running.EndedAt.IsZero() {
		t.Errorf("running session = %+v, expected no final state", running)
	}
	if running.LivesLeft != 3 {
		t.Errorf("LivesLeft = %d, expected 3", running.LivesLeft)
	}

	if err := store.EndSession("s1", "GameOver", 0, 420); err != nil {
		t.Fatalf("EndSession() failed: %v", err)
	}

	ended, err := store.Session("s1")
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if ended.FinalState != "GameOver" || ended.LivesLeft != 0 || ended.Ticks != 420 {
		t.Errorf("ended session = %+v", ended)
	}
	if ended.EndedAt.IsZero() {
		t.Error("EndedAt should be set")
	}
}

func TestSessionNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Session("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Session() error = %v, expected ErrSessionNotFound", err)
	}
	if err := store.EndSession("missing", "GameOver", 0, 1); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("EndSession() error = %v, expected ErrSessionNotFound", err)
	}
}

func TestRecentSessionsOrder(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		err := store.BeginSession(SessionRecord{
			ID: id, Mode: "classic", Variant: "classic", Level: "box", StartLives: 1,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("BeginSession(%s) failed: %v", id, err)
		}
	}

	recent, err := store.RecentSessions(2)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentSessions(2) returned %d records", len(recent))
	}
	if recent[0].ID != "new" || recent[1].ID != "mid" {
		t.Errorf("RecentSessions() order = %s, %s; expected new, mid", recent[0].ID, recent[1].ID)
	}
}

func TestJournalRecordsMachineTransitions(t *testing.T) {
	store := openTestStore(t)
	if err := store.BeginSession(SessionRecord{ID: "j1", Mode: "classic", Variant: "classic", Level: "box", StartLives: 2}); err != nil {
		t.Fatalf("BeginSession() failed: %v", err)
	}

	cfg := fsm.DefaultConfig()
	cfg.Lives = 2
	m, err := fsm.New(cfg, fsm.WithObserver(NewJournal(store, "j1", nil)))
	if err != nil {
		t.Fatalf("fsm.New() failed: %v", err)
	}
	m.Update()          // LevelInit -> Playing
	m.CollisionNormal() // Playing -> LifeLost
	m.Update()          // LifeLost -> LevelInit

	records, err := store.Transitions("j1")
	if err != nil {
		t.Fatalf("Transitions() failed: %v", err)
	}

	want := [][2]string{
		{"LevelInit", "Playing"},
		{"Playing", "LifeLost"},
		{"LifeLost", "LevelInit"},
	}
	if len(records) != len(want) {
		t.Fatalf("journal has %d records, expected %d", len(records), len(want))
	}
	for i, w := range want {
		r := records[i]
		if r.FromState != w[0] || r.ToState != w[1] {
			t.Errorf("record %d = %s -> %s, expected %s -> %s", i, r.FromState, r.ToState, w[0], w[1])
		}
		if r.Seq != i+1 {
			t.Errorf("record %d Seq = %d, expected %d", i, r.Seq, i+1)
		}
	}
	if records[1].Lives != 1 {
		t.Errorf("collision record Lives = %d, expected 1", records[1].Lives)
	}
}

func TestTransitionsEmpty(t *testing.T) {
	store := openTestStore(t)

	records, err := store.Transitions("nobody")
	if err != nil {
		t.Fatalf("Transitions() failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
