package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/satcalc/internal/testutil"
)

var testEpoch = time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local)

// createTestStore creates a new temp-dir store with deterministic stamps.
// Each append advances the clock by one second.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path,
		WithClock(testutil.NewSteppingClock(testEpoch, time.Second).Now),
		WithUUIDs(testutil.NewSequenceUUIDs().New),
	)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
