package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestXLSXStoreLockWritesExcludesSecondHandle(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "output.xlsx")
	first := NewXLSXStore(path)
	second := NewXLSXStore(path)

	unlock, err := first.LockWrites(context.Background())
	if err != nil {
		t.Fatalf("first LockWrites failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := second.LockWrites(ctx); err == nil {
		t.Fatalf("second LockWrites should wait while the lock is held")
	}

	unlock()

	unlockSecond, err := second.LockWrites(context.Background())
	if err != nil {
		t.Fatalf("LockWrites after release failed: %v", err)
	}
	unlockSecond()
}

func TestSQLiteStoreLockWrites(t *testing.T) {
	t.Parallel()

	s, err := New(filepath.Join(t.TempDir(), "gcgviz.db"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	var _ WriteLocker = s
	unlock, err := s.LockWrites(context.Background())
	if err != nil {
		t.Fatalf("LockWrites failed: %v", err)
	}
	unlock()
}
