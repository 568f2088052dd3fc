package export

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"lyricdrop/internal/logging"
	"lyricdrop/internal/queue"
)

type stubBurner struct {
	calls []int64
	fail  map[int64]error
}

func (s *stubBurner) Burn(_ context.Context, job *queue.Job) error {
	s.calls = append(s.calls, job.ID)
	if err, ok := s.fail[job.ID]; ok {
		return err
	}
	return nil
}

func openStore(t *testing.T) *queue.Store {
	t.Helper()
	store, err := queue.OpenPath(filepath.Join(t.TempDir(), "exports.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestWorkerDrainProcessesJobsInOrder(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.NewJob(ctx, "/v/a.mp4", "/o/a.mp4", "[Script Info]", 1, 1)
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	second, err := store.NewJob(ctx, "/v/b.mp4", "/o/b.mp4", "[Script Info]", 1, 2)
	if err != nil {
		t.Fatalf("new job: %v", err)
	}

	burner := &stubBurner{fail: map[int64]error{second.ID: errors.New("encode blew up")}}
	worker := NewWorker(store, burner, logging.NewNop())
	worker.drain(ctx)

	if len(burner.calls) != 2 || burner.calls[0] != first.ID || burner.calls[1] != second.ID {
		t.Fatalf("unexpected burn order: %v", burner.calls)
	}

	done, err := store.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if done.Status != queue.StatusCompleted {
		t.Fatalf("expected completed, got %s", done.Status)
	}

	failed, err := store.GetByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if failed.Status != queue.StatusFailed {
		t.Fatalf("expected failed, got %s", failed.Status)
	}
	if failed.ErrorMessage != "encode blew up" {
		t.Fatalf("unexpected error message: %q", failed.ErrorMessage)
	}
}

func TestWorkerDrainStopsWhenQueueEmpty(t *testing.T) {
	store := openStore(t)
	burner := &stubBurner{}
	worker := NewWorker(store, burner, logging.NewNop())
	worker.drain(context.Background())
	if len(burner.calls) != 0 {
		t.Fatalf("expected no burns, got %v", burner.calls)
	}
}
