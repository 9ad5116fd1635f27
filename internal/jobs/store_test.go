package jobs

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore()

	job := Job{ID: "abc", Status: StatusQueued, Created: time.Now()}
	if err := store.Create(job); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, ok := store.Get("abc")
	if !ok {
		t.Fatal("expected job to exist")
	}
	if got.Status != StatusQueued {
		t.Errorf("Expected status=queued, got %s", got.Status)
	}
}

func TestStoreCreateDuplicate(t *testing.T) {
	store := NewStore()

	if err := store.Create(Job{ID: "dup"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Create(Job{ID: "dup"}); err == nil {
		t.Error("expected error for duplicate ID")
	}
}

func TestStoreGetUnknown(t *testing.T) {
	store := NewStore()

	if _, ok := store.Get("nonexistent"); ok {
		t.Error("expected lookup of unknown job to fail")
	}
	// The failed lookup must not create a job as a side effect
	if store.Len() != 0 {
		t.Errorf("Expected empty store, got %d jobs", store.Len())
	}
}

func TestStoreGetReturnsSnapshot(t *testing.T) {
	store := NewStore()
	if err := store.Create(Job{ID: "snap", Status: StatusRunning}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	before, _ := store.Get("snap")
	store.Update("snap", func(j *Job) {
		j.Progress = 0.7
	})

	if before.Progress != 0 {
		t.Error("earlier snapshot must not observe later mutations")
	}

	after, _ := store.Get("snap")
	if after.Progress != 0.7 {
		t.Errorf("Expected progress=0.7, got %f", after.Progress)
	}
}

func TestStoreUpdateTerminalIsAbsorbing(t *testing.T) {
	store := NewStore()
	if err := store.Create(Job{ID: "t", Status: StatusRunning}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	store.Update("t", func(j *Job) {
		j.Status = StatusDone
		j.Progress = 1.0
	})

	// A late progress update must not fire once the job is terminal
	store.Update("t", func(j *Job) {
		j.Status = StatusRunning
		j.Progress = 0.5
	})

	got, _ := store.Get("t")
	if got.Status != StatusDone {
		t.Errorf("Expected terminal status preserved, got %s", got.Status)
	}
	if got.Progress != 1.0 {
		t.Errorf("Expected progress=1.0, got %f", got.Progress)
	}
}

func TestStoreUpdateUnknown(t *testing.T) {
	store := NewStore()
	if ok := store.Update("ghost", func(j *Job) {}); ok {
		t.Error("expected Update of unknown job to report false")
	}
}

func TestStoreSweep(t *testing.T) {
	store := NewStore()
	now := time.Now()

	old := Job{ID: "old", Status: StatusDone, Finished: now.Add(-2 * time.Hour)}
	fresh := Job{ID: "fresh", Status: StatusError, Finished: now.Add(-1 * time.Minute)}
	running := Job{ID: "running", Status: StatusRunning}
	for _, j := range []Job{old, fresh, running} {
		if err := store.Create(j); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	removed := store.Sweep(now.Add(-time.Hour))
	if removed != 1 {
		t.Fatalf("Expected 1 job evicted, got %d", removed)
	}

	if _, ok := store.Get("old"); ok {
		t.Error("expected old terminal job to be evicted")
	}
	if _, ok := store.Get("fresh"); !ok {
		t.Error("fresh terminal job must survive the sweep")
	}
	if _, ok := store.Get("running"); !ok {
		t.Error("running job must never be evicted")
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("job-%d", i)
		if err := store.Create(Job{ID: id, Status: StatusRunning}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		wg.Add(2)
		go func(id string) {
			defer wg.Done()
			for p := 0; p <= 100; p++ {
				store.Update(id, func(j *Job) {
					j.Progress = float64(p) / 100
				})
			}
		}(id)
		go func(id string) {
			defer wg.Done()
			var last float64
			for n := 0; n < 100; n++ {
				got, ok := store.Get(id)
				if !ok {
					t.Errorf("job %s vanished", id)
					return
				}
				if got.Progress < last {
					t.Errorf("progress went backwards: %f -> %f", last, got.Progress)
					return
				}
				last = got.Progress
			}
		}(id)
	}
	wg.Wait()
}

func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		terminal bool
	}{
		{StatusQueued, false},
		{StatusRunning, false},
		{StatusDone, true},
		{StatusError, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.terminal {
			t.Errorf("Status(%s).Terminal() = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}
