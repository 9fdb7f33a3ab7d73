package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "gym_diary.db"))
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestInsertAndByUserRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	exercises := []string{"Жим лёжа 1x60кг", `Squat "heavy" 1x80kg`, "Тяга — 3x10, до отказа!"}

	id, err := repo.Insert(ctx, TrainingRecord{
		UserID:    42,
		Username:  "alice",
		StartTime: start,
		EndTime:   end,
		Exercises: exercises,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	recs, err := repo.ByUser(ctx, 42)
	if err != nil {
		t.Fatalf("by user: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if rec.ID != id || rec.UserID != 42 || rec.Username != "alice" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !rec.StartTime.Equal(start) || !rec.EndTime.Equal(end) {
		t.Fatalf("times not preserved: %v / %v", rec.StartTime, rec.EndTime)
	}
	if len(rec.Exercises) != len(exercises) {
		t.Fatalf("expected %d exercises, got %d", len(exercises), len(rec.Exercises))
	}
	for i := range exercises {
		if rec.Exercises[i] != exercises[i] {
			t.Fatalf("exercise %d corrupted: %q != %q", i, rec.Exercises[i], exercises[i])
		}
	}
}

func TestInsertEmptyExercises(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	now := time.Now()
	if _, err := repo.Insert(ctx, TrainingRecord{UserID: 1, StartTime: now, EndTime: now}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	recs, err := repo.ByUser(ctx, 1)
	if err != nil {
		t.Fatalf("by user: %v", err)
	}
	if len(recs) != 1 || len(recs[0].Exercises) != 0 {
		t.Fatalf("expected one record with no exercises, got %+v", recs)
	}
}

func TestIDsAreMonotonic(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	now := time.Now()
	var prev int64
	for i := 0; i < 3; i++ {
		id, err := repo.Insert(ctx, TrainingRecord{UserID: 7, StartTime: now, EndTime: now})
		if err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
		if id <= prev {
			t.Fatalf("ids not monotonic: %d after %d", id, prev)
		}
		prev = id
	}
}

func TestByUserIsolation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	now := time.Now()
	if _, err := repo.Insert(ctx, TrainingRecord{UserID: 1, Username: "a", StartTime: now, EndTime: now}); err != nil {
		t.Fatalf("insert a: %v", err)
	}
	if _, err := repo.Insert(ctx, TrainingRecord{UserID: 2, Username: "b", StartTime: now, EndTime: now}); err != nil {
		t.Fatalf("insert b: %v", err)
	}

	recs, err := repo.ByUser(ctx, 1)
	if err != nil {
		t.Fatalf("by user: %v", err)
	}
	if len(recs) != 1 || recs[0].Username != "a" {
		t.Fatalf("user 1 sees foreign records: %+v", recs)
	}

	users, err := repo.Users(ctx)
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 distinct users, got %+v", users)
	}
}
