package storage

import (
	"context"
	"time"
)

// TrainingRecord is one completed training. Records are append-only:
// nothing in the system updates or deletes them once written.
// Exercises keeps entry order and verbatim text.
type TrainingRecord struct {
	ID        int64
	UserID    int64
	Username  string
	StartTime time.Time
	EndTime   time.Time
	Exercises []string
}

// UserRef identifies a user seen in storage.
type UserRef struct {
	UserID   int64
	Username string
}

// Repository abstracts persistence of training records.
// Implementations can be database, file, etc.
// ByUser should return records in insertion order.
// Implementations must be safe for concurrent use.
type Repository interface {
	Insert(ctx context.Context, rec TrainingRecord) (int64, error)
	ByUser(ctx context.Context, userID int64) ([]TrainingRecord, error)
	Users(ctx context.Context) ([]UserRef, error)
	Close() error
}
