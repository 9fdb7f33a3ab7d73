package diary

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gym-diary/internal/session"
	"gym-diary/internal/storage"
)

var (
	// ErrNoActiveSession means the user tried to log or finish without
	// starting a training first.
	ErrNoActiveSession = errors.New("no active training session")
	// ErrSessionActive means start was rejected because a session with
	// buffered entries is already running.
	ErrSessionActive = errors.New("training session already active")
)

// Service drives the per-user training lifecycle and builds report
// windows over persisted trainings. Operations for one user must be
// called sequentially; distinct users are independent.
type Service struct {
	sessions session.Store
	repo     storage.Repository
	now      func() time.Time
}

func New(sessions session.Store, repo storage.Repository) *Service {
	return &Service{sessions: sessions, repo: repo, now: time.Now}
}

// Start opens a new session for the user. If one is already active it
// is returned untouched together with ErrSessionActive: restarting
// would silently drop buffered entries.
func (s *Service) Start(userID int64) (*session.Session, error) {
	if cur, ok := s.sessions.Get(userID); ok {
		return cur, ErrSessionActive
	}
	sess := &session.Session{UserID: userID, StartedAt: s.now()}
	s.sessions.Put(sess)
	return sess, nil
}

// LogEntry appends text verbatim to the pending buffer.
func (s *Service) LogEntry(userID int64, text string) error {
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return ErrNoActiveSession
	}
	sess.Pending = append(sess.Pending, text)
	s.sessions.Put(sess)
	return nil
}

// Confirm moves all pending entries into the committed list; the
// session stays active.
func (s *Service) Confirm(userID int64) error {
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return ErrNoActiveSession
	}
	sess.Committed = append(sess.Committed, sess.Pending...)
	sess.Pending = nil
	s.sessions.Put(sess)
	return nil
}

// Active returns the user's current session, if any.
func (s *Service) Active(userID int64) (*session.Session, bool) {
	return s.sessions.Get(userID)
}

// Finish flushes the pending buffer, persists the training and removes
// the session. The session is removed only after a successful insert,
// so a storage failure leaves it intact for a retry.
func (s *Service) Finish(ctx context.Context, userID int64, displayName string) (storage.TrainingRecord, error) {
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return storage.TrainingRecord{}, ErrNoActiveSession
	}
	rec := storage.TrainingRecord{
		UserID:    userID,
		Username:  displayName,
		StartTime: sess.StartedAt,
		EndTime:   s.now(),
		Exercises: sess.Entries(),
	}
	id, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return storage.TrainingRecord{}, fmt.Errorf("persist training: %w", err)
	}
	rec.ID = id
	s.sessions.Remove(userID)
	return rec, nil
}

// WindowReport returns the user's trainings started within the trailing
// window, sorted by start time ascending. An empty result is a valid
// outcome, not an error.
func (s *Service) WindowReport(ctx context.Context, userID int64, windowDays int) ([]storage.TrainingRecord, error) {
	recs, err := s.repo.ByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load trainings: %w", err)
	}
	since := s.now().AddDate(0, 0, -windowDays)
	var out []storage.TrainingRecord
	for _, r := range recs {
		if !r.StartTime.Before(since) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}
