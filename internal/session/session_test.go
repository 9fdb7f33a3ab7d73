package session

import (
	"testing"
	"time"
)

func TestMemoryStorePutGetRemove(t *testing.T) {
	st := NewMemoryStore()
	userA := int64(1)
	userB := int64(2)

	st.Put(&Session{UserID: userA, StartedAt: time.Now(), Pending: []string{"bench"}})
	st.Put(&Session{UserID: userB, StartedAt: time.Now()})

	sa, ok := st.Get(userA)
	if !ok || len(sa.Pending) != 1 || sa.Pending[0] != "bench" {
		t.Fatalf("unexpected session A: %+v", sa)
	}
	if _, ok := st.Get(int64(3)); ok {
		t.Fatalf("unknown user has a session")
	}

	st.Remove(userA)
	if _, ok := st.Get(userA); ok {
		t.Fatalf("remove did not clear user A")
	}
	if _, ok := st.Get(userB); !ok {
		t.Fatalf("remove should not affect other users")
	}
}

func TestEntriesOrderAndCopy(t *testing.T) {
	s := &Session{
		UserID:    1,
		Committed: []string{"A"},
		Pending:   []string{"B", "C"},
	}
	if s.Len() != 3 {
		t.Fatalf("unexpected len: %d", s.Len())
	}
	got := s.Entries()
	if len(got) != 3 || got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Fatalf("unexpected entries: %+v", got)
	}

	// Modifying the returned slice must not affect internal state.
	got[0] = "mutated"
	if s.Committed[0] != "A" {
		t.Fatalf("internal state mutated via returned slice")
	}
}
