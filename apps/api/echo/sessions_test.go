package echoapi

import (
	"testing"
	"time"
)

func Test_sessionStore_eviction(t *testing.T) {
	defer func() { nowFunc = time.Now }()

	t.Run("expired entries are refused and swept", func(t *testing.T) {
		st := newSessionStore()

		now := time.Now()
		nowFunc = func() time.Time { return now }
		id, _ := st.create()
		if _, ok := st.get(id); !ok {
			t.Fatal("get() lost a fresh session")
		}

		nowFunc = func() time.Time { return now.Add(sessionTTL + time.Minute) }
		if _, ok := st.get(id); ok {
			t.Error("get() returned an expired session")
		}

		// stale entries do not linger past the next create
		nowFunc = func() time.Time { return now }
		stale, _ := st.create()
		nowFunc = func() time.Time { return now.Add(sessionTTL + time.Minute) }
		_, _ = st.create()
		st.mu.Lock()
		_, ok := st.m[stale]
		n := len(st.m)
		st.mu.Unlock()
		if ok || n != 1 {
			t.Errorf("stale entries remain: %d", n)
		}
	})

	t.Run("too many failures evict the session", func(t *testing.T) {
		nowFunc = time.Now
		st := newSessionStore()

		id, sess := st.create()
		sess.FailedAttempts = sessionMaxFailures
		if _, ok := st.get(id); ok {
			t.Error("get() returned a burnt-out session")
		}
		if _, ok := st.get(id); ok {
			t.Error("burnt-out session was not dropped")
		}
	})
}
