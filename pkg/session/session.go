// Package session owns the per-chat conversation sessions. The store is
// safe for concurrent use across chats; handlers serialize work on a
// single chat by holding the session lock for the whole turn.
package session

import (
	"sync"
	"time"

	"duit/pkg/duit"
)

// State identifies the current position of a user in a conversation flow.
type State string

const (
	StateIdle                   State = "idle"
	StateAddMethodSelection     State = "add_method_selection"
	StateAddManualName          State = "add_manual_name"
	StateAddManualType          State = "add_manual_type"
	StateAddManualSource        State = "add_manual_source"
	StateAddManualCategory      State = "add_manual_category"
	StateAddManualCategoryOther State = "add_manual_category_other"
	StateAddManualAmount        State = "add_manual_amount"
	StateAddManualDescription   State = "add_manual_description"
	StateAddManualConfirm       State = "add_manual_confirm"
	StateAddScanAwaitingPhoto   State = "add_scan_awaiting_photo"
	StateAddScanProcessing      State = "add_scan_processing"
	StateAddScanConfirm         State = "add_scan_confirm"
	StateAddScanEdit            State = "add_scan_edit"
	StateSummaryAwaitingQuery   State = "summary_awaiting_query"
)

// Session holds one chat's dialogue progress and the draft being built.
// Fields must only be touched while holding the session lock.
type Session struct {
	mu sync.Mutex

	State   State
	Draft   duit.Draft
	Pending *duit.ScanResult

	stack    []State
	lastSeen time.Time
}

// Lock serializes a turn against other handlers for the same chat.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the turn lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// SetState pushes the current state onto the back-navigation stack and
// moves to the new state.
func (s *Session) SetState(next State) {
	s.stack = append(s.stack, s.State)
	s.State = next
}

// Back pops the back-navigation stack. It reports false when the stack
// is empty, leaving the state unchanged.
func (s *Session) Back() (State, bool) {
	if len(s.stack) == 0 {
		return s.State, false
	}
	s.State = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return s.State, true
}

// StackDepth returns the number of states available for back-navigation.
func (s *Session) StackDepth() int { return len(s.stack) }

// Reset returns the session to idle with an empty draft and stack.
// Reset is idempotent.
func (s *Session) Reset() {
	s.State = StateIdle
	s.Draft = duit.Draft{}
	s.Pending = nil
	s.stack = nil
}

// Store is a concurrency-safe keyed collection of sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	now      func() time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		now:      time.Now,
	}
}

// GetOrCreate returns the session for a chat, creating an idle one on
// first reference. Lookup and creation are atomic.
func (st *Store) GetOrCreate(chatID int64) *Session {
	st.mu.RLock()
	s, ok := st.sessions[chatID]
	st.mu.RUnlock()
	if ok {
		st.touch(s)
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[chatID]; ok {
		st.touch(s)
		return s
	}
	s = &Session{State: StateIdle, lastSeen: st.now()}
	st.sessions[chatID] = s
	return s
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// EvictIdle removes sessions that are Idle and untouched for at least
// maxAge. Sessions mid-dialogue are never evicted. The store lock is
// never held while waiting on a session lock, so a chat stuck in a
// slow turn cannot stall lookups for other chats. Returns the number
// of sessions removed.
func (st *Store) EvictIdle(maxAge time.Duration) int {
	cutoff := st.now().Add(-maxAge)

	st.mu.RLock()
	candidates := make(map[int64]*Session, len(st.sessions))
	for id, s := range st.sessions {
		candidates[id] = s
	}
	st.mu.RUnlock()

	evicted := 0
	for id, s := range candidates {
		// A session whose lock is held is in the middle of a turn,
		// so it is not idle-stale by definition.
		if !s.mu.TryLock() {
			continue
		}
		stale := s.State == StateIdle && s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if !stale {
			continue
		}

		st.mu.Lock()
		if st.sessions[id] == s {
			delete(st.sessions, id)
			evicted++
		}
		st.mu.Unlock()
	}
	return evicted
}

func (st *Store) touch(s *Session) {
	s.mu.Lock()
	s.lastSeen = st.now()
	s.mu.Unlock()
}
