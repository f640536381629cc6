// Package wizard - Session store
package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store owns one wizard session. It is an explicit, constructor-injected
// object: the reducer stays pure and the store supplies the ambient pieces
// (clock, id source) intents need stamped.
type Store struct {
	mu    sync.Mutex
	state State
	now   func() time.Time
	newID func() string
}

// Option customizes a store
type Option func(*Store)

// WithClock injects a clock, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDSource injects the session/request id generator
func WithIDSource(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// NewStore creates a store holding a fresh session
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = InitialState(s.newID())
	return s
}

// State returns a snapshot of the current state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Dispatch applies one intent and returns the resulting state. Timestamped
// intents get the store's clock when the caller left At zero.
func (s *Store) Dispatch(intent Intent) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent = s.stamp(intent)
	s.state = Reduce(s.state, intent)
	return s.state.clone()
}

func (s *Store) stamp(intent Intent) Intent {
	now := s.now()
	switch in := intent.(type) {
	case SetStep3Answer:
		if in.At.IsZero() {
			in.At = now
		}
		return in
	case SetStep3Answers:
		if in.At.IsZero() {
			in.At = now
		}
		return in
	case PatchStep3Answers:
		if in.At.IsZero() {
			in.At = now
		}
		return in
	case ResetStep3ToDefaults:
		if in.At.IsZero() {
			in.At = now
		}
		return in
	case Step3DefaultsApplied:
		if in.At.IsZero() {
			in.At = now
		}
		return in
	}
	return intent
}

// Reset discards the session and starts a new one with a fresh id
func (s *Store) Reset() State {
	return s.Dispatch(ResetSession{SessionID: s.newID()})
}

// NewRequestKey mints an opaque token for a pricing request
func (s *Store) NewRequestKey() string {
	return s.newID()
}
