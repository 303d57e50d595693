// File: services/runway/store.go
package runway

import "fmt"

// Store holds the reserved landing minutes of one runway session.
// It is not safe for concurrent use; DefaultRunwayService serializes access.
type Store struct {
	k     int
	index Index
}

type Option func(*Store)

// WithIndex replaces the default unbalanced tree with idx. idx must be empty.
func WithIndex(idx Index) Option {
	return func(s *Store) {
		if idx != nil {
			s.index = idx
		}
	}
}

// NewStore creates an empty store enforcing k minutes between any two reservations.
func NewStore(k int, opts ...Option) *Store {
	s := &Store{
		k:     k,
		index: newBSTIndex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// K returns the minimum separation in minutes.
func (s *Store) K() int {
	return s.k
}

func (s *Store) Len() int {
	return s.index.Len()
}

// CurrentTime is the latest reserved minute, or -1 when nothing is reserved.
func (s *Store) CurrentTime() int {
	if latest, ok := s.index.Max(); ok {
		return latest
	}
	return -1
}

// Request reserves minute t. A nil error means the reservation was accepted;
// a rejection is a *ConflictError and leaves the store unchanged.
func (s *Store) Request(t int) error {
	if s.index.Contains(t) {
		return newConflict(ReasonDuplicate, t, "time already reserved")
	}
	if !s.index.Separated(t, s.k) {
		return newConflict(ReasonSeparation, t, fmt.Sprintf("less than %d minutes from an existing reservation", s.k))
	}
	if t <= s.CurrentTime() {
		return newConflict(ReasonPast, t, "time is not after the latest reservation")
	}

	s.index.Insert(t)
	return nil
}

// Land removes and returns the earliest reservation.
func (s *Store) Land() (int, error) {
	first, ok := s.index.Min()
	if !ok {
		return 0, ErrEmptyStore
	}
	s.index.Delete(first)
	return first, nil
}

func (s *Store) PeekMax() (int, error) {
	latest, ok := s.index.Max()
	if !ok {
		return 0, ErrEmptyStore
	}
	return latest, nil
}

func (s *Store) PeekMin() (int, error) {
	first, ok := s.index.Min()
	if !ok {
		return 0, ErrEmptyStore
	}
	return first, nil
}

// NextLanding is the reservation Land would remove next.
func (s *Store) NextLanding() (int, error) {
	return s.PeekMin()
}

func (s *Store) Contains(t int) bool {
	return s.index.Contains(t)
}

// RankBefore counts reservations strictly earlier than t. t must be reserved.
func (s *Store) RankBefore(t int) (int, error) {
	if !s.index.Contains(t) {
		return 0, ErrNotFound
	}
	return s.index.Rank(t), nil
}

// Ascend walks the reservations in ascending order until fn returns false.
func (s *Store) Ascend(fn func(int) bool) {
	s.index.Ascend(fn)
}

// List returns a fresh ascending snapshot of every reservation.
func (s *Store) List() []int {
	out := make([]int, 0, s.index.Len())
	s.index.Ascend(func(minute int) bool {
		out = append(out, minute)
		return true
	})
	return out
}
