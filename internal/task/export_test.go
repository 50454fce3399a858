package task

import "time"

// SetClock replaces the store's time source.
func (s *Store) SetClock(fn func() time.Time) { s.clock = fn }
