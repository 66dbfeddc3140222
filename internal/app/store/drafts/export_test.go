package drafts

import "time"

// SetClock replaces the store clock in tests.
func (s *Store) SetClock(now func() time.Time) { s.now = now }
