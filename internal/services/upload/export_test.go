package upload

import "time"

// SetClock pins the timestamp used in stored names.
func (s *Service) SetClock(now func() time.Time) { s.now = now }
