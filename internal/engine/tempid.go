package engine

import (
	"sync"
	"time"
)

// TempIDSource hands out temporary ids for records created locally:
// -max(now in ms, previous+1). Ids are unique and strictly decreasing for
// the lifetime of the source, even when the clock stalls or goes back.
type TempIDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewTempIDSource returns a source reading the given clock. A nil clock
// means time.Now.
func NewTempIDSource(now func() time.Time) *TempIDSource {
	if now == nil {
		now = time.Now
	}
	return &TempIDSource{now: now}
}

// Next returns the next temp id. It is always negative.
func (s *TempIDSource) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := max(s.now().UnixMilli(), s.last+1)
	s.last = n
	return -n
}

// processTempIDs is shared by managers that are not given their own source,
// so temp ids stay unique across resources.
var processTempIDs = NewTempIDSource(nil)
