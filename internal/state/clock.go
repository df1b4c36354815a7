package state

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	siteID  = uuid.NewString()
	strokes uint64
)

// NextSessionID names a new drag session for the debug trace.
// Ids are unique for the process: a per-process uuid plus a counter.
func NextSessionID() string {
	return fmt.Sprintf("%s-%d", siteID[:8], atomic.AddUint64(&strokes, 1))
}
