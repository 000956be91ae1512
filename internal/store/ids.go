package store

import (
	"strconv"
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// TimeID builds an id like "msg1700000000000" from the current millisecond
// clock. Same-millisecond calls get a bumped value so ids stay unique and
// monotonic within the process.
func TimeID(prefix string) string {
	idMu.Lock()
	defer idMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return prefix + strconv.FormatInt(now, 10)
}
