package api

import (
	"time"
)

// fromUnixMillis converts an API millisecond timestamp to time.Time.
// Returns zero time for non-positive input.
func fromUnixMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
