package common

import "time"

// RefreshInterval is the fixed cadence of dashboard refresh cycles.
const RefreshInterval = 60 * time.Second

// FreshnessDashboard is how long a published dashboard counts as current.
// Two missed cycles make it stale.
const FreshnessDashboard = 2 * RefreshInterval

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
