package server

import (
	"fmt"
	"sync"
	"time"
)

// RateLimiter bounds how often a single client may run scans. Scans burn
// real CPU on the OCR engine, so the limiter tracks both request counts and
// uploaded bytes per day.
type RateLimiter struct {
	mu sync.Mutex

	scansPerMinute int
	maxScansPerDay int
	maxDataPerDay  int64 // bytes

	clients map[string]*clientUsage
}

type clientUsage struct {
	scansLastMinute int
	scansToday      int
	dataToday       int64

	lastScanTime time.Time
	dayStart     time.Time
}

// NewRateLimiter creates a limiter; a zero value for any limit disables that
// particular check.
func NewRateLimiter(scansPerMinute, maxScansPerDay int, maxDataPerDay int64) *RateLimiter {
	return &RateLimiter{
		scansPerMinute: scansPerMinute,
		maxScansPerDay: maxScansPerDay,
		maxDataPerDay:  maxDataPerDay,
		clients:        make(map[string]*clientUsage),
	}
}

// Allow checks whether a scan from the given client may proceed and, if so,
// records it.
func (rl *RateLimiter) Allow(clientID string, dataSize int64) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	usage, ok := rl.clients[clientID]
	if !ok {
		usage = &clientUsage{lastScanTime: now, dayStart: now}
		rl.clients[clientID] = usage
	}
	rl.rollCounters(usage, now)

	if rl.scansPerMinute > 0 && usage.scansLastMinute >= rl.scansPerMinute {
		return &RateLimitError{
			Type:       "minute",
			Limit:      rl.scansPerMinute,
			RetryAfter: time.Minute - now.Sub(usage.lastScanTime),
		}
	}
	if rl.maxScansPerDay > 0 && usage.scansToday >= rl.maxScansPerDay {
		return &QuotaExceededError{
			Type:   "scans",
			Limit:  int64(rl.maxScansPerDay),
			Used:   int64(usage.scansToday),
			Resets: nextMidnight(now),
		}
	}
	if rl.maxDataPerDay > 0 && usage.dataToday+dataSize > rl.maxDataPerDay {
		return &QuotaExceededError{
			Type:   "data",
			Limit:  rl.maxDataPerDay,
			Used:   usage.dataToday,
			Resets: nextMidnight(now),
		}
	}

	usage.scansLastMinute++
	usage.scansToday++
	usage.dataToday += dataSize
	usage.lastScanTime = now
	return nil
}

// rollCounters resets usage counters when their time window has passed.
func (rl *RateLimiter) rollCounters(usage *clientUsage, now time.Time) {
	if now.Day() != usage.dayStart.Day() || now.Month() != usage.dayStart.Month() {
		usage.scansToday = 0
		usage.dataToday = 0
		usage.dayStart = now
	}
	if now.Sub(usage.lastScanTime) >= time.Minute {
		usage.scansLastMinute = 0
	}
}

func nextMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}

// RateLimitError signals the per-minute scan limit was hit.
type RateLimitError struct {
	Type       string
	Limit      int
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s (limit: %d, retry after: %v)", e.Type, e.Limit, e.RetryAfter)
}

// QuotaExceededError signals a daily quota was exhausted.
type QuotaExceededError struct {
	Type   string
	Limit  int64
	Used   int64
	Resets time.Time
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded for %s (used: %d, limit: %d, resets: %s)",
		e.Type, e.Used, e.Limit, e.Resets.Format(time.RFC3339))
}
