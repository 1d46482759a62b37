package focus

import (
	"time"

	"tvnav/internal/domain"
)

// debouncer drops directional input arriving faster than the interval,
// absorbing remote key-repeat storms without queueing
type debouncer struct {
	interval time.Duration
	last     time.Time
}

func (d *debouncer) suppress(now time.Time) bool {
	if d.interval <= 0 {
		return false
	}
	if !d.last.IsZero() && now.Sub(d.last) < d.interval {
		return true
	}
	d.last = now
	return false
}

// backDeduper collapses the back signals one physical press produces
// through several listeners (keydown Escape plus a vendor hardware event)
type backDeduper struct {
	window   time.Duration
	lastTurn uint64
	lastAt   time.Time
}

func (b *backDeduper) duplicate(sig domain.Signal, now time.Time) bool {
	if sig.Turn != 0 && sig.Turn == b.lastTurn {
		return true
	}
	if sig.Turn == 0 && b.window > 0 && !b.lastAt.IsZero() && now.Sub(b.lastAt) < b.window {
		return true
	}
	b.lastTurn = sig.Turn
	b.lastAt = now
	return false
}
