package service

import (
	"fmt"
	"time"
)

const progressEvery = 1000

// tracker turns processed-row counts into progress calls: on crossing a
// multiple of 1000 rows, whenever the whole percentage changes, and at the
// end. The ETA is re-estimated at each 1000-row mark from the rows since
// the previous mark; between marks it only counts down.
type tracker struct {
	fn    ProgressFunc
	now   func() time.Time
	total int
	done  int

	lastPct  int
	markRows int
	lastCall time.Time
	eta      float64
}

func newTracker(total int, fn ProgressFunc) *tracker {
	return &tracker{fn: fn, now: time.Now, total: total, lastPct: -1}
}

func (t *tracker) begin() {
	t.lastCall = t.now()
	if t.fn != nil {
		t.fn(0, fmt.Sprintf("0/%d", t.total), 0)
	}
}

func (t *tracker) advance(n int) {
	prev := t.done
	t.done += n
	if t.fn == nil || t.total == 0 {
		return
	}
	pct := t.done * 100 / t.total
	mark := t.done/progressEvery > prev/progressEvery || t.done == t.total
	if !mark && pct == t.lastPct {
		return
	}

	now := t.now()
	elapsed := now.Sub(t.lastCall).Seconds()
	if mark {
		avg := 0.0
		if rows := t.done - t.markRows; rows > 0 {
			avg = elapsed / float64(rows)
		}
		t.eta = avg * float64(t.total-t.done)
		t.markRows = t.done
	} else {
		t.eta = max(0, t.eta-elapsed)
	}
	t.lastCall = now

	t.fn(pct, fmt.Sprintf("%d/%d", t.done, t.total), t.eta)
	t.lastPct = pct
}

// finish reports 100% unless the last call already did.
func (t *tracker) finish() {
	if t.fn != nil && t.lastPct < 100 {
		t.fn(100, fmt.Sprintf("%d/%d", t.total, t.total), 0)
	}
}
