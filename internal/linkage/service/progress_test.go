package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	pct int
	msg string
	eta float64
}

func TestTrackerCallsOnEveryPercent(t *testing.T) {
	var calls []call
	tr := newTracker(2500, func(p int, m string, e float64) { calls = append(calls, call{p, m, e}) })
	tr.begin()
	for i := 0; i < 2500; i++ {
		tr.advance(1)
	}
	tr.finish()

	// begin + one call per whole percent 0..100
	require.Len(t, calls, 102)
	assert.Equal(t, call{0, "0/2500", 0}, calls[0])
	assert.Equal(t, 100, calls[len(calls)-1].pct)
	assert.Equal(t, "2500/2500", calls[len(calls)-1].msg)
}

func TestTrackerETA(t *testing.T) {
	clock := time.Unix(0, 0)
	var calls []call
	tr := newTracker(3000, func(p int, m string, e float64) { calls = append(calls, call{p, m, e}) })
	tr.now = func() time.Time { return clock }
	tr.begin()

	clock = clock.Add(10 * time.Second)
	tr.advance(1000) // mark: 10s per 1000 rows, 2000 left
	require.Len(t, calls, 2)
	assert.InDelta(t, 20, calls[1].eta, 1e-9)

	clock = clock.Add(time.Second)
	tr.advance(30) // 34%: counts down only
	assert.InDelta(t, 19, calls[2].eta, 1e-9)

	clock = clock.Add(9 * time.Second)
	tr.advance(970) // mark at 2000
	assert.InDelta(t, 9, calls[3].eta, 1e-9)
	assert.Equal(t, "2000/3000", calls[3].msg)
}

func TestTrackerEmptyTable(t *testing.T) {
	var calls []call
	tr := newTracker(0, func(p int, m string, e float64) { calls = append(calls, call{p, m, e}) })
	tr.begin()
	tr.finish()
	assert.Equal(t, []call{{0, "0/0", 0}, {100, "0/0", 0}}, calls)
}

func TestTrackerWithoutCallback(t *testing.T) {
	tr := newTracker(10, nil)
	tr.begin()
	tr.advance(10)
	tr.finish()
	assert.Equal(t, 10, tr.done)
}
