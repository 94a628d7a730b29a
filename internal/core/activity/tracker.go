package activity

import (
	"strconv"
	"time"

	"github.com/keilerkonzept/topk/sliding"
)

// ChannelActivity is one leaderboard row: a channel and its spike count over
// the sliding window.
type ChannelActivity struct {
	Channel int
	Count   uint64
}

// Tracker ranks channels by recent spike count using a sliding top-k sketch.
// The sketch holds one tick per second over the window; spikes are fed in as
// the sweep cursor passes over them, so the leaderboard tracks what is on
// screen rather than raw file order.
type Tracker struct {
	sketch   *sliding.Sketch
	k        int
	lastTick time.Time
}

// NewTracker creates a tracker keeping the top k channels over windowSeconds.
func NewTracker(k, windowSeconds int) *Tracker {
	if k < 1 {
		k = 1
	}
	if windowSeconds < 1 {
		windowSeconds = 1
	}
	return &Tracker{
		sketch: sliding.New(k, windowSeconds),
		k:      k,
	}
}

// Observe counts one spike on a channel.
func (t *Tracker) Observe(channel int) {
	t.sketch.Incr(strconv.Itoa(channel))
}

// Advance expires old ticks, one per elapsed second since the last advance.
// Called from the run loop on its render tick.
func (t *Tracker) Advance(now time.Time) {
	if t.lastTick.IsZero() {
		t.lastTick = now
		return
	}
	ticks := int(now.Sub(t.lastTick) / time.Second)
	if ticks <= 0 {
		return
	}
	t.sketch.Ticks(ticks)
	t.lastTick = t.lastTick.Add(time.Duration(ticks) * time.Second)
}

// Leaders returns the current top channels, most active first. Sketch items
// that fail to parse back to a channel number cannot occur with Observe as the
// only writer, but are skipped rather than trusted.
func (t *Tracker) Leaders() []ChannelActivity {
	items := t.sketch.SortedSlice()
	out := make([]ChannelActivity, 0, len(items))
	for _, item := range items {
		if item.Count == 0 {
			continue
		}
		ch, err := strconv.Atoi(item.Item)
		if err != nil {
			continue
		}
		out = append(out, ChannelActivity{Channel: ch, Count: uint64(item.Count)})
	}
	return out
}

// K returns the leaderboard size.
func (t *Tracker) K() int { return t.k }
