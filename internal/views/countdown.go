package views

import (
	"context"
	"time"
)

// Countdown is the remaining time to an event, broken into display units.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Remaining computes the countdown from now to target by floor division of
// the millisecond distance. A target in the past reports all zeros: the
// event has started, never negative digits.
func Remaining(target, now time.Time) Countdown {
	distance := target.Sub(now).Milliseconds()
	if distance < 0 {
		return Countdown{}
	}
	return Countdown{
		Days:    int(distance / 86400000),
		Hours:   int(distance % 86400000 / 3600000),
		Minutes: int(distance % 3600000 / 60000),
		Seconds: int(distance % 60000 / 1000),
	}
}

// Tick invokes fn with a fresh countdown immediately and then once per
// second until the context is cancelled. Run it in a goroutine owned by the
// countdown view and cancel the context on teardown; the ticker is always
// stopped, so navigation away leaves nothing running.
func Tick(ctx context.Context, target time.Time, fn func(Countdown)) {
	fn(Remaining(target, time.Now()))

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			fn(Remaining(target, now))
		}
	}
}
