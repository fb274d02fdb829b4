package morph

import (
	"sync"
	"time"
)

// Scheduler is the host's frame-scheduling primitive: it invokes fn
// once per available display frame, passing the current time, until fn
// returns false. The engine never owns the loop; it only decides, at
// each tick, whether to keep going.
type Scheduler interface {
	Schedule(fn func(now time.Time) (keepGoing bool))
}

// TickerScheduler drives ticks off a time.Ticker in a goroutine. Hosts
// with a real display loop supply their own Scheduler instead; either
// way all ticks of one animation arrive sequentially, which is the
// serialization the engine relies on.
type TickerScheduler struct {
	Interval time.Duration
}

// Schedule implements Scheduler.
func (s TickerScheduler) Schedule(fn func(time.Time) bool) {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for now := range ticker.C {
			if !fn(now) {
				return
			}
		}
	}()
}

// animation is one run's cancellation token. Checked at every tick
// boundary; once stopped, the run schedules no further work and the
// last fully rendered frame stays visible.
type animation struct {
	once sync.Once
	done chan struct{}
}

func (a *animation) stop() {
	a.once.Do(func() { close(a.done) })
}

func (a *animation) stopped() bool {
	select {
	case <-a.done:
		return true
	default:
		return false
	}
}

// Animator drives a time-parameterized frame sequence. It is Idle or
// Running; Start implicitly cancels a running animation before
// beginning, so two runs never race for the same output buffers, and
// Cancel is idempotent.
type Animator struct {
	scheduler Scheduler
	throttle  int
	current   *animation
}

// NewAnimator creates an animator on the given scheduler. throttle
// renders one frame out of every n ticks; the conventional value 2
// halves the display refresh rate.
func NewAnimator(scheduler Scheduler, throttle int) *Animator {
	if throttle < 1 {
		throttle = 1
	}
	return &Animator{scheduler: scheduler, throttle: throttle}
}

// Running reports whether an animation is in flight.
func (a *Animator) Running() bool {
	return a.current != nil && !a.current.stopped()
}

// Start begins an animation of the given duration. At every rendered
// tick it computes t = elapsed/duration clamped to [0,1] and calls
// onFrame(t); the run ends after the tick that delivers t == 1, or
// when cancelled. The first tick anchors the clock, so t always starts
// from 0 regardless of scheduling latency.
func (a *Animator) Start(duration time.Duration, onFrame func(t float64)) {
	a.Cancel()

	if duration <= 0 {
		// Nothing to animate; deliver the final frame synchronously.
		onFrame(1)
		return
	}

	run := &animation{done: make(chan struct{})}
	a.current = run

	var start time.Time
	ticks := 0
	a.scheduler.Schedule(func(now time.Time) bool {
		if run.stopped() {
			return false
		}
		if start.IsZero() {
			start = now
		}
		ticks++
		if ticks%a.throttle != 0 {
			return true
		}

		t := float64(now.Sub(start)) / float64(duration)
		if t >= 1 {
			t = 1
		}
		onFrame(t)

		if t >= 1 {
			run.stop()
			return false
		}
		return true
	})
}

// Cancel stops the running animation, if any. Safe to call repeatedly
// and when already idle.
func (a *Animator) Cancel() {
	if a.current != nil {
		a.current.stop()
	}
}
