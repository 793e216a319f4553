package animate

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultInterval is the time between regenerations.
const DefaultInterval = 750 * time.Millisecond

// State is the animator's run state.
type State int

const (
	Paused State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "paused"
}

// Options configures an [Animator].
type Options struct {
	Interval time.Duration // default DefaultInterval
	Clock    Clock         // default SystemClock
	Logger   *log.Logger   // default discards
}

// Animator calls tick every interval while all gates are favourable.
// Methods are safe for concurrent use; tick runs on the clock's goroutine
// and never under the animator's lock.
type Animator struct {
	tick     func()
	interval time.Duration
	clock    Clock
	logger   *log.Logger

	mu       sync.Mutex
	enabled  bool
	visible  bool
	hovering bool
	expanded bool
	closed   bool
	state    State
	timer    Timer
	gen      uint64
	ticks    uint64
}

// New returns a paused animator. It starts visible, unhovered and collapsed
// but disabled; call SetEnabled(true) to start it.
func New(tick func(), opts Options) *Animator {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Animator{
		tick:     tick,
		interval: opts.Interval,
		clock:    opts.Clock,
		logger:   opts.Logger,
		visible:  true,
	}
}

// SetEnabled is the master switch.
func (a *Animator) SetEnabled(v bool) { a.set(&a.enabled, v) }

// SetVisible records whether the display can be seen.
func (a *Animator) SetVisible(v bool) { a.set(&a.visible, v) }

// SetHovering records whether the pointer rests on a tile.
func (a *Animator) SetHovering(v bool) { a.set(&a.hovering, v) }

// SetExpanded records whether a tile is shown expanded.
func (a *Animator) SetExpanded(v bool) { a.set(&a.expanded, v) }

// SetInterval changes the period. A running animator restarts its timer.
func (a *Animator) SetInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultInterval
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.interval = d
	if a.state == Running {
		a.stopTimer()
		a.arm()
	}
}

// State returns the current state.
func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Ticks returns how many times tick has been called.
func (a *Animator) Ticks() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ticks
}

// Close pauses the animator for good.
func (a *Animator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.apply()
}

func (a *Animator) set(gate *bool, v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	*gate = v
	a.apply()
}

// apply moves to the state the gates call for. Callers hold mu.
func (a *Animator) apply() {
	want := Paused
	if !a.closed && a.enabled && a.visible && !a.hovering && !a.expanded {
		want = Running
	}
	if want == a.state {
		return
	}

	a.stopTimer()
	if want == Running {
		a.arm()
	}
	a.state = want
	a.logger.Debug("animation", "state", want,
		"enabled", a.enabled, "visible", a.visible, "hovering", a.hovering, "expanded", a.expanded)
}

// arm starts a fresh timer. Callers hold mu and have stopped the old one.
func (a *Animator) arm() {
	a.gen++
	gen := a.gen
	a.timer = a.clock.AfterFunc(a.interval, func() { a.fire(gen) })
}

func (a *Animator) stopTimer() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.gen++
}

func (a *Animator) fire(gen uint64) {
	a.mu.Lock()
	if gen != a.gen || a.state != Running {
		a.mu.Unlock()
		return
	}
	a.arm()
	a.ticks++
	a.mu.Unlock()

	a.tick()
}
