// Package schedule provides cancelable delayed tasks that can be held and resumed.
//
// Timer expiry never runs a task's action on the timer goroutine.  Instead a Due notice is posted to the scheduler's
// channel and the owner runs it from its own loop, so task actions execute on the same goroutine as everything else
// that touches the owner's state.
package schedule

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Scheduler creates tasks that share a clock and a due channel
type Scheduler struct {
	clock clockwork.Clock
	due   chan Due
}

// New creates a scheduler.  buffer is the capacity of the due channel.
func New(clock clockwork.Clock, buffer int) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		clock: clock,
		due:   make(chan Due, buffer),
	}
}

// Due returns the channel that expired tasks are announced on
func (s *Scheduler) Due() <-chan Due {
	return s.due
}

// NewTask creates an idle task that runs fire when it expires
func (s *Scheduler) NewTask(name string, fire func()) *Task {
	return &Task{
		name:      name,
		scheduler: s,
		fire:      fire,
	}
}

// Due announces that a task's countdown reached zero
type Due struct {
	task       *Task
	generation uint64
}

// Task returns the name of the task that expired
func (d Due) Task() string {
	return d.task.name
}

// Run executes the task's action if the countdown that produced this notice is still current.  Notices from
// countdowns that were since held, reset or stopped are discarded and Run returns false.
func (d Due) Run() bool {
	t := d.task
	t.mu.Lock()
	if d.generation != t.generation || !t.running {
		t.mu.Unlock()
		return false
	}
	t.running = false
	t.armed = false
	t.remaining = 0
	t.timer = nil
	t.mu.Unlock()

	t.fire()
	return true
}

// Task is a countdown with an action.  A task is armed from Reset until it fires or is stopped; while armed it is
// either running or held.
type Task struct {
	name      string
	scheduler *Scheduler
	fire      func()

	mu         sync.Mutex
	timer      clockwork.Timer
	generation uint64
	armed      bool
	running    bool
	remaining  time.Duration
	started    time.Time
}

// Reset arms the task with a fresh countdown of d and starts it
func (t *Task) Reset(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remaining = d
	t.armed = true
	t.startLocked()
}

// Hold pauses a running countdown, keeping the time that is left
func (t *Task) Hold() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.cancelLocked()
	t.remaining -= t.scheduler.clock.Since(t.started)
	if t.remaining < 0 {
		t.remaining = 0
	}
	t.running = false
}

// Resume restarts a held countdown with the time it had left.  Does nothing if the task is not armed.
func (t *Task) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.armed || t.running {
		return
	}
	t.startLocked()
}

// Stop disarms the task without running it
func (t *Task) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.armed = false
	t.running = false
	t.remaining = 0
}

// Execute disarms the task and runs its action immediately
func (t *Task) Execute() {
	t.Stop()
	t.fire()
}

// Armed reports whether the task has a pending countdown, running or held
func (t *Task) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.armed
}

// Running reports whether the countdown is currently ticking
func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Remaining returns the time left before the task fires
func (t *Task) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return t.remaining
	}
	left := t.remaining - t.scheduler.clock.Since(t.started)
	if left < 0 {
		return 0
	}
	return left
}

func (t *Task) startLocked() {
	t.cancelLocked()
	t.started = t.scheduler.clock.Now()
	t.running = true
	generation := t.generation
	t.timer = t.scheduler.clock.AfterFunc(t.remaining, func() {
		t.expired(generation)
	})
}

// cancelLocked stops the underlying timer and invalidates any notice it may already have posted
func (t *Task) cancelLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.generation++
}

func (t *Task) expired(generation uint64) {
	t.mu.Lock()
	current := generation == t.generation && t.running
	t.mu.Unlock()
	if !current {
		return
	}
	t.scheduler.due <- Due{task: t, generation: generation}
}
