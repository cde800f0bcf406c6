package pkg

import (
	"fmt"
	"sync"
	"time"
)

// Clock counts the time a player has spent thinking
type Clock struct {
	mu      sync.Mutex
	elapsed time.Duration
	paused  bool
	done    chan struct{}
	once    sync.Once
}

func NewClock() *Clock {
	return &Clock{
		paused: true,
		done:   make(chan struct{}),
	}
}

func (cl *Clock) String() string {
	e := cl.Elapsed()
	return fmt.Sprintf("%d:%02d", int(e.Minutes()), int(e.Seconds())%60)
}

// Run advances the clock every second until Stop is called
func (cl *Clock) Run() {
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			cl.Advance(time.Second)
		case <-cl.done:
			return
		}
	}
}

// Advance adds d to the clock unless it is paused
func (cl *Clock) Advance(d time.Duration) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if !cl.paused {
		cl.elapsed += d
	}
}

func (cl *Clock) Elapsed() time.Duration {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.elapsed
}

func (cl *Clock) Start() {
	cl.mu.Lock()
	cl.paused = false
	cl.mu.Unlock()
}

func (cl *Clock) Pause() {
	cl.mu.Lock()
	cl.paused = true
	cl.mu.Unlock()
}

func (cl *Clock) Paused() bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.paused
}

func (cl *Clock) Reset() {
	cl.mu.Lock()
	cl.elapsed = 0
	cl.mu.Unlock()
}

// Stop ends Run. It is safe to call more than once.
func (cl *Clock) Stop() {
	cl.once.Do(func() { close(cl.done) })
}
