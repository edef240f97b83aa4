// Package scheduler provides a serial foreground executor for headless runs.
// It plays the role the Fyne main thread plays in the desktop app.
package scheduler

import (
	"context"
	"sync"
	"time"
)

// Loop runs posted functions one at a time on the goroutine calling Run
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	timers  map[*time.Timer]struct{}
	stopped bool

	wake     chan struct{}
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop; call Run to start processing
func NewLoop() *Loop {
	return &Loop{
		timers:   make(map[*time.Timer]struct{}),
		wake:     make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
}

// Post queues fn to run on the loop. It never blocks.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// ScheduleAfter posts fn once delay has elapsed. A zero delay queues it
// behind what is already posted.
func (l *Loop) ScheduleAfter(delay time.Duration, fn func()) {
	if delay <= 0 {
		l.Post(fn)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		l.mu.Lock()
		delete(l.timers, timer)
		l.mu.Unlock()
		l.Post(fn)
	})
	l.timers[timer] = struct{}{}
}

// Run processes posted functions until ctx is done or Stop is called
func (l *Loop) Run(ctx context.Context) error {
	for {
		for {
			fn, ok := l.next()
			if !ok {
				break
			}
			fn()
			if l.isStopped() {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.stopChan:
			return nil
		case <-l.wake:
		}
	}
}

// Stop ends Run after the current function and drops pending work
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		for timer := range l.timers {
			timer.Stop()
		}
		clear(l.timers)
		l.mu.Unlock()
		close(l.stopChan)
	})
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped || len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

func (l *Loop) isStopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}
