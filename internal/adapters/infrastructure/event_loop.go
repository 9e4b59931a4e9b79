package infrastructure

import (
	"context"
	"sync"
)

// EventLoop runs posted functions one at a time on the goroutine that calls Run.
// It is the single UI goroutine; Post never blocks so it is safe from any goroutine,
// including from inside a posted function.
type EventLoop struct {
	mutex   sync.Mutex
	queue   []func()
	wake    chan struct{}
	done    chan struct{}
	stopped bool
}

// NewEventLoop creates an idle event loop
func NewEventLoop() *EventLoop {
	return &EventLoop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Post queues fn. Functions posted after Stop are discarded.
func (l *EventLoop) Post(fn func()) {
	l.mutex.Lock()
	if l.stopped {
		l.mutex.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mutex.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run processes posted functions until Stop is called or ctx ends.
func (l *EventLoop) Run(ctx context.Context) {
	for {
		for _, fn := range l.drain() {
			fn()
		}

		select {
		case <-l.wake:
		case <-l.done:
			return
		case <-ctx.Done():
			l.Stop()
			return
		}
	}
}

// RunUntil processes posted functions until cond reports true after a function ran.
// Work left in the batch stays queued for the next run.
func (l *EventLoop) RunUntil(ctx context.Context, cond func() bool) {
	for {
		work := l.drain()
		for i, fn := range work {
			fn()
			if cond() {
				l.requeue(work[i+1:])
				return
			}
		}

		select {
		case <-l.wake:
		case <-l.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop ends Run and discards pending work
func (l *EventLoop) Stop() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	l.queue = nil
	close(l.done)
}

// Call posts fn and waits for it to run. It must not be called from the loop goroutine.
func (l *EventLoop) Call(ctx context.Context, fn func()) bool {
	ran := make(chan struct{})
	l.Post(func() {
		fn()
		close(ran)
	})

	select {
	case <-ran:
		return true
	case <-l.done:
		return false
	case <-ctx.Done():
		return false
	}
}

func (l *EventLoop) requeue(work []func()) {
	if len(work) == 0 {
		return
	}
	l.mutex.Lock()
	if l.stopped {
		l.mutex.Unlock()
		return
	}
	l.queue = append(append([]func(){}, work...), l.queue...)
	l.mutex.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *EventLoop) drain() []func() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	work := l.queue
	l.queue = nil
	return work
}
