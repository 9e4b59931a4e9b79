package infrastructure

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventLoop_RunsInPostOrderOnOneGoroutine(t *testing.T) {
	loop := NewEventLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		loop.Post(func() { order = append(order, i) })
	}
	loop.Post(func() {
		// nested posts run after the current batch
		loop.Post(func() { order = append(order, 99) })
	})

	loop.RunUntil(ctx, func() bool { return len(order) == 6 })

	assert.Equal(t, []int{0, 1, 2, 3, 4, 99}, order)
}

func TestEventLoop_PostFromOtherGoroutines(t *testing.T) {
	loop := NewEventLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loop.Post(func() { count++ })
		}()
	}

	loop.RunUntil(ctx, func() bool { return count == 50 })
	wg.Wait()

	assert.Equal(t, 50, count)
}

func TestEventLoop_CallAndStop(t *testing.T) {
	loop := NewEventLoop()
	done := make(chan struct{})
	go func() {
		loop.Run(context.Background())
		close(done)
	}()

	value := 0
	assert.True(t, loop.Call(context.Background(), func() { value = 7 }))
	assert.Equal(t, 7, value)

	loop.Stop()
	<-done

	ran := false
	loop.Post(func() { ran = true })
	assert.False(t, loop.Call(context.Background(), func() {}))
	assert.False(t, ran, "work posted after stop is discarded")
}

func TestEventLoop_ContextCancelStops(t *testing.T) {
	loop := NewEventLoop()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestEventLoop_RunUntilKeepsRemainingWork(t *testing.T) {
	loop := NewEventLoop()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		loop.Post(func() { order = append(order, i) })
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	loop.RunUntil(ctx, func() bool { return len(order) == 1 })
	assert.Equal(t, []int{0}, order)

	loop.RunUntil(ctx, func() bool { return len(order) == 3 })
	assert.Equal(t, []int{0, 1, 2}, order)
}
