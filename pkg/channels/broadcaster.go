package channels

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Subscription identifies a subscriber so it can be removed later.
type Subscription uint64

// subscriber holds a channel and its send timeout configuration.
type subscriber[T any] struct {
	id       Subscription
	ch       chan<- T
	timeout  *time.Duration // nil means non-blocking
	inactive atomic.Bool
	dropped  atomic.Int32
}

func (s *subscriber[T]) send(msg T) {
	if s.inactive.Load() {
		s.dropped.Add(1)
		return
	}
	var err error
	if s.timeout != nil {
		err = SendWithTimeout(s.ch, msg, *s.timeout)
	} else {
		err = SendNonBlock(s.ch, msg)
	}
	if err != nil {
		// closed channels go inactive, anything else just counts as dropped
		s.dropped.Add(1)
		if errors.Is(err, ErrChannelClosed) {
			s.inactive.Store(true)
		}
	}
}

// Broadcaster broadcasts messages from a single input channel to multiple subscriber channels.
// It owns the input channel and handles graceful shutdown via context cancellation.
//
// Messages are sent to subscribers using the configured send strategy:
// - Non-blocking (default): Messages are dropped if channel is full
// - With timeout: Messages are dropped if send times out
//
// Subscribers may join and leave while the broadcaster runs; a message is
// delivered to whoever is subscribed when it is read from the input.
// On context cancellation, the input channel is closed and all remaining messages
// are drained to subscribers before shutdown completes.
type Broadcaster[T any] struct {
	mu          sync.RWMutex
	subscribers []*subscriber[T]
	nextID      Subscription
	buffer      int
	input       chan T
	started     atomic.Bool
	wg          sync.WaitGroup
}

// NewBroadcaster creates a new Broadcaster whose input channel holds buffer
// messages. A buffer below one is raised to one.
func NewBroadcaster[T any](buffer int) *Broadcaster[T] {
	if buffer < 1 {
		buffer = 1
	}
	return &Broadcaster[T]{buffer: buffer}
}

// Subscribe adds a channel to receive broadcasted messages in non-blocking mode.
// If the channel is full, messages will be dropped for that subscriber.
func (f *Broadcaster[T]) Subscribe(ch chan<- T) (Subscription, error) {
	if ch == nil {
		return 0, fmt.Errorf("subscriber channel cannot be nil")
	}
	return f.add(&subscriber[T]{ch: ch}), nil
}

// SubscribeWithTimeout adds a channel to receive broadcasted messages with a send timeout.
// If the send times out, messages will be dropped for that subscriber.
func (f *Broadcaster[T]) SubscribeWithTimeout(ch chan<- T, timeout time.Duration) (Subscription, error) {
	if ch == nil {
		return 0, fmt.Errorf("subscriber channel cannot be nil")
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", timeout)
	}
	return f.add(&subscriber[T]{ch: ch, timeout: &timeout}), nil
}

func (f *Broadcaster[T]) add(s *subscriber[T]) Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	s.id = f.nextID
	f.subscribers = append(f.subscribers, s)
	return s.id
}

// Unsubscribe removes a subscriber. The caller still owns its channel.
// Returns false if the subscription is unknown.
func (f *Broadcaster[T]) Unsubscribe(id Subscription) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.subscribers {
		if s.id == id {
			f.subscribers = append(f.subscribers[:i], f.subscribers[i+1:]...)
			return true
		}
	}
	return false
}

// Run starts the broadcaster and returns the input channel for sending messages.
//
// The returned channel is owned by Broadcaster and will be closed on context cancellation.
// After closure, all remaining messages are drained to subscribers.
//
// Returns error if already started.
func (f *Broadcaster[T]) Run(ctx context.Context) (chan<- T, error) {
	if !f.started.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("broadcaster already started")
	}

	f.input = make(chan T, f.buffer)

	f.wg.Go(func() {
		for msg := range f.input {
			f.mu.RLock()
			for _, s := range f.subscribers {
				s.send(msg)
			}
			f.mu.RUnlock()
		}
	})

	// Shutdown handler: close input and wait for drain to complete
	go func() {
		<-ctx.Done()
		close(f.input)
		f.wg.Wait()
	}()

	return f.input, nil
}

// Wait blocks until all subscribers have finished processing messages.
// This is useful for waiting for graceful shutdown to complete after
// the context is cancelled. Multiple goroutines can safely call Wait().
func (f *Broadcaster[T]) Wait() {
	f.wg.Wait()
}

type SubscriberStats struct {
	ID       Subscription
	Dropped  int
	Inactive bool
}

// Stats reports per-subscriber delivery counters in subscription order.
func (f *Broadcaster[T]) Stats() []SubscriberStats {
	f.mu.RLock()
	defer f.mu.RUnlock()
	stats := make([]SubscriberStats, 0, len(f.subscribers))
	for _, s := range f.subscribers {
		stats = append(stats, SubscriberStats{
			ID:       s.id,
			Dropped:  int(s.dropped.Load()),
			Inactive: s.inactive.Load(),
		})
	}
	return stats
}
