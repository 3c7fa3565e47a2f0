package session

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
)

// Registry fans notifications out to observers. Each observer has its own
// ordered mailbox and delivery goroutine, so publishing never blocks on an
// observer.
type Registry struct {
	mu            sync.Mutex
	logger        *slog.Logger
	subscriptions []*subscription
	lastStatus    *Status
	final         *notification
	// Observers that have been handed the final event.
	finishedFor []Observer
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// Subscribe registers observer. Subscribing the same observer twice is a
// no-op. An observer that subscribes after the session finished receives
// the terminal status and the finished event straight away.
func (registry *Registry) Subscribe(observer Observer) {
	if observer == nil {
		return
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	for _, existing := range registry.subscriptions {
		if existing.observer == observer {
			return
		}
	}
	if slices.Contains(registry.finishedFor, observer) {
		return
	}

	sub := newSubscription(observer, registry.logger)
	if registry.final != nil {
		registry.finishedFor = append(registry.finishedFor, observer)
		if registry.lastStatus != nil {
			sub.enqueue(notification{status: *registry.lastStatus})
		}
		sub.enqueue(*registry.final)
		return
	}

	// Copy on write: publishers iterate the slice they loaded without
	// holding the lock.
	next := slices.Clone(registry.subscriptions)
	registry.subscriptions = append(next, sub)
}

// Unsubscribe removes observer. Notifications still queued for it are
// dropped.
func (registry *Registry) Unsubscribe(observer Observer) {
	registry.mu.Lock()
	var removed *subscription
	next := make([]*subscription, 0, len(registry.subscriptions))
	for _, sub := range registry.subscriptions {
		if removed == nil && sub.observer == observer {
			removed = sub
			continue
		}
		next = append(next, sub)
	}
	registry.subscriptions = next
	registry.mu.Unlock()

	if removed != nil {
		removed.close()
	}
}

// Len returns the number of active subscriptions.
func (registry *Registry) Len() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.subscriptions)
}

func (registry *Registry) publishStatus(status Status) {
	registry.publish(notification{status: status})
}

func (registry *Registry) publishFinished(completed bool) {
	registry.publish(notification{finished: true, completed: completed})
}

func (registry *Registry) publish(note notification) {
	registry.mu.Lock()
	if registry.final != nil {
		registry.mu.Unlock()
		return
	}
	subscriptions := registry.subscriptions
	if note.finished {
		registry.final = &note
		registry.subscriptions = nil
		for _, sub := range subscriptions {
			registry.finishedFor = append(registry.finishedFor, sub.observer)
		}
	} else {
		status := note.status
		registry.lastStatus = &status
	}
	registry.mu.Unlock()

	for _, sub := range subscriptions {
		sub.enqueue(note)
	}
}

type subscription struct {
	observer  Observer
	logger    *slog.Logger
	mu        sync.Mutex
	queue     []notification
	wake      chan struct{}
	quit      chan struct{}
	started   atomic.Bool
	closeOnce sync.Once
}

func newSubscription(observer Observer, logger *slog.Logger) *subscription {
	return &subscription{
		observer: observer,
		logger:   logger,
		wake:     make(chan struct{}, 1),
		quit:     make(chan struct{}),
	}
}

// enqueue queues note and starts the delivery goroutine on first use, so
// an observer of a session that never publishes costs no goroutine.
func (sub *subscription) enqueue(note notification) {
	sub.mu.Lock()
	sub.queue = append(sub.queue, note)
	sub.mu.Unlock()
	if sub.started.CompareAndSwap(false, true) {
		go sub.run()
	}

	select {
	case sub.wake <- struct{}{}:
	default:
	}
}

func (sub *subscription) close() {
	sub.closeOnce.Do(func() {
		close(sub.quit)
	})
}

func (sub *subscription) run() {
	for {
		select {
		case <-sub.quit:
			return
		case <-sub.wake:
		}

		for {
			sub.mu.Lock()
			batch := sub.queue
			sub.queue = nil
			sub.mu.Unlock()
			if len(batch) == 0 {
				break
			}

			for _, note := range batch {
				select {
				case <-sub.quit:
					return
				default:
				}
				sub.deliver(note)
				if note.finished {
					return
				}
			}
		}
	}
}

func (sub *subscription) deliver(note notification) {
	defer func() {
		if recovered := recover(); recovered != nil {
			sub.logger.Error("observer panicked", "panic", recovered, "finished", note.finished)
		}
	}()

	if note.finished {
		sub.observer.OnSessionFinished(note.completed)
		return
	}
	sub.observer.OnStatusUpdate(note.status)
}
