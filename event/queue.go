package event

import "sync/atomic"

// QueueSize must be a power of two
const (
	QueueSize  = 64
	bufferMask = QueueSize - 1
)

// EventQueue is a lock-free MPSC ring buffer
// Push may be called from any goroutine; Consume only from the frame loop
// When full, the oldest unread events are overwritten
type EventQueue struct {
	events    [QueueSize]GameEvent
	published [QueueSize]atomic.Bool
	head      atomic.Uint64
	tail      atomic.Uint64
}

// NewEventQueue creates an empty queue
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends ev
func (eq *EventQueue) Push(ev GameEvent) {
	for {
		currentTail := eq.tail.Load()
		nextTail := currentTail + 1
		if !eq.tail.CompareAndSwap(currentTail, nextTail) {
			continue
		}

		idx := currentTail & bufferMask
		eq.events[idx] = ev
		eq.published[idx].Store(true)

		currentHead := eq.head.Load()
		if nextTail-currentHead > QueueSize {
			eq.head.CompareAndSwap(currentHead, nextTail-QueueSize)
		}
		return
	}
}

// Consume drains pending events in FIFO order
func (eq *EventQueue) Consume() []GameEvent {
	for {
		currentHead := eq.head.Load()
		currentTail := eq.tail.Load()
		if currentTail == currentHead {
			return nil
		}

		available := currentTail - currentHead
		if available > QueueSize {
			available = QueueSize
			currentHead = currentTail - QueueSize
		}

		result := make([]GameEvent, 0, available)
		for i := uint64(0); i < available; i++ {
			idx := (currentHead + i) & bufferMask
			if !eq.published[idx].Load() {
				break
			}
			result = append(result, eq.events[idx])
			eq.published[idx].Store(false)
		}

		if eq.head.CompareAndSwap(currentHead, currentHead+uint64(len(result))) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns the approximate pending count
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail <= head {
		return 0
	}
	if diff := tail - head; diff < QueueSize {
		return int(diff)
	}
	return QueueSize
}
