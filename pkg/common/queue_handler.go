package common

import (
	"iter"
	"slices"
	"sync"
	"time"
)

// QueueProcessor is a function that processes a batch of items from the queue.
type QueueProcessor[V any] func(items []V)

// QueueHandler collects items and hands them to the processor in chunks of at most
// chunkSize, every interval. The processor is never called concurrently.
type QueueHandler[V any] struct {
	mu        sync.Mutex
	queue     []V
	processor QueueProcessor[V]
	chunkSize int
	interval  time.Duration
	done      chan struct{}
	stopped   chan struct{}
	stopOnce  sync.Once
}

func NewQueueHandler[V any](processor QueueProcessor[V], chunkSize int, interval time.Duration) *QueueHandler[V] {
	if chunkSize <= 0 {
		chunkSize = 1
	}
	if interval <= 0 {
		interval = time.Second
	}
	q := &QueueHandler[V]{
		queue:     make([]V, 0),
		processor: processor,
		chunkSize: chunkSize,
		interval:  interval,
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	go q.processQueue()
	return q
}

func (h *QueueHandler[V]) Add(item ...V) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, item...)
}

func (h *QueueHandler[V]) AddIter(item iter.Seq[V]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, slices.Collect(item)...)
}

func (h *QueueHandler[V]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}

func (h *QueueHandler[V]) next() []V {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.queue) == 0 {
		return nil
	}
	items := h.queue[:min(h.chunkSize, len(h.queue)):min(h.chunkSize, len(h.queue))]
	h.queue = h.queue[len(items):]
	return items
}

func (h *QueueHandler[V]) drain() {
	for items := h.next(); len(items) > 0; items = h.next() {
		h.processor(items)
	}
}

func (h *QueueHandler[V]) processQueue() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	defer close(h.stopped)
	for {
		select {
		case <-h.done:
			h.drain()
			return
		case <-ticker.C:
			h.drain()
		}
	}
}

// Stop processes what is left in the queue and waits for the processor to return.
func (h *QueueHandler[V]) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
	<-h.stopped
}
