// Package batching accumulates the draw items of one type until they are
// flushed to the GPU.
package batching

import (
	"errors"
	"fmt"
	"log/slog"

	"render2d/core"
	"render2d/internal/reactable"
)

// DefaultBatchSize is the capacity used until a BatchSizeChanged
// notification arrives.
const DefaultBatchSize = 1000

// ErrBatchFull is returned when the batch is still full after the ready
// callback ran, meaning nothing flushed it.
var ErrBatchFull = errors.New("batch is full")

// KeyFunc extracts the attribute that must be shared by every item of a
// batch, such as the texture being sampled.
type KeyFunc[T Item] func(T) uint32

// Slot is one position of a batch.
type Slot[T Item] struct {
	Ready bool
	Item  T
}

// Service is the batch accumulator for a single item type.
type Service[T Item] struct {
	batchType reactable.BatchType
	key       KeyFunc[T]
	logger    *slog.Logger

	slots   []Slot[T]
	next    int
	lastKey uint32
	onReady func()

	subs []*reactable.Subscription
}

// NewService creates a service of DefaultBatchSize capacity that follows
// batch size notifications for batchType. key may be nil when items of the
// type never force a flush on their own.
func NewService[T Item](bus *reactable.Bus, batchType reactable.BatchType, key KeyFunc[T], logger *slog.Logger) (*Service[T], error) {
	if bus == nil {
		return nil, core.NilArgument("bus")
	}
	if logger == nil {
		return nil, core.NilArgument("logger")
	}

	s := &Service[T]{
		batchType: batchType,
		key:       key,
		logger:    logger.With("batch", batchType.String()),
		slots:     make([]Slot[T], DefaultBatchSize),
	}

	s.subs = append(s.subs,
		bus.BatchSize.Subscribe(reactable.Reactor[reactable.BatchSizeData]{
			ID:        reactable.BatchSizeChanged,
			Name:      "batching-service-" + batchType.String(),
			OnReceive: s.onBatchSize,
		}),
		bus.Push.Subscribe(reactable.Reactor[struct{}]{
			ID:        reactable.SystemShuttingDown,
			Name:      "batching-service-" + batchType.String(),
			OnReceive: func(struct{}) { s.Dispose() },
		}),
	)
	return s, nil
}

// OnReadyForRendering registers the callback invoked when the batch must be
// flushed before another item can be accepted.
func (s *Service[T]) OnReadyForRendering(fn func()) {
	s.onReady = fn
}

// Add stores item in the next free slot. A full batch, or an item whose key
// differs from the previous one, first triggers the ready callback.
func (s *Service[T]) Add(item T) error {
	var k uint32
	if s.key != nil {
		k = s.key(item)
	}

	keyChanged := s.key != nil && s.next > 0 && k != s.lastKey
	if s.Full() || keyChanged {
		s.signalReady()
	}
	if s.Full() {
		return fmt.Errorf("%s batch of %d: %w", s.batchType, len(s.slots), ErrBatchFull)
	}

	s.slots[s.next] = Slot[T]{Ready: true, Item: item}
	s.next++
	s.lastKey = k
	return nil
}

// EmptyBatch clears every slot. It does nothing when no slot is ready.
func (s *Service[T]) EmptyBatch() {
	if !s.HasReady() {
		return
	}
	clear(s.slots)
	s.next = 0
}

// ReadyItems returns the ready items in insertion order.
func (s *Service[T]) ReadyItems() []T {
	items := make([]T, 0, s.next)
	for _, slot := range s.slots[:s.next] {
		if slot.Ready {
			items = append(items, slot.Item)
		}
	}
	return items
}

func (s *Service[T]) HasReady() bool {
	for _, slot := range s.slots[:s.next] {
		if slot.Ready {
			return true
		}
	}
	return false
}

// Slots exposes the batch for inspection.
func (s *Service[T]) Slots() []Slot[T] { return s.slots }

func (s *Service[T]) Capacity() int { return len(s.slots) }

// Len is the index of the first unused slot.
func (s *Service[T]) Len() int { return s.next }

func (s *Service[T]) Full() bool { return s.next >= len(s.slots) }

func (s *Service[T]) BatchType() reactable.BatchType { return s.batchType }

// Dispose drops the service's subscriptions. Safe to call more than once.
func (s *Service[T]) Dispose() {
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.subs = nil
}

func (s *Service[T]) signalReady() {
	if s.onReady == nil || !s.HasReady() {
		return
	}
	s.onReady()
}

func (s *Service[T]) onBatchSize(data reactable.BatchSizeData) {
	if data.TypeOfBatch != s.batchType {
		return
	}
	if s.next > 0 {
		s.logger.Warn("resizing batch discards pending items", "pending", s.next)
	}
	s.slots = make([]Slot[T], data.Size)
	s.next = 0
	s.lastKey = 0
	s.logger.Info("batch resized", "size", data.Size)
}
