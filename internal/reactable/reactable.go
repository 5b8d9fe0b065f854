// Package reactable is the notification bus that carries cross-cutting
// signals (context ready, batch size changes, viewport changes, shutdown)
// from bootstrap code to the rendering components.
//
// A Reactable is owned by the render thread; subscribers may unsubscribe
// themselves, or any other subscriber, while a notification is being
// delivered.
package reactable

import "slices"

// ID names a notification kind.
type ID string

const (
	GLContextCreated    ID = "gl-context-created"
	SystemShuttingDown  ID = "system-shutting-down"
	BatchHasBegun       ID = "batch-has-begun"
	BatchHasEnded       ID = "batch-has-ended"
	BatchSizeChanged    ID = "batch-size-changed"
	ViewportSizeChanged ID = "viewport-size-changed"
)

// Reactor receives notifications for a single ID.
type Reactor[T any] struct {
	ID   ID
	Name string

	OnReceive     func(data T)
	OnUnsubscribe func()
	// OnComplete runs at most once, the first time the reactable completes.
	OnComplete func()
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	id        ID
	name      string
	unsub     func()
	cancelled bool
}

func (s *Subscription) ID() ID       { return s.id }
func (s *Subscription) Name() string { return s.name }

// Unsubscribe removes the reactor. Further calls do nothing.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancelled {
		return
	}
	s.cancelled = true
	s.unsub()
}

type entry[T any] struct {
	reactor   Reactor[T]
	sub       *Subscription
	completed bool
}

// Reactable pushes notifications carrying a payload of type T.
type Reactable[T any] struct {
	entries []*entry[T]
}

func New[T any]() *Reactable[T] {
	return &Reactable[T]{}
}

// Subscribe registers reactor and returns its unsubscribe handle.
func (r *Reactable[T]) Subscribe(reactor Reactor[T]) *Subscription {
	e := &entry[T]{reactor: reactor}
	e.sub = &Subscription{
		id:   reactor.ID,
		name: reactor.Name,
	}
	e.sub.unsub = func() { r.remove(e) }
	r.entries = append(r.entries, e)
	return e.sub
}

// Push delivers data to every reactor subscribed to id, most recently
// subscribed first. Reactors removed during delivery are skipped; reactors
// added during delivery wait for the next push.
func (r *Reactable[T]) Push(id ID, data T) {
	snapshot := slices.Clone(r.entries)
	for i := len(snapshot) - 1; i >= 0; i-- {
		e := snapshot[i]
		if e.sub.cancelled || e.reactor.ID != id || e.reactor.OnReceive == nil {
			continue
		}
		e.reactor.OnReceive(data)
	}
}

// PushAndUnsubscribe delivers data like Push and then unsubscribes every
// reactor subscribed to id. Used for one-shot signals.
func (r *Reactable[T]) PushAndUnsubscribe(id ID, data T) {
	r.Push(id, data)
	r.Unsubscribe(id)
}

// Unsubscribe removes every reactor subscribed to id.
func (r *Reactable[T]) Unsubscribe(id ID) {
	for i := len(r.entries) - 1; i >= 0; i-- {
		if i >= len(r.entries) {
			continue
		}
		if e := r.entries[i]; e.reactor.ID == id {
			e.sub.Unsubscribe()
		}
	}
}

// UnsubscribeAll removes every reactor.
func (r *Reactable[T]) UnsubscribeAll() {
	for i := len(r.entries) - 1; i >= 0; i-- {
		if i >= len(r.entries) {
			continue
		}
		r.entries[i].sub.Unsubscribe()
	}
}

// Complete signals the end of the stream. Each reactor's OnComplete runs
// exactly once no matter how often Complete is called.
func (r *Reactable[T]) Complete() {
	for i := len(r.entries) - 1; i >= 0; i-- {
		if i >= len(r.entries) {
			continue
		}
		e := r.entries[i]
		if e.completed {
			continue
		}
		e.completed = true
		if e.reactor.OnComplete != nil {
			e.reactor.OnComplete()
		}
	}
}

// Subscriptions returns the live handles in registration order.
func (r *Reactable[T]) Subscriptions() []*Subscription {
	subs := make([]*Subscription, len(r.entries))
	for i, e := range r.entries {
		subs[i] = e.sub
	}
	return subs
}

func (r *Reactable[T]) remove(target *entry[T]) {
	for i, e := range r.entries {
		if e != target {
			continue
		}
		r.entries = append(r.entries[:i], r.entries[i+1:]...)
		if target.reactor.OnUnsubscribe != nil {
			target.reactor.OnUnsubscribe()
		}
		return
	}
}
