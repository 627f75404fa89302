package toast

import "sync"

// hooks holds the subscriber and panic-hook state for a Store.
type hooks struct {
	mu      sync.RWMutex
	nextID  uint64
	subs    []subscriber
	onPanic []func(Change, any)
}

type subscriber struct {
	id uint64
	fn func(Change)
}

// Subscribe registers fn to run after every effective mutation. fn runs on
// the goroutine that made the mutation, outside the store lock, so it may
// call back into the store. The returned func removes the subscription and
// is safe to call more than once.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.hooks.mu.Lock()
	s.hooks.nextID++
	id := s.hooks.nextID
	s.hooks.subs = append(s.hooks.subs, subscriber{id: id, fn: fn})
	s.hooks.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.hooks.mu.Lock()
			defer s.hooks.mu.Unlock()
			for i, sub := range s.hooks.subs {
				if sub.id == id {
					s.hooks.subs = append(s.hooks.subs[:i], s.hooks.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// OnPanic registers a hook that fires when a subscriber panics. The panic is
// recovered either way and the remaining subscribers still run.
func (s *Store) OnPanic(fn func(Change, any)) {
	s.hooks.mu.Lock()
	s.hooks.onPanic = append(s.hooks.onPanic, fn)
	s.hooks.mu.Unlock()
}

func (s *Store) publish(c Change) {
	s.hooks.mu.RLock()
	subs := make([]subscriber, len(s.hooks.subs))
	copy(subs, s.hooks.subs)
	s.hooks.mu.RUnlock()

	for _, sub := range subs {
		s.dispatch(sub.fn, c)
	}
}

func (s *Store) dispatch(fn func(Change), c Change) {
	defer func() {
		if r := recover(); r != nil {
			s.runOnPanic(c, r)
		}
	}()
	fn(c)
}

func (s *Store) runOnPanic(c Change, recovered any) {
	s.hooks.mu.RLock()
	hooks := make([]func(Change, any), len(s.hooks.onPanic))
	copy(hooks, s.hooks.onPanic)
	s.hooks.mu.RUnlock()

	for _, fn := range hooks {
		func() {
			defer func() { recover() }() //nolint:errcheck
			fn(c, recovered)
		}()
	}
}
