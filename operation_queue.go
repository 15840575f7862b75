package hashgrid

import "sync"

type operation[T comparable] struct {
	typ   operationType
	value T
	tags  []Tag
}

type operationType int

const (
	opAdd operationType = iota
	opRemove
)

// opQueue collects mutations issued while readers hold the storage.
// Readers push concurrently, so every access goes through mu.
type opQueue[T comparable] struct {
	mu            sync.Mutex
	ops           []operation[T]
	pendingUpdate bool
}

func (q *opQueue[T]) push(op operation[T]) {
	q.mu.Lock()
	q.ops = append(q.ops, op)
	q.mu.Unlock()
}

func (q *opQueue[T]) requestUpdate() {
	q.mu.Lock()
	q.pendingUpdate = true
	q.mu.Unlock()
}

func (q *opQueue[T]) empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ops) == 0 && !q.pendingUpdate
}

// take swaps the pending operations out so pushes made while they are
// applied land in a fresh batch.
func (q *opQueue[T]) take() ([]operation[T], bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	ops, update := q.ops, q.pendingUpdate
	q.ops = nil
	q.pendingUpdate = false
	return ops, update
}

// EnqueueAdd adds value now if nothing holds the storage, otherwise queues
// it for the last Unlock.
func (s *storage[T]) EnqueueAdd(value T, tags ...Tag) error {
	if s.mu.TryLock() {
		s.add(value, tags...)
		s.mu.Unlock()
		return nil
	}
	s.opQueue.push(operation[T]{
		typ:   opAdd,
		value: value,
		tags:  tags,
	})
	s.drain()
	return nil
}

// EnqueueRemove removes value now if nothing holds the storage, otherwise
// queues it. Queued removals of untracked elements are dropped silently.
func (s *storage[T]) EnqueueRemove(value T) error {
	if s.mu.TryLock() {
		defer s.mu.Unlock()
		return s.remove(value)
	}
	s.opQueue.push(operation[T]{
		typ:   opRemove,
		value: value,
	})
	s.drain()
	return nil
}

// EnqueueUpdate re-indexes now, or once after the queued adds and removes
// when the storage is held. Repeated requests collapse into one pass.
func (s *storage[T]) EnqueueUpdate() error {
	if s.mu.TryLock() {
		s.update()
		s.mu.Unlock()
		return nil
	}
	s.opQueue.requestUpdate()
	s.drain()
	return nil
}

// drain applies queued operations under the exclusive lock. If a reader or
// another drain holds the storage, that holder drains on its way out.
func (s *storage[T]) drain() {
	for !s.opQueue.empty() {
		if !s.mu.TryLock() {
			return
		}
		s.processOperationQueue()
		s.mu.Unlock()
	}
}

// processOperationQueue must run with mu held exclusively
func (s *storage[T]) processOperationQueue() {
	ops, update := s.opQueue.take()

	// Adds and removes keep their relative order
	for _, op := range ops {
		switch op.typ {
		case opAdd:
			s.add(op.value, op.tags...)
		case opRemove:
			_ = s.remove(op.value)
		}
	}

	if update {
		s.update()
	}
}
