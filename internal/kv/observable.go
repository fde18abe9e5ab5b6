package kv

import (
	"context"
	"sync"
)

// Op is the kind of write that produced a Change.
type Op string

const (
	OpSet    Op = "set"
	OpDelete Op = "delete"
	OpClear  Op = "clear"
)

// Change describes a successful write. Key is empty for OpClear.
type Change struct {
	Key string
	Op  Op
}

// Observable decorates a Repository and notifies subscribers after every
// successful Set, Delete or Clear. Subscribers run synchronously on the
// writer's goroutine and must not write back to the same repository.
type Observable struct {
	Repository

	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Change)
}

func NewObservable(r Repository) *Observable {
	return &Observable{Repository: r, subs: make(map[int]func(Change))}
}

// Subscribe registers fn and returns a function that removes it.
func (o *Observable) Subscribe(fn func(Change)) (unsubscribe func()) {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			o.mu.Unlock()
		})
	}
}

func (o *Observable) Set(ctx context.Context, key string, value []byte) error {
	if err := o.Repository.Set(ctx, key, value); err != nil {
		return err
	}
	o.publish(Change{Key: key, Op: OpSet})
	return nil
}

func (o *Observable) Delete(ctx context.Context, key string) error {
	if err := o.Repository.Delete(ctx, key); err != nil {
		return err
	}
	o.publish(Change{Key: key, Op: OpDelete})
	return nil
}

func (o *Observable) Clear(ctx context.Context) error {
	if err := o.Repository.Clear(ctx); err != nil {
		return err
	}
	o.publish(Change{Op: OpClear})
	return nil
}

func (o *Observable) publish(c Change) {
	o.mu.RLock()
	fns := make([]func(Change), 0, len(o.subs))
	for _, fn := range o.subs {
		fns = append(fns, fn)
	}
	o.mu.RUnlock()

	for _, fn := range fns {
		fn(c)
	}
}
