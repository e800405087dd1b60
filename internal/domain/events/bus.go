// Package events is a minimal in-process pub/sub bus keyed by event type.
package events

import (
	"reflect"
	"sync"

	log "github.com/sirupsen/logrus"
)

type subscriber struct {
	id int
	fn func(any)
}

var (
	mu     sync.RWMutex
	nextID int
	subs   = map[string][]subscriber{} // type name -> subscribers
)

func typeNameOf[T any]() string {
	var zero *T
	rt := reflect.TypeOf(zero).Elem() // *T -> T, without dereferencing nil
	return rt.PkgPath() + "." + rt.Name()
}

// Subscribe registers fn for events of type T and returns a cancel func.
// Cancellation matches by identity, not position, so cancels arriving in any
// order always remove their own subscriber.
func Subscribe[T any](fn func(T)) func() {
	name := typeNameOf[T]()
	wrapped := func(v any) {
		if ev, ok := v.(T); ok {
			fn(ev)
		}
	}

	mu.Lock()
	nextID++
	id := nextID
	subs[name] = append(subs[name], subscriber{id: id, fn: wrapped})
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		ss := subs[name]
		for i, s := range ss {
			if s.id == id {
				subs[name] = append(ss[:i], ss[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to every subscriber of its type, in registration order.
// A panicking subscriber is recovered so it cannot take down the publisher.
func Publish[T any](ev T) {
	name := typeNameOf[T]()
	mu.RLock()
	ss := append([]subscriber(nil), subs[name]...)
	mu.RUnlock()
	for _, s := range ss {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithField("panic", r).Error("events: subscriber panic")
				}
			}()
			s.fn(ev)
		}()
	}
}

// Count reports how many subscribers type T currently has.
func Count[T any]() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(subs[typeNameOf[T]()])
}
