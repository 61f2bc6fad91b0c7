// Package events allows websocket clients to register for and receive the
// chain events meant for viewers.
package events

import (
	"fmt"
	"strings"
	"sync"
)

// messageBuffer is the number of events held for a slow receiver before
// new events are dropped for it.
const messageBuffer = 100

// Events maintains a mapping of unique id and channels so goroutines
// can register and receive events.
type Events struct {
	prefix string
	m      map[string]chan string
	mu     sync.RWMutex
}

// New constructs an events value. Only messages starting with the prefix
// are delivered and the prefix is removed before delivery. An empty prefix
// delivers every message.
func New(prefix string) *Events {
	return &Events{
		prefix: prefix,
		m:      make(map[string]chan string),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.m {
		delete(evt.m, id)
		close(ch)
	}
}

// Acquire takes a unique id and returns a channel that can be used
// to receive events.
func (evt *Events) Acquire(id string) <-chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if exists {
		return ch
	}

	ch = make(chan string, messageBuffer)
	evt.m[id] = ch

	return ch
}

// Release closes and removes the channel that was provided by
// the call to Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(ch)

	return nil
}

// Count returns the number of registered receivers.
func (evt *Events) Count() int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	return len(evt.m)
}

// Send signals a message to every registered channel. Send will not block
// waiting for a receiver on any given channel. It reports whether the
// message matched the prefix.
func (evt *Events) Send(s string) bool {
	msg, ok := strings.CutPrefix(s, evt.prefix)
	if !ok {
		return false
	}
	msg = strings.TrimSpace(msg)

	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.m {
		select {
		case ch <- msg:
		default:
		}
	}

	return true
}
