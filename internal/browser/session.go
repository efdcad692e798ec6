// Package browser adapts browser network events for the capture pipeline.
package browser

import (
	"sync"
)

// Request is an observed network request
type Request interface {
	URL() string
	Method() string
	Headers() map[string]string
	PostData() (string, error)
	ResourceType() string
}

// Response is an observed network response together with its originating request
type Response interface {
	URL() string
	Status() int
	StatusText() string
	Headers() map[string]string
	Text() (string, error)
	Request() Request
}

// Handlers receive events for one subscription. Either field may be nil.
type Handlers struct {
	OnRequest  func(Request)
	OnResponse func(Response)
}

// Subscription identifies a registered pair of handlers
type Subscription uint64

// Session emits request and response events of a browser page
type Session interface {
	Subscribe(h Handlers) Subscription
	// Unsubscribe removes the handlers. Once it returns no handler of the
	// subscription is running and none will be called again.
	Unsubscribe(id Subscription)
}

type subscriber struct {
	id       Subscription
	handlers Handlers
}

// Hub fans events out to subscribers in subscription order
type Hub struct {
	mu   sync.RWMutex
	next Subscription
	subs []subscriber
}

// NewHub creates a hub with no subscribers
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers handlers and returns their subscription id
func (h *Hub) Subscribe(handlers Handlers) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.subs = append(h.subs, subscriber{id: h.next, handlers: handlers})
	return h.next
}

// Unsubscribe removes a subscription; unknown ids are ignored.
// It waits for handlers that are currently running to return.
func (h *Hub) Unsubscribe(id Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of active subscriptions
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// EmitRequest delivers a request event to every subscriber
func (h *Hub) EmitRequest(r Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subs {
		if s.handlers.OnRequest != nil {
			s.handlers.OnRequest(r)
		}
	}
}

// EmitResponse delivers a response event to every subscriber
func (h *Hub) EmitResponse(r Response) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subs {
		if s.handlers.OnResponse != nil {
			s.handlers.OnResponse(r)
		}
	}
}
