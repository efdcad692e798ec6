package browser

import (
	"sync"

	"github.com/playwright-community/playwright-go"
)

const eventQueueSize = 1024

// PlaywrightSession turns the network events of a playwright page into Session events.
// Events are queued and dispatched on a separate goroutine so handlers may call back
// into playwright (e.g. to read a response body) without stalling the driver connection.
type PlaywrightSession struct {
	*Hub
	page playwright.Page

	events    chan func()
	done      chan struct{}
	closeOnce sync.Once
	stopped   chan struct{}
}

// NewPlaywrightSession registers the page listeners once and starts dispatching
func NewPlaywrightSession(page playwright.Page) *PlaywrightSession {
	s := &PlaywrightSession{
		Hub:     NewHub(),
		page:    page,
		events:  make(chan func(), eventQueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	page.OnRequest(func(r playwright.Request) {
		s.enqueue(func() { s.EmitRequest(pwRequest{r}) })
	})
	page.OnResponse(func(r playwright.Response) {
		s.enqueue(func() { s.EmitResponse(pwResponse{r}) })
	})
	page.OnClose(func(playwright.Page) {
		s.Close()
	})

	go s.dispatch()
	return s
}

// Page returns the underlying playwright page
func (s *PlaywrightSession) Page() playwright.Page {
	return s.page
}

// Goto navigates the page to url
func (s *PlaywrightSession) Goto(url string) error {
	_, err := s.page.Goto(url)
	return err
}

// Close stops dispatching; queued events that were not delivered are dropped
func (s *PlaywrightSession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	<-s.stopped
}

func (s *PlaywrightSession) enqueue(fn func()) {
	select {
	case <-s.done:
	case s.events <- fn:
	}
}

func (s *PlaywrightSession) dispatch() {
	defer close(s.stopped)
	for {
		select {
		case <-s.done:
			return
		case fn := <-s.events:
			fn()
		}
	}
}

type pwRequest struct {
	playwright.Request
}

type pwResponse struct {
	playwright.Response
}

// Request returns the originating request of the response
func (r pwResponse) Request() Request {
	return pwRequest{r.Response.Request()}
}
