package event

import (
	"context"
	"sync"
)

// Response is the outcome of one command: OK, or an error message meant
// for the client verbatim.
type Response struct {
	OK    bool
	Error string
}

// OK is the successful response.
func OK() Response { return Response{OK: true} }

// Errf builds a failed response from an error.
func Errf(err error) Response {
	if err == nil {
		return OK()
	}
	return Response{Error: err.Error()}
}

// Reply is a single-use handoff from the event loop to whatever is waiting
// on a command's outcome. Deliver is safe to call more than once and safe
// to call after the waiter has gone away; only the first value is kept.
type Reply struct {
	once sync.Once
	ch   chan Response
}

// NewReply creates an undelivered reply slot.
func NewReply() *Reply {
	// Capacity 1 so Deliver never blocks on an abandoned waiter.
	return &Reply{ch: make(chan Response, 1)}
}

// Deliver stores the response. Second and later calls are no-ops.
func (r *Reply) Deliver(resp Response) {
	if r == nil {
		return
	}
	r.once.Do(func() { r.ch <- resp })
}

// Wait blocks until the response is delivered or ctx ends.
func (r *Reply) Wait(ctx context.Context) (Response, error) {
	select {
	case resp := <-r.ch:
		return resp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}
