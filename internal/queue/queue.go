// Package queue implements the bounded, inspectable request queues a
// Controller owns: readq, writeq, otherq. Removal from an arbitrary
// position (a scheduler may pick a request that is not at the head,
// and the Controller removes it once its terminal command issues) is
// the operation a plain channel or container
// doesn't give you for free; see DESIGN.md for why this is a plain
// slice rather than the ring-buffer-with-tombstones the design notes
// float -- at the queue depths this simulator runs (tens of entries)
// the two have identical asymptotic behavior and the slice is far
// easier to read and to prove correct without running it.
package queue

import "github.com/behrlich/go-dramsim/internal/request"

// Queue is a bounded FIFO of in-flight requests with O(n) lookup by
// address and O(n) removal by index, used for write-forwarding and
// row-policy scans.
type Queue struct {
	items []*request.Request
	max   int
}

// New returns an empty queue bounded at max entries.
func New(max int) *Queue {
	return &Queue{max: max}
}

// Len reports the number of queued requests.
func (q *Queue) Len() int { return len(q.items) }

// Max reports the queue's capacity.
func (q *Queue) Max() int { return q.max }

// Full reports whether the queue is at capacity.
func (q *Queue) Full() bool { return len(q.items) >= q.max }

// Push appends req if there is room, reporting whether it succeeded.
func (q *Queue) Push(req *request.Request) bool {
	if q.Full() {
		return false
	}
	q.items = append(q.items, req)
	return true
}

// Front returns the oldest queued request, or nil if empty.
func (q *Queue) Front() *request.Request {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// At returns the request at index i, or nil if out of range.
func (q *Queue) At(i int) *request.Request {
	if i < 0 || i >= len(q.items) {
		return nil
	}
	return q.items[i]
}

// RemoveAt removes and returns the request at index i.
func (q *Queue) RemoveAt(i int) *request.Request {
	if i < 0 || i >= len(q.items) {
		return nil
	}
	req := q.items[i]
	q.items = append(q.items[:i], q.items[i+1:]...)
	return req
}

// RemoveFront removes and returns the oldest queued request.
func (q *Queue) RemoveFront() *request.Request {
	return q.RemoveAt(0)
}

// FindByAddr returns the index of the first queued request targeting
// addr, or -1 if none matches. Used for write-forwarding: a Read
// checks writeq for a matching in-flight Write.
func (q *Queue) FindByAddr(addr uint64) int {
	for i, req := range q.items {
		if req.Addr == addr {
			return i
		}
	}
	return -1
}

// Each calls fn for every queued request in FIFO order, stopping early
// if fn returns false. The Scheduler uses this to scan for the best
// candidate without exposing the backing slice.
func (q *Queue) Each(fn func(i int, req *request.Request) bool) {
	for i, req := range q.items {
		if !fn(i, req) {
			return
		}
	}
}
