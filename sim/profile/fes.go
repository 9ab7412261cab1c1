// Implements the future event set: the single time-ordered source of every
// pending trace-driven state change (and kernel timers such as activity
// timeouts), merged so the run loop can bound how far the clock may advance.

package profile

import "container/heap"

// Event is one pending future change. Apply receives the clock value at which
// the event fires and performs the change on its target.
type Event struct {
	Date  float64
	Apply func(now float64)
	seq   uint64
}

// eventHeap orders events by date, ties broken by insertion order (stable).
// Same shape as the canonical container/heap example.
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].Date != h[j].Date {
		return h[i].Date < h[j].Date
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return ev
}

// FutureEvtSet merges all pending future events into one min-heap. Polling an
// empty set is not an error.
type FutureEvtSet struct {
	events  eventHeap
	nextSeq uint64
}

// NewFutureEvtSet creates an empty future event set.
func NewFutureEvtSet() *FutureEvtSet {
	return &FutureEvtSet{}
}

// Len returns the number of pending events.
func (f *FutureEvtSet) Len() int { return len(f.events) }

// Insert schedules apply to fire at the given date. O(log n).
func (f *FutureEvtSet) Insert(date float64, apply func(now float64)) {
	ev := &Event{Date: date, Apply: apply, seq: f.nextSeq}
	f.nextSeq++
	heap.Push(&f.events, ev)
}

// PeekNextTime returns the minimum pending date without consuming it. The
// second result is false when the set is empty.
func (f *FutureEvtSet) PeekNextTime() (float64, bool) {
	if len(f.events) == 0 {
		return 0, false
	}
	return f.events[0].Date, true
}

// PopReady removes and returns every event with date <= upTo, in
// non-decreasing date order, same-date events in insertion order. The caller
// must apply all of them before advancing the clock again.
func (f *FutureEvtSet) PopReady(upTo float64) []*Event {
	var ready []*Event
	for len(f.events) > 0 && f.events[0].Date <= upTo {
		ready = append(ready, heap.Pop(&f.events).(*Event))
	}
	return ready
}

// Clear drops every pending event.
func (f *FutureEvtSet) Clear() {
	f.events = nil
}
