package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureEvtSet_PeekNextTime_Empty(t *testing.T) {
	// GIVEN an empty future event set
	fes := NewFutureEvtSet()

	// WHEN the next occurrence date is polled
	_, ok := fes.PeekNextTime()

	// THEN the poll reports emptiness instead of erroring
	assert.False(t, ok)
	assert.Equal(t, 0, fes.Len())
}

func TestFutureEvtSet_PopReady_DateOrder(t *testing.T) {
	// GIVEN events inserted out of date order
	fes := NewFutureEvtSet()
	var fired []string
	fes.Insert(3.0, func(now float64) { fired = append(fired, "late") })
	fes.Insert(1.0, func(now float64) { fired = append(fired, "early") })
	fes.Insert(2.0, func(now float64) { fired = append(fired, "middle") })

	next, ok := fes.PeekNextTime()
	require.True(t, ok)
	assert.Equal(t, 1.0, next)

	// WHEN all events up to t=3 are drained
	for _, ev := range fes.PopReady(3.0) {
		ev.Apply(ev.Date)
	}

	// THEN they fired in date order and the set is empty
	assert.Equal(t, []string{"early", "middle", "late"}, fired)
	assert.Equal(t, 0, fes.Len())
}

func TestFutureEvtSet_PopReady_SameDate_InsertionOrder(t *testing.T) {
	// GIVEN three events scheduled at the exact same date
	fes := NewFutureEvtSet()
	var fired []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		fes.Insert(5.0, func(now float64) { fired = append(fired, name) })
	}

	// WHEN they become ready
	for _, ev := range fes.PopReady(5.0) {
		ev.Apply(ev.Date)
	}

	// THEN ties resolve by insertion order, deterministically
	assert.Equal(t, []string{"first", "second", "third"}, fired)
}

func TestFutureEvtSet_PopReady_LeavesFutureEvents(t *testing.T) {
	// GIVEN events on both sides of the drain boundary
	fes := NewFutureEvtSet()
	fes.Insert(1.0, func(now float64) {})
	fes.Insert(10.0, func(now float64) {})

	// WHEN draining up to t=5
	ready := fes.PopReady(5.0)

	// THEN only the ready event is returned and the other stays pending
	require.Len(t, ready, 1)
	assert.Equal(t, 1.0, ready[0].Date)
	next, ok := fes.PeekNextTime()
	require.True(t, ok)
	assert.Equal(t, 10.0, next)
}
