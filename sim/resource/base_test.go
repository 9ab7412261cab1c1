package resource

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseModel_FullAndLazy_SameCompletionOrder(t *testing.T) {
	// GIVEN the same workload started under both recomputation strategies,
	// including two actions completing at the exact same instant
	run := func(mode UpdateMode) []string {
		m := NewBaseModel("test", mode)
		var order []string
		record := func(name string) func(*Action) {
			return func(*Action) { order = append(order, name) }
		}
		a := m.StartAction(0, "a", 10, 2, 1) // finishes at 5
		a.OnTerminal(record("a"))
		b := m.StartAction(0, "b", 5, 1, 1) // finishes at 5, same instant
		b.OnTerminal(record("b"))
		c := m.StartAction(0, "c", 3, 1, 1) // finishes at 3
		c.OnTerminal(record("c"))

		now := 0.0
		for m.ActionCount() > 0 {
			now = m.NextOccurringEvent(now)
			m.UpdateActionsState(now, 0)
		}
		return order
	}

	// WHEN both strategies drain the same action set
	fullOrder := run(Full)
	lazyOrder := run(Lazy)

	// THEN simultaneous completions surface in identical (insertion) order
	assert.Equal(t, []string{"c", "a", "b"}, fullOrder)
	assert.Equal(t, fullOrder, lazyOrder)
}

func TestBaseModel_NextOccurringEvent_NoActions(t *testing.T) {
	// GIVEN a model with no in-flight action
	for _, mode := range []UpdateMode{Full, Lazy} {
		m := NewBaseModel("test", mode)

		// WHEN asked for the next completion
		// THEN it reports that none will ever occur
		assert.Equal(t, -1.0, m.NextOccurringEvent(0))
	}
}

func TestBaseModel_NextOccurringEvent_ZeroRateNeverCompletes(t *testing.T) {
	// GIVEN an action consuming at rate zero
	for _, mode := range []UpdateMode{Full, Lazy} {
		m := NewBaseModel("test", mode)
		a := m.StartAction(0, "stalled", 10, 0, 1)

		// THEN its projected completion is infinite and the model reports
		// no upcoming event
		assert.True(t, math.IsInf(a.FinishTime(), 1))
		assert.Equal(t, -1.0, m.NextOccurringEvent(0))
	}
}

func TestAction_SetRate_MovesCompletionTime(t *testing.T) {
	// GIVEN an action of 10 units at rate 1 (projected completion t=10)
	for _, mode := range []UpdateMode{Full, Lazy} {
		m := NewBaseModel("test", mode)
		a := m.StartAction(0, "exec", 10, 1, 1)
		require.Equal(t, 10.0, m.NextOccurringEvent(0))

		// WHEN its rate doubles at t=2 (8 units left)
		a.SetRate(2, 2)

		// THEN the projected completion moves to t=6 under both strategies
		assert.Equal(t, 6.0, a.FinishTime())
		assert.Equal(t, 6.0, m.NextOccurringEvent(2))
	}
}

func TestAction_SetRate_ToZero_ParksTheAction(t *testing.T) {
	// GIVEN two actions where only one stalls
	m := NewBaseModel("test", Lazy)
	stalled := m.StartAction(0, "stalled", 10, 1, 1)
	m.StartAction(0, "live", 6, 1, 1)

	// WHEN the first one's rate drops to zero at t=2
	stalled.SetRate(2, 0)

	// THEN the other action still drives the next event
	assert.Equal(t, 6.0, m.NextOccurringEvent(2))

	// AND the stalled one keeps its synced remaining work
	assert.Equal(t, 8.0, stalled.Remaining(4))
}

func TestAction_Cancel_RemovesFromModel(t *testing.T) {
	// GIVEN a running action
	m := NewBaseModel("test", Lazy)
	a := m.StartAction(0, "exec", 10, 1, 1)
	var terminal ActionState
	a.OnTerminal(func(done *Action) { terminal = done.State() })

	// WHEN it is canceled at t=3
	a.Cancel(3)

	// THEN it is terminal with its progress frozen, detached from the model
	assert.Equal(t, ActionCanceled, a.State())
	assert.Equal(t, ActionCanceled, terminal)
	assert.Equal(t, 7.0, a.Remaining(100))
	assert.Equal(t, 0, m.ActionCount())
	assert.Equal(t, -1.0, m.NextOccurringEvent(3))

	// AND canceling again is a no-op
	a.Cancel(5)
	assert.Equal(t, ActionCanceled, a.State())
}

func TestAction_Fail_ReportsFailedState(t *testing.T) {
	// GIVEN a running action
	m := NewBaseModel("test", Full)
	a := m.StartAction(0, "exec", 10, 1, 1)

	// WHEN its resource fails at t=4
	a.Fail(4)

	// THEN the action is failed and the model forgets it
	assert.Equal(t, ActionFailed, a.State())
	assert.Equal(t, 4.0, a.FinishTime())
	assert.Equal(t, 0, m.ActionCount())
}

func TestAction_Remaining_DoesNotMutate(t *testing.T) {
	// GIVEN a running action observed twice at different times
	m := NewBaseModel("test", Full)
	a := m.StartAction(0, "exec", 10, 2, 1)

	// THEN observation is pure: both reads are consistent with t=0 state
	assert.Equal(t, 6.0, a.Remaining(2))
	assert.Equal(t, 2.0, a.Remaining(4))
	assert.Equal(t, 0.0, a.Remaining(100))
}

func TestBaseModel_Destroy_Twice_Panics(t *testing.T) {
	// GIVEN a destroyed model
	m := NewBaseModel("test", Full)
	m.Destroy()
	require.True(t, m.Destroyed())

	// WHEN Destroy is called again
	// THEN it panics: the lifecycle owner has a double-free bug
	assert.Panics(t, func() { m.Destroy() })
}

func TestBaseModel_StartAction_AfterDestroy_Panics(t *testing.T) {
	// GIVEN a destroyed model
	m := NewBaseModel("test", Lazy)
	m.Destroy()

	// WHEN an action is started on it
	// THEN it panics instead of corrupting released bookkeeping
	assert.Panics(t, func() { m.StartAction(0, "late", 1, 1, 1) })
}
