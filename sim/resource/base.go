// BaseModel implements the action bookkeeping shared by every built-in model:
// an insertion-ordered action set plus the Full/Lazy recomputation strategies.

package resource

import (
	"container/heap"
	"fmt"
	"math"
)

// completionHeap orders running actions by projected completion time, ties
// broken by insertion order so the Lazy strategy surfaces simultaneous
// completions in the same order the Full strategy does.
type completionHeap []*Action

func (h completionHeap) Len() int { return len(h) }
func (h completionHeap) Less(i, j int) bool {
	if h[i].finishTime != h[j].finishTime {
		return h[i].finishTime < h[j].finishTime
	}
	return h[i].seq < h[j].seq
}
func (h completionHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *completionHeap) Push(x any) {
	a := x.(*Action)
	a.heapIndex = len(*h)
	*h = append(*h, a)
}

func (h *completionHeap) Pop() any {
	old := *h
	n := len(old)
	a := old[n-1]
	old[n-1] = nil
	a.heapIndex = -1
	*h = old[:n-1]
	return a
}

// BaseModel holds the dynamic set of in-flight actions of one model instance.
// Concrete models embed it and add their family-specific start operations.
type BaseModel struct {
	name      string
	mode      UpdateMode
	actions   []*Action // insertion order, running actions only
	pending   completionHeap
	nextSeq   uint64
	destroyed bool
}

// NewBaseModel creates the bookkeeping for a model with the given registered
// name and recomputation strategy.
func NewBaseModel(name string, mode UpdateMode) *BaseModel {
	return &BaseModel{name: name, mode: mode}
}

// Name returns the model's registered name.
func (m *BaseModel) Name() string { return m.name }

// Mode returns the recomputation strategy the model was built with.
func (m *BaseModel) Mode() UpdateMode { return m.mode }

// ActionCount returns the number of in-flight actions.
func (m *BaseModel) ActionCount() int { return len(m.actions) }

// Destroyed reports whether Destroy has been called.
func (m *BaseModel) Destroyed() bool { return m.destroyed }

// StartAction creates a running action consuming work units at the given
// rate (units per second), starting at time now.
func (m *BaseModel) StartAction(now float64, name string, work, rate, priority float64) *Action {
	if m.destroyed {
		panic(fmt.Sprintf("model %q: starting an action after destruction", m.name))
	}
	a := &Action{
		model:     m,
		name:      name,
		priority:  priority,
		remaining: work,
		rate:      rate,
		lastSync:  now,
		startTime: now,
		state:     ActionRunning,
		seq:       m.nextSeq,
		heapIndex: -1,
	}
	m.nextSeq++
	a.refreshFinishTime()
	m.actions = append(m.actions, a)
	if m.mode == Lazy {
		heap.Push(&m.pending, a)
	}
	return a
}

// NextOccurringEvent returns the earliest projected completion time among
// in-flight actions, or -1 when no action can ever complete.
func (m *BaseModel) NextOccurringEvent(now float64) float64 {
	switch m.mode {
	case Lazy:
		if len(m.pending) == 0 {
			return -1
		}
		if t := m.pending[0].finishTime; !math.IsInf(t, 1) {
			return t
		}
		return -1
	default:
		min := math.Inf(1)
		for _, a := range m.actions {
			if a.finishTime < min {
				min = a.finishTime
			}
		}
		if math.IsInf(min, 1) {
			return -1
		}
		return min
	}
}

// UpdateActionsState advances every action to now and transitions the ones
// whose projected completion has been reached to ActionDone. The Full
// strategy syncs every action's remaining work; the Lazy strategy only pops
// finished entries from the completion heap.
func (m *BaseModel) UpdateActionsState(now, delta float64) {
	_ = delta
	switch m.mode {
	case Lazy:
		for len(m.pending) > 0 && m.pending[0].finishTime <= now {
			m.terminate(m.pending[0], now, ActionDone)
		}
	default:
		// Snapshot: terminate mutates m.actions.
		snapshot := append([]*Action(nil), m.actions...)
		for _, a := range snapshot {
			if a.finishTime <= now {
				m.terminate(a, now, ActionDone)
			} else {
				a.sync(now)
			}
		}
	}
}

// Destroy releases the model. The kernel guarantees it is called exactly once
// during shutdown; a second call is a double-free and panics.
func (m *BaseModel) Destroy() {
	if m.destroyed {
		panic(fmt.Sprintf("model %q destroyed twice", m.name))
	}
	m.destroyed = true
	m.actions = nil
	m.pending = nil
}

// terminate moves a running action to a terminal state, detaches it from the
// bookkeeping, and fires its terminal callback. No-op on terminal actions.
func (m *BaseModel) terminate(a *Action, now float64, state ActionState) {
	if a.state.Terminal() {
		return
	}
	a.sync(now)
	if state == ActionDone {
		a.remaining = 0
	}
	a.state = state
	a.finishTime = now
	m.remove(a)
	if a.onTerminal != nil {
		a.onTerminal(a)
	}
}

// requeue restores heap ordering after an action's finish time changed.
func (m *BaseModel) requeue(a *Action) {
	if m.mode == Lazy && a.heapIndex >= 0 {
		heap.Fix(&m.pending, a.heapIndex)
	}
}

func (m *BaseModel) remove(a *Action) {
	for i, other := range m.actions {
		if other == a {
			m.actions = append(m.actions[:i], m.actions[i+1:]...)
			break
		}
	}
	if a.heapIndex >= 0 {
		heap.Remove(&m.pending, a.heapIndex)
	}
}
