// Multi-subscriber notification signals. Subscribers run synchronously, in
// subscription order, on the scheduling thread; none returns a value.

package sim

// Signal is a parameterless notification with any number of subscribers.
type Signal struct {
	subs []func()
}

// Connect appends a subscriber. There is no disconnect: subscriber sets live
// as long as their engine.
func (s *Signal) Connect(fn func()) {
	s.subs = append(s.subs, fn)
}

func (s *Signal) emit() {
	for _, fn := range s.subs {
		fn()
	}
}

// TimeSignal is a notification carrying the new clock value.
type TimeSignal struct {
	subs []func(float64)
}

// Connect appends a subscriber.
func (s *TimeSignal) Connect(fn func(float64)) {
	s.subs = append(s.subs, fn)
}

func (s *TimeSignal) emit(t float64) {
	for _, fn := range s.subs {
		fn(t)
	}
}
