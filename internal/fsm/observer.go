package fsm

import "fmt"

// Transition records one state change.
type Transition struct {
	From  State
	To    State
	Tick  uint64 // Ticks() at the moment of the change
	Lives int    // Lives at the moment of the change
}

// String formats the transition as "From -> To".
func (t Transition) String() string {
	return fmt.Sprintf("%s -> %s", t.From, t.To)
}

// Observer receives every transition before the machine applies it.
// Implementations must not call back into the machine.
type Observer interface {
	OnTransition(t Transition)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(t Transition)

// OnTransition calls f(t).
func (f ObserverFunc) OnTransition(t Transition) {
	f(t)
}

// Recorder is an Observer that keeps every transition in memory.
type Recorder struct {
	transitions []Transition
}

// OnTransition appends t to the record.
func (r *Recorder) OnTransition(t Transition) {
	r.transitions = append(r.transitions, t)
}

// Transitions returns a copy of the recorded transitions.
func (r *Recorder) Transitions() []Transition {
	out := make([]Transition, len(r.transitions))
	copy(out, r.transitions)
	return out
}

// Len returns the number of recorded transitions.
func (r *Recorder) Len() int {
	return len(r.transitions)
}

// Last returns the most recent transition, if any.
func (r *Recorder) Last() (Transition, bool) {
	if len(r.transitions) == 0 {
		return Transition{}, false
	}
	return r.transitions[len(r.transitions)-1], true
}

// Reset drops all recorded transitions.
func (r *Recorder) Reset() {
	r.transitions = r.transitions[:0]
}
