package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridstate/internal/fsm"
)

// Journal is an fsm.Observer that writes each transition to the store.
// Write failures are logged and do not interrupt the game.
type Journal struct {
	store     *Store
	sessionID string
	logger    *log.Logger
	seq       int
}

// NewJournal returns a journal observer for one session.
// logger may be nil, in which case the default logger is used.
func NewJournal(store *Store, sessionID string, logger *log.Logger) *Journal {
	if logger == nil {
		logger = log.Default()
	}
	return &Journal{store: store, sessionID: sessionID, logger: logger}
}

// OnTransition implements fsm.Observer.
func (j *Journal) OnTransition(t fsm.Transition) {
	j.seq++
	_, err := j.store.RecordTransition(TransitionRecord{
		SessionID: j.sessionID,
		Seq:       j.seq,
		Tick:      t.Tick,
		FromState: t.From.String(),
		ToState:   t.To.String(),
		Lives:     t.Lives,
	})
	if err != nil {
		j.logger.Warn("could not journal transition", "session", j.sessionID, "error", err)
	}
}
