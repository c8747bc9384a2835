package vault

import "sync"

// State is where an in-progress artifact entry sits in the
// accumulate-then-decode lifecycle the CLI drives group by group.
type State int

const (
	// StateEmpty: no group has been entered yet.
	StateEmpty State = iota
	// StatePartiallyFilled: at least one group entered, not yet enough
	// to attempt a decode.
	StatePartiallyFilled
	// StateRecoverable: enough groups entered to attempt a decode, but
	// the attempt failed (missing groups still outnumber what's
	// needed, or the entered groups disagree).
	StateRecoverable
	// StateComplete: decode succeeded; Result returns the message.
	StateComplete
)

// EntryState tracks one artifact's (salt, brainkey, or share) groups
// as a user enters them interactively, attempting a decode as soon as
// enough groups are present and exposing the current State so a CLI
// can react without re-implementing this bookkeeping per artifact
// kind.
type EntryState struct {
	mu       sync.Mutex
	entries  []GroupEntry
	msgLen   int
	decodeFn func([]GroupEntry, int) ([]byte, error)
	state    State
	result   []byte
}

// NewEntryState creates an EntryState for an artifact with groupCount
// total two-byte positions (data groups plus ecc groups), decoding to
// a msgLen-byte message via decodeMessage.
func NewEntryState(groupCount, msgLen int) *EntryState {
	return &EntryState{
		entries:  make([]GroupEntry, groupCount),
		msgLen:   msgLen,
		decodeFn: decodeMessage,
	}
}

// Accept records entry at position index and re-evaluates State,
// attempting a decode once enough groups are present. It returns the
// resulting State.
func (e *EntryState) Accept(index int, entry GroupEntry) State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.entries[index] = entry

	present := 0
	for _, en := range e.entries {
		if en.Intcode != nil || en.Words != nil {
			present++
		}
	}

	switch {
	case present == 0:
		e.state = StateEmpty
	case present*2 < e.msgLen:
		e.state = StatePartiallyFilled
	default:
		data, err := e.decodeFn(e.entries, e.msgLen)
		if err != nil {
			e.state = StateRecoverable
		} else {
			e.state = StateComplete
			e.result = data
		}
	}
	return e.state
}

// State returns the current state without attempting a new decode.
func (e *EntryState) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Result returns the decoded message and true if State is
// StateComplete, or nil and false otherwise.
func (e *EntryState) Result() ([]byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateComplete {
		return nil, false
	}
	return e.result, true
}
