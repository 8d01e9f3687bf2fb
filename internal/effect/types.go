package effect

import "fmt"

// StackMode defines how a second application of the same effect is merged
// into one that is already attached.
type StackMode int8

const (
	StackNone       StackMode = iota // duplicates are never merged
	StackTime                        // remaining time is added, clamped to TimeMax
	StackMultiplier                  // timer refreshed, multiplier increased
)

// ElapseMode defines what happens when the timer of an effect runs out.
type ElapseMode int8

const (
	ElapseDestroy  ElapseMode = iota // effect is destroyed
	ElapseUseStack                   // one stack is consumed while multiplier > 1
)

// State is the observable lifecycle state of an Effect.
type State int8

const (
	StateDetached State = iota
	StateAttachedInactive
	StateAttachedActive
	StateElapsed
)

func (m StackMode) String() string {
	switch m {
	case StackNone:
		return "none"
	case StackTime:
		return "time"
	case StackMultiplier:
		return "multiplier"
	default:
		return fmt.Sprintf("StackMode(%d)", int8(m))
	}
}

// ParseStackMode parses a stack mode name as used in effect data files.
// Empty string means StackNone.
func ParseStackMode(s string) (StackMode, error) {
	switch s {
	case "", "none":
		return StackNone, nil
	case "time":
		return StackTime, nil
	case "multiplier":
		return StackMultiplier, nil
	default:
		return StackNone, fmt.Errorf("unknown stack mode: %q", s)
	}
}

func (m StackMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *StackMode) UnmarshalText(text []byte) error {
	parsed, err := ParseStackMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m ElapseMode) String() string {
	switch m {
	case ElapseDestroy:
		return "destroy"
	case ElapseUseStack:
		return "use_stack"
	default:
		return fmt.Sprintf("ElapseMode(%d)", int8(m))
	}
}

// ParseElapseMode parses an elapse mode name. Empty string means ElapseDestroy.
func ParseElapseMode(s string) (ElapseMode, error) {
	switch s {
	case "", "destroy":
		return ElapseDestroy, nil
	case "use_stack":
		return ElapseUseStack, nil
	default:
		return ElapseDestroy, fmt.Errorf("unknown elapse mode: %q", s)
	}
}

func (m ElapseMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ElapseMode) UnmarshalText(text []byte) error {
	parsed, err := ParseElapseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (s State) String() string {
	switch s {
	case StateDetached:
		return "detached"
	case StateAttachedInactive:
		return "attached-inactive"
	case StateAttachedActive:
		return "attached-active"
	case StateElapsed:
		return "elapsed"
	default:
		return fmt.Sprintf("State(%d)", int8(s))
	}
}
