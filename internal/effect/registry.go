package effect

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned by CreateBehavior for unregistered kinds.
var ErrUnknownKind = errors.New("unknown effect kind")

// behaviorRegistry maps kind name → factory function.
// Populated by init() below.
var behaviorRegistry = map[string]func(params map[string]string) Behavior{}

// RegisterBehavior registers a behavior factory by kind name.
func RegisterBehavior(kind string, factory func(params map[string]string) Behavior) {
	behaviorRegistry[kind] = factory
}

// CreateBehavior creates a behavior by kind using the registered factory.
func CreateBehavior(kind string, params map[string]string) (Behavior, error) {
	factory, ok := behaviorRegistry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return factory(params), nil
}

func init() {
	RegisterBehavior(KindStatBuff, NewStatBuff)
	RegisterBehavior(KindDamageOverTime, NewDamageOverTime)
	RegisterBehavior(KindHealOverTime, NewHealOverTime)
	RegisterBehavior(KindMarker, NewMarker)
}
