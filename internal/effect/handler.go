package effect

import "reflect"

// Handler is the capability of an entity that can host effects.
// Entities own a Collection and route attachment traffic into it.
type Handler interface {
	ObjectID() uint32
	Name() string
	// IsVisible reports whether the host is live (visible/enabled) right now.
	IsVisible() bool

	AttachEffect(e *Effect)
	DetachEffect(id int32) (*Effect, bool)
	DetachEffectInstance(e *Effect) (*Effect, bool)
}

// Damageable is implemented by hosts that can take periodic damage.
type Damageable interface {
	CurrentHP() float64
	ReduceHP(amount float64)
}

// Healable is implemented by hosts that can be healed.
type Healable interface {
	RestoreHP(amount float64)
}

// ownerResolver maps an owner object ID back to its Handler.
// Effects keep only the object ID of their owner; the world installs the
// resolver so behaviors can reach the host without holding a reference to it.
var ownerResolver func(objectID uint32) (Handler, bool)

// SetOwnerResolver sets the package-level owner resolver.
// Passing nil disables owner lookups (Owner always reports absent).
func SetOwnerResolver(fn func(objectID uint32) (Handler, bool)) {
	ownerResolver = fn
}

func resolveOwner(objectID uint32) (Handler, bool) {
	if ownerResolver == nil {
		return nil, false
	}
	h, ok := ownerResolver(objectID)
	if !ok || isNilHandler(h) {
		return nil, false
	}
	return h, true
}

// isNilHandler reports whether h is nil or a nil pointer wrapped in the interface.
func isNilHandler(h Handler) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
