package effect

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/looplab/fsm"
	"github.com/oklog/ulid/v2"
)

// Activity states and events of the effect lifecycle machine.
const (
	stateInactive = "inactive"
	stateActive   = "active"
	stateElapsed  = "elapsed"

	eventActivate   = "activate"
	eventDeactivate = "deactivate"
	eventElapse     = "elapse"
)

// Params holds the construction values of an Effect.
type Params struct {
	ID             int32
	StackMode      StackMode
	ElapseMode     ElapseMode
	TimeMax        float64 // seconds; 0 means infinite
	TimeLeft       float64 // clamped to [0, TimeMax]
	Multiplier     int32   // defaults to 1
	MaxMultiplier  int32   // defaults to 1
	ActiveOnAttach bool
}

// Effect is a single timed, stackable unit of behavior attached to a host.
//
// Effects are driven by their host: one Tick per frame, SetVisible on host
// visibility changes. All calls happen on the host's update loop, so Effect
// does no locking of its own.
type Effect struct {
	id         int32
	instanceID ulid.ULID
	behavior   Behavior

	stackMode      StackMode
	elapseMode     ElapseMode
	timeMax        float64
	timeLeft       float64 // may dip below zero for one tick before elapse
	multiplier     int32
	maxMultiplier  int32
	activeOnAttach bool

	// Weak owner handle: object ID resolved through the owner resolver.
	ownerID  uint32
	attached bool

	hidden    bool
	wasActive bool

	lifecycle *fsm.FSM
}

// NewEffect creates a detached, inactive effect.
// A nil behavior is allowed: the effect then only keeps time.
func NewEffect(p Params, b Behavior) *Effect {
	e := &Effect{
		id:             p.ID,
		instanceID:     ulid.Make(),
		behavior:       b,
		stackMode:      p.StackMode,
		elapseMode:     p.ElapseMode,
		timeMax:        max(p.TimeMax, 0),
		timeLeft:       p.TimeLeft,
		multiplier:     max(p.Multiplier, 1),
		maxMultiplier:  max(p.MaxMultiplier, 1),
		activeOnAttach: p.ActiveOnAttach,
	}
	e.clampTime()

	e.lifecycle = fsm.NewFSM(
		stateInactive,
		fsm.Events{
			{Name: eventActivate, Src: []string{stateInactive}, Dst: stateActive},
			{Name: eventDeactivate, Src: []string{stateActive}, Dst: stateInactive},
			{Name: eventElapse, Src: []string{stateInactive, stateActive}, Dst: stateElapsed},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, ev *fsm.Event) {
				slog.Debug("effect state changed",
					"effect", e.id,
					"instance", e.instanceID.String(),
					"from", ev.Src,
					"to", ev.Dst)
			},
		},
	)

	return e
}

// ID returns the kind identity of the effect. Effects with equal IDs stack.
func (e *Effect) ID() int32 { return e.id }

// InstanceID returns the unique identity of this particular instance.
func (e *Effect) InstanceID() ulid.ULID { return e.instanceID }

// Behavior returns the per-kind behavior of the effect (may be nil).
func (e *Effect) Behavior() Behavior { return e.behavior }

func (e *Effect) StackMode() StackMode   { return e.stackMode }
func (e *Effect) ElapseMode() ElapseMode { return e.elapseMode }
func (e *Effect) TimeMax() float64       { return e.timeMax }
func (e *Effect) Multiplier() int32      { return e.multiplier }
func (e *Effect) MaxMultiplier() int32   { return e.maxMultiplier }
func (e *Effect) ActiveOnAttach() bool   { return e.activeOnAttach }

// TimeLeft returns the remaining time clamped to [0, TimeMax].
// For infinite effects (TimeMax == 0) the stored value is returned as is.
func (e *Effect) TimeLeft() float64 {
	if e.timeMax > 0 {
		return min(max(e.timeLeft, 0), e.timeMax)
	}
	return e.timeLeft
}

// TimeLeftPercent returns TimeLeft/TimeMax, or 0 for infinite effects.
func (e *Effect) TimeLeftPercent() float64 {
	if e.timeMax <= 0 {
		return 0
	}
	return e.TimeLeft() / e.timeMax
}

// IsActive reports whether the timer is counting down.
func (e *Effect) IsActive() bool { return e.lifecycle.Is(stateActive) }

// Destroyed reports whether the effect has elapsed (terminal).
func (e *Effect) Destroyed() bool { return e.lifecycle.Is(stateElapsed) }

// IsAttached reports whether the effect currently has an owner.
func (e *Effect) IsAttached() bool { return e.attached }

// OwnerID returns the object ID of the owner, 0 when detached.
func (e *Effect) OwnerID() uint32 { return e.ownerID }

// Owner resolves the owner handle. Returns false when detached or when the
// owner is no longer known to the world.
func (e *Effect) Owner() (Handler, bool) {
	if !e.attached {
		return nil, false
	}
	return resolveOwner(e.ownerID)
}

// State returns the observable lifecycle state.
func (e *Effect) State() State {
	switch {
	case e.Destroyed():
		return StateElapsed
	case !e.attached:
		return StateDetached
	case e.IsActive():
		return StateAttachedActive
	default:
		return StateAttachedInactive
	}
}

// Attach sets the owner of the effect. A nil owner (typed nil included) is ignored.
// With ActiveOnAttach the effect starts counting down if the owner is live.
// On a hidden owner the effect is paused as if the owner had just been hidden.
func (e *Effect) Attach(owner Handler) {
	if isNilHandler(owner) || e.Destroyed() {
		return
	}

	visible := owner.IsVisible()
	if e.activeOnAttach && visible {
		e.Activate()
	}
	e.ownerID = owner.ObjectID()
	e.attached = true

	e.hidden, e.wasActive = false, false
	if !visible {
		e.SetVisible(false)
	}

	slog.Debug("effect attached",
		"effect", e.id,
		"instance", e.instanceID.String(),
		"owner", e.ownerID,
		"active", e.IsActive())
}

// Detach clears the owner and stops the timer. The instance survives.
// Visibility bookkeeping of the old owner is dropped.
func (e *Effect) Detach() {
	e.Deactivate()
	e.ownerID = 0
	e.attached = false
	e.hidden, e.wasActive = false, false
}

// Activate starts or resumes the timer. No-op when already active or elapsed.
func (e *Effect) Activate() {
	e.fire(eventActivate)
}

// Deactivate pauses the timer, keeping the remaining time.
func (e *Effect) Deactivate() {
	e.fire(eventDeactivate)
}

// SetVisible delivers a host visibility change.
// Hiding records whether the effect was active and deactivates it; showing
// restores the recorded activity. Repeated calls with the same value are no-ops.
func (e *Effect) SetVisible(visible bool) {
	if visible != e.hidden {
		return
	}
	e.hidden = !visible

	if !visible {
		e.wasActive = e.IsActive()
		e.Deactivate()
		return
	}
	if e.wasActive {
		e.wasActive = false
		e.Activate()
	}
}

// Tick advances the effect by dt seconds. Called once per frame by the host.
//
// Expiry is checked before this tick's decrement, so an effect elapses on the
// tick after its timer crosses below zero.
func (e *Effect) Tick(dt float64) {
	if !e.IsActive() {
		return
	}

	if e.timeMax > 0 {
		if e.timeLeft < 0 {
			if e.elapseMode == ElapseUseStack && e.multiplier > 1 {
				e.multiplier--
				e.timeLeft = e.timeMax
			} else {
				e.OnElapsed()
				return
			}
		}
		e.timeLeft -= dt
	}

	if e.behavior != nil {
		e.behavior.Process(e, dt)
	}
}

// OnElapsed runs the elapse hook: the behavior's Elapser when it has one,
// Destroy otherwise.
func (e *Effect) OnElapsed() {
	if el, ok := e.behavior.(Elapser); ok {
		el.OnElapsed(e)
		return
	}
	e.Destroy()
}

// Destroy terminates the effect. The owning collection drops destroyed
// effects on its next pass.
func (e *Effect) Destroy() {
	if e.Destroyed() {
		return
	}
	if ex, ok := e.behavior.(Exiter); ok {
		ex.OnExit(e)
	}
	e.fire(eventElapse)
	e.ownerID = 0
	e.attached = false
}

// Unstack removes one stack. With a single stack left the effect elapses.
func (e *Effect) Unstack() {
	if e.multiplier <= 1 {
		e.OnElapsed()
		return
	}
	e.multiplier--
	e.timeLeft = e.timeMax
}

// Stack merges other into e. Returns false when the effects are of different
// kinds or e does not stack. On success other is consumed through its elapse hook.
func (e *Effect) Stack(other *Effect) bool {
	if other == nil || e.id != other.id {
		return false
	}

	switch e.stackMode {
	case StackTime:
		e.timeLeft = min(e.timeLeft+other.timeLeft, e.timeMax)
	case StackMultiplier:
		e.timeLeft = e.timeMax
		// Gate is checked before the increase, so the sum may exceed MaxMultiplier.
		if e.multiplier < e.maxMultiplier {
			e.multiplier += other.multiplier
		}
	default:
		return false
	}

	slog.Debug("effect stacked",
		"effect", e.id,
		"instance", e.instanceID.String(),
		"absorbed", other.instanceID.String(),
		"mode", e.stackMode.String(),
		"timeLeft", e.TimeLeft(),
		"multiplier", e.multiplier)

	other.OnElapsed()
	return true
}

// Equal reports whether other is the same kind of effect: equal IDs and
// behaviors of the same runtime type.
func (e *Effect) Equal(other *Effect) bool {
	if other == nil {
		return false
	}
	return e.id == other.id && reflect.TypeOf(e.behavior) == reflect.TypeOf(other.behavior)
}

// Hash returns the hash key of the effect kind.
func (e *Effect) Hash() int32 { return e.id }

func (e *Effect) clampTime() {
	e.timeLeft = min(e.timeLeft, e.timeMax)
	if e.timeMax > 0 {
		e.timeLeft = max(e.timeLeft, 0)
	}
}

func (e *Effect) fire(event string) {
	if !e.lifecycle.Can(event) {
		return
	}
	if err := e.lifecycle.Event(context.Background(), event); err != nil {
		slog.Warn("effect transition failed",
			"effect", e.id,
			"instance", e.instanceID.String(),
			"event", event,
			"err", err)
	}
}
