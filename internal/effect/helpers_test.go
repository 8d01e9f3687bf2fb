package effect

import "testing"

// testHost is a minimal Handler backed by a Collection.
type testHost struct {
	id      uint32
	name    string
	visible bool
	hp      float64
	effects *Collection
}

func newTestHost(id uint32, hp float64) *testHost {
	h := &testHost{id: id, name: "host", visible: true, hp: hp}
	h.effects = NewCollection(h)
	return h
}

func (h *testHost) ObjectID() uint32 { return h.id }
func (h *testHost) Name() string     { return h.name }
func (h *testHost) IsVisible() bool  { return h.visible }

func (h *testHost) AttachEffect(e *Effect) { h.effects.AddEffect(e) }

func (h *testHost) DetachEffect(id int32) (*Effect, bool) { return h.effects.RemoveEffect(id) }

func (h *testHost) DetachEffectInstance(e *Effect) (*Effect, bool) {
	return h.effects.RemoveInstance(e)
}

func (h *testHost) CurrentHP() float64      { return h.hp }
func (h *testHost) ReduceHP(amount float64) { h.hp -= amount }
func (h *testHost) RestoreHP(amount float64) {
	h.hp += amount
}

// setupOwnerResolver installs a resolver over the given hosts.
func setupOwnerResolver(t *testing.T, hosts ...*testHost) map[uint32]*testHost {
	t.Helper()
	byID := make(map[uint32]*testHost, len(hosts))
	for _, h := range hosts {
		byID[h.id] = h
	}
	SetOwnerResolver(func(objectID uint32) (Handler, bool) {
		h, ok := byID[objectID]
		if !ok {
			return nil, false
		}
		return h, true
	})
	t.Cleanup(func() { SetOwnerResolver(nil) })
	return byID
}

// testBehavior counts hook calls.
type testBehavior struct {
	processed int
	exited    int
	onProcess func(e *Effect)
}

func (b *testBehavior) Kind() string { return "test" }

func (b *testBehavior) Process(e *Effect, _ float64) {
	b.processed++
	if b.onProcess != nil {
		b.onProcess(e)
	}
}

func (b *testBehavior) OnExit(*Effect) { b.exited++ }

// lingeringBehavior overrides elapse: it survives the first elapse and is
// destroyed on the second.
type lingeringBehavior struct {
	elapsed int
}

func (b *lingeringBehavior) Kind() string             { return "lingering" }
func (b *lingeringBehavior) Process(*Effect, float64) {}

func (b *lingeringBehavior) OnElapsed(e *Effect) {
	b.elapsed++
	if b.elapsed > 1 {
		e.Destroy()
	}
}

func timeEffect(id int32, timeMax, timeLeft float64) *Effect {
	return NewEffect(Params{ID: id, StackMode: StackTime, TimeMax: timeMax, TimeLeft: timeLeft}, &testBehavior{})
}

func multiplierEffect(id int32, timeMax, timeLeft float64, mult, maxMult int32) *Effect {
	return NewEffect(Params{
		ID:            id,
		StackMode:     StackMultiplier,
		TimeMax:       timeMax,
		TimeLeft:      timeLeft,
		Multiplier:    mult,
		MaxMultiplier: maxMult,
	}, &testBehavior{})
}
