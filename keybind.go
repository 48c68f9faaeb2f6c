package quill

import "errors"

// Expected key-binder conditions. Contract misuse (completing a recording
// that was never started) panics instead.
var (
	// ErrRecordingCancelled is delivered to a recording's continuation when
	// the recording is cancelled — explicitly, by Escape, by a bare primary
	// click, or by a newer recording superseding it.
	ErrRecordingCancelled = errors.New("quill: key recording cancelled")

	// ErrDuplicateBind is delivered to a recording's continuation when the
	// captured chord collides with an already-registered binding.
	ErrDuplicateBind = errors.New("quill: duplicate key binding")
)

// Bind associates a chord — a set of keys, raw key codes, and mouse buttons
// that must be simultaneously held, plus an exact modifier mask — with an
// action. A nonzero Hold requires the chord to stay matched for that many
// seconds before the action fires.
//
// Chord identity is defined over the key/code/button sets, the modifier mask,
// and the hold duration; the action does not participate, so two binds with
// identical chords collide.
type Bind struct {
	Codes   []int
	Keys    []Key
	Buttons []MouseButton
	Mods    Modifiers
	Hold    float64 // seconds; 0 fires immediately on match
	Action  func()

	held float64
	ran  bool
}

// SameChord reports whether b and o have identical chords (sets, modifier
// mask, and hold duration). Actions are ignored.
func (b *Bind) SameChord(o *Bind) bool {
	return b.Mods == o.Mods && b.Hold == o.Hold &&
		sameIntSet(b.Codes, o.Codes) &&
		sameKeySet(b.Keys, o.Keys) &&
		sameButtonSet(b.Buttons, o.Buttons)
}

func sameIntSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sameKeySet(a, b []Key) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sameButtonSet(a, b []MouseButton) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// RecordState is the key binder's recording state machine.
type RecordState uint8

const (
	RecordIdle      RecordState = iota // no recording started
	RecordPending                      // waiting for the next chord
	RecordCompleted                    // last recording captured a chord
	RecordCancelled                    // last recording was cancelled or failed
)

type recording struct {
	action func()
	done   func(*Bind, error)
}

// Binder matches chords of held keys and buttons against registered bindings
// and supports an interactive recording mode that captures the next chord as
// a new binding. Held state is tracked as three independent sets (raw codes,
// mapped keys, mouse buttons) plus the modifier mask from the last event.
type Binder struct {
	binds []*Bind

	heldCodes   map[int]struct{}
	heldKeys    map[Key]struct{}
	heldButtons map[MouseButton]struct{}
	mods        Modifiers

	rec      *recording
	recState RecordState
}

func newBinder() *Binder {
	return &Binder{
		heldCodes:   make(map[int]struct{}),
		heldKeys:    make(map[Key]struct{}),
		heldButtons: make(map[MouseButton]struct{}),
	}
}

// Add registers b. If a binding with the same chord already exists it is
// replaced, and the replaced binding is returned so the caller can warn;
// otherwise Add returns nil. Duplicate registration is a recoverable
// condition here — only interactive recording treats it as a failure.
func (kb *Binder) Add(b *Bind) (replaced *Bind) {
	for i, old := range kb.binds {
		if old.SameChord(b) {
			kb.binds[i] = b
			return old
		}
	}
	kb.binds = append(kb.binds, b)
	return nil
}

// Remove unregisters b. Returns whether it was registered.
func (kb *Binder) Remove(b *Bind) bool {
	for i, old := range kb.binds {
		if old == b {
			copy(kb.binds[i:], kb.binds[i+1:])
			kb.binds[len(kb.binds)-1] = nil
			kb.binds = kb.binds[:len(kb.binds)-1]
			return true
		}
	}
	return false
}

// Binds returns the registered bindings. The returned slice MUST NOT be
// mutated by the caller.
func (kb *Binder) Binds() []*Bind {
	return kb.binds
}

// RecordingState returns the recording state machine's current state.
func (kb *Binder) RecordingState() RecordState {
	return kb.recState
}

// Record starts capturing the next chord as a new binding for action. When
// the chord is captured, done is called with the new binding (which the
// continuation — not the binder — is responsible for installing via Add).
// On cancellation or a duplicate chord, done is called with a nil binding
// and ErrRecordingCancelled or ErrDuplicateBind. Starting a new recording
// while one is pending cancels the pending one first.
func (kb *Binder) Record(action func(), done func(*Bind, error)) {
	if kb.recState == RecordPending && kb.rec != nil {
		pending := kb.rec
		kb.rec = nil
		if pending.done != nil {
			pending.done(nil, ErrRecordingCancelled)
		}
	}
	kb.rec = &recording{action: action, done: done}
	kb.recState = RecordPending
}

// CancelRecording cancels a pending recording. No-op when none is pending.
func (kb *Binder) CancelRecording() {
	if kb.recState != RecordPending {
		return
	}
	rec := kb.rec
	kb.rec = nil
	kb.recState = RecordCancelled
	if rec != nil && rec.done != nil {
		rec.done(nil, ErrRecordingCancelled)
	}
}

// CompleteRecording captures the currently-held sets and modifiers as the
// pending recording's chord and signals its continuation. The continuation
// installs the binding; CompleteRecording itself does not. A chord colliding
// with a registered binding fails the recording with ErrDuplicateBind.
// Panics if no recording is pending — that is a programming error.
func (kb *Binder) CompleteRecording() {
	if kb.recState != RecordPending || kb.rec == nil {
		panic("quill: no key recording in progress")
	}
	rec := kb.rec
	kb.rec = nil

	bind := &Bind{Mods: kb.mods, Action: rec.action}
	for code := range kb.heldCodes {
		bind.Codes = append(bind.Codes, code)
	}
	for key := range kb.heldKeys {
		bind.Keys = append(bind.Keys, key)
	}
	for button := range kb.heldButtons {
		bind.Buttons = append(bind.Buttons, button)
	}

	for _, old := range kb.binds {
		if old.SameChord(bind) {
			kb.recState = RecordCancelled
			if rec.done != nil {
				rec.done(nil, ErrDuplicateBind)
			}
			return
		}
	}
	kb.recState = RecordCompleted
	if rec.done != nil {
		rec.done(bind, nil)
	}
}

// Accept updates held state from a raw press/release event and re-evaluates
// every registered binding; evaluation is suspended entirely while a
// recording is pending. On press events with a recording pending, the chord
// is captured instead — except a bare primary click or Escape, which cancels
// the recording. Returns whether the event was consumed (a binding fired or
// the recording absorbed it).
func (kb *Binder) Accept(ev Event) bool {
	switch ev.Kind {
	case EventKeyDown:
		kb.heldKeys[ev.Key] = struct{}{}
		kb.mods = ev.Mods
		if kb.recState == RecordPending {
			switch {
			case ev.Key == KeyEscape:
				kb.CancelRecording()
			case isModifierKey(ev.Key):
				// Absorbed but not yet a chord: modifiers build up until a
				// non-modifier key or button lands.
			default:
				kb.CompleteRecording()
			}
			return true
		}
	case EventRawKeyDown:
		kb.heldCodes[ev.Code] = struct{}{}
		kb.mods = ev.Mods
		if kb.recState == RecordPending {
			kb.CompleteRecording()
			return true
		}
	case EventPressed:
		kb.heldButtons[ev.Button] = struct{}{}
		kb.mods = ev.Mods
		if kb.recState == RecordPending {
			if ev.Button == MouseButtonLeft && kb.mods == 0 &&
				len(kb.heldCodes) == 0 && len(kb.heldKeys) == 0 &&
				len(kb.heldButtons) == 1 {
				kb.CancelRecording()
			} else {
				kb.CompleteRecording()
			}
			return true
		}
	case EventKeyUp:
		delete(kb.heldKeys, ev.Key)
		kb.mods = ev.Mods
	case EventRawKeyUp:
		delete(kb.heldCodes, ev.Code)
		kb.mods = ev.Mods
	case EventReleased:
		delete(kb.heldButtons, ev.Button)
	default:
		return false
	}
	// Releases while a recording is pending must not fire bindings: dropping
	// an extra modifier could make a registered chord's mask exact mid-capture.
	if kb.recState == RecordPending {
		return false
	}
	return kb.evaluate()
}

func isModifierKey(k Key) bool {
	switch k {
	case KeyShift, KeyControl, KeyAlt, KeyMeta:
		return true
	}
	return false
}

// matches reports whether every key/code/button in the bind's chord is
// currently held (the held sets may be supersets) and the modifier mask
// matches exactly.
func (kb *Binder) matches(b *Bind) bool {
	if b.Mods != kb.mods {
		return false
	}
	if len(b.Codes) == 0 && len(b.Keys) == 0 && len(b.Buttons) == 0 {
		return false
	}
	for _, code := range b.Codes {
		if _, ok := kb.heldCodes[code]; !ok {
			return false
		}
	}
	for _, key := range b.Keys {
		if _, ok := kb.heldKeys[key]; !ok {
			return false
		}
	}
	for _, button := range b.Buttons {
		if _, ok := kb.heldButtons[button]; !ok {
			return false
		}
	}
	return true
}

// evaluate re-checks all bindings after a held-state change. Zero-hold
// bindings fire once on the transition to matched; the ran flag resets only
// when the match becomes false.
func (kb *Binder) evaluate() bool {
	fired := false
	for _, b := range kb.binds {
		if !kb.matches(b) {
			b.ran = false
			b.held = 0
			continue
		}
		if b.Hold <= 0 && !b.ran {
			b.ran = true
			if b.Action != nil {
				b.Action()
			}
			fired = true
		}
	}
	return fired
}

// Update accumulates hold time for matched hold-duration bindings by dt
// seconds (frame-delta driven, not wall-clock). An action fires once when
// the accumulated time reaches the hold duration and will not fire again
// until the chord is released and re-matched.
func (kb *Binder) Update(dt float64) {
	for _, b := range kb.binds {
		if b.Hold <= 0 {
			continue
		}
		if !kb.matches(b) {
			b.held = 0
			b.ran = false
			continue
		}
		if b.ran {
			continue
		}
		b.held += dt
		if b.held >= b.Hold {
			b.ran = true
			if b.Action != nil {
				b.Action()
			}
		}
	}
}
