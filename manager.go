package quill

import (
	"math"
	"time"
)

// Manager is the single authoritative router from raw platform input to
// drawable and key-binder event handlers. It owns the candidate set (the
// drawables currently considered pointer-hit), every drawable's InputState,
// the focus target, click-combo counting, and drag gating.
//
// All entry points run on the single UI thread. Handlers invoked during
// dispatch may mutate the tree, the candidate set, or focus; dispatch
// iterates over snapshots to tolerate that.
type Manager struct {
	ui       *UI
	settings *Settings
	binder   *Binder

	// Candidate set: drawables currently pointer-hit, in hit-test discovery
	// order. A drawable is a member iff its inputState != StateNone.
	candidates []*Drawable

	focus *Drawable

	pointerX, pointerY float64
	mods               Modifiers

	// Drag state (primary button).
	primaryDown    bool
	pressX, pressY float64
	dragging       bool
	dragTarget     *Drawable

	// Per-button record of presses consumed by the binder: the matching
	// release produces no Released/Clicked dispatch.
	pressConsumed map[MouseButton]bool

	// Click-combo state. The window is wall-clock; now is injectable for tests.
	comboCount      int
	lastClickTime   time.Time
	lastClickButton MouseButton
	haveLastClick   bool
	now             func() time.Time
}

func newManager(ui *UI, settings *Settings, binder *Binder) *Manager {
	return &Manager{
		ui:            ui,
		settings:      settings,
		binder:        binder,
		pressConsumed: make(map[MouseButton]bool),
		now:           time.Now,
	}
}

// Candidates returns the candidate set in hit-test discovery order. The
// returned slice MUST NOT be mutated by the caller.
func (m *Manager) Candidates() []*Drawable {
	return m.candidates
}

// Focused returns the current focus target, or nil.
func (m *Manager) Focused() *Drawable {
	return m.focus
}

// PointerPosition returns the last reported global pointer position.
func (m *Manager) PointerPosition() (x, y float64) {
	return m.pointerX, m.pointerY
}

// Modifiers returns the current modifier mask as tracked from key events.
func (m *Manager) Modifiers() Modifiers {
	return m.mods
}

// --- Pointer movement & hit testing ---

// PointerMoved recomputes hit testing against the tree and updates the
// candidate set incrementally: drawables newly under the pointer transition
// NONE -> HOVERED and receive a PointerEnter; drawables no longer hit are
// dropped with a PointerLeave. The walk itself never calls press/click
// handlers. Calling twice with the same coordinates produces no additional
// enter/leave events.
func (m *Manager) PointerMoved(x, y float64) {
	prevX, prevY := m.pointerX, m.pointerY
	m.pointerX, m.pointerY = x, y
	m.hover(m.ui.root, x, y)

	if m.primaryDown && m.dragTarget != nil {
		if !m.dragging {
			dx, dy := x-m.pressX, y-m.pressY
			if math.Hypot(dx, dy) > m.settings.DragDeadZone {
				m.dragging = true
				m.dragTarget.handle(Event{
					Kind: EventDragStart, X: x, Y: y,
					StartX: m.pressX, StartY: m.pressY,
					DeltaX: dx, DeltaY: dy,
					Button: MouseButtonLeft, Mods: m.mods,
				})
			}
		} else {
			m.dragTarget.handle(Event{
				Kind: EventDragMove, X: x, Y: y,
				StartX: m.pressX, StartY: m.pressY,
				DeltaX: x - prevX, DeltaY: y - prevY,
				Button: MouseButtonLeft, Mods: m.mods,
			})
		}
	}
}

// hover walks the tree top-down. It only descends into a drawable's children
// if the drawable itself is hit, short-circuiting hidden or missed subtrees;
// missed subtrees are evicted from the candidate set via drop.
func (m *Manager) hover(d *Drawable, x, y float64) {
	if !d.Visible || !d.Enabled || !d.containsGlobal(x, y) {
		m.drop(d, x, y)
		return
	}
	if d.AcceptsInput && d.inputState == StateNone {
		d.inputState = StateHovered
		m.candidates = append(m.candidates, d)
		m.ui.invalidate()
		d.handle(Event{Kind: EventPointerEnter, X: x, Y: y, Mods: m.mods})
	}
	// Snapshot: enter handlers may restructure the child list.
	kids := append([]*Drawable(nil), d.children...)
	for _, child := range kids {
		if child.Parent == d {
			m.hover(child, x, y)
		}
	}
}

// drop evicts d and its subtree from the candidate set, transitioning each
// member to StateNone and firing PointerLeave.
func (m *Manager) drop(d *Drawable, x, y float64) {
	if d.inputState != StateNone {
		d.inputState = StateNone
		m.removeCandidate(d)
		m.ui.invalidate()
		d.handle(Event{Kind: EventPointerLeave, X: x, Y: y, Mods: m.mods})
	}
	kids := append([]*Drawable(nil), d.children...)
	for _, child := range kids {
		m.drop(child, x, y)
	}
}

// purge removes d and its subtree from the candidate set and from focus
// without firing events. Called on detach/disposal.
func (m *Manager) purge(d *Drawable) {
	if d.inputState != StateNone {
		d.inputState = StateNone
		m.removeCandidate(d)
	}
	if m.focus != nil && isAncestor(d, m.focus) {
		m.focus = nil
	}
	if m.dragTarget != nil && isAncestor(d, m.dragTarget) {
		m.dragTarget = nil
		m.dragging = false
	}
	for _, child := range d.children {
		m.purge(child)
	}
}

func (m *Manager) removeCandidate(d *Drawable) {
	for i, c := range m.candidates {
		if c == d {
			copy(m.candidates[i:], m.candidates[i+1:])
			m.candidates[len(m.candidates)-1] = nil
			m.candidates = m.candidates[:len(m.candidates)-1]
			return
		}
	}
}

// --- Buttons ---

// PointerPressed routes a raw button-down. The event is offered to the key
// binder first (chords may include mouse buttons; a pending recording may
// consume the press); otherwise it is dispatched to the candidate set in
// topmost-first order, setting each visited candidate to PRESSED. The first
// handler that accepts stops propagation. A consumed press is remembered so
// the matching release neither clicks nor drags: candidates that never saw
// the press get no paired events.
func (m *Manager) PointerPressed(button MouseButton) {
	consumed := m.binder.Accept(Event{Kind: EventPressed, Button: button, Mods: m.mods})
	m.pressConsumed[button] = consumed
	if button == MouseButtonLeft {
		m.primaryDown = true
		m.pressX, m.pressY = m.pointerX, m.pointerY
		m.dragging = false
		m.dragTarget = nil
		if !consumed {
			if n := len(m.candidates); n > 0 {
				m.dragTarget = m.candidates[n-1]
			}
		}
	}
	if consumed {
		return
	}
	m.DispatchPress(Event{
		Kind: EventPressed, X: m.pointerX, Y: m.pointerY,
		Button: button, Mods: m.mods,
	}, true)
}

// PointerReleased routes a raw button-up: updates the click combo, dispatches
// Released then Clicked (with the combo count) in that order, and — if no
// candidate accepts a primary-button click — falls back to focusing the
// topmost focusable candidate. A release that ends a drag dispatches DragEnd
// instead of Clicked. A combo at MaxComboSize holds at the cap within the
// window unless ClearComboWhenMaxed restarts it from 1.
func (m *Manager) PointerReleased(button MouseButton) {
	m.binder.Accept(Event{Kind: EventReleased, Button: button, Mods: m.mods})

	pressConsumed := m.pressConsumed[button]
	delete(m.pressConsumed, button)

	wasDragging := m.dragging && button == MouseButtonLeft
	dragTarget := m.dragTarget
	if button == MouseButtonLeft {
		m.primaryDown = false
		m.dragging = false
		m.dragTarget = nil
	}

	if pressConsumed {
		// No click without a delivered press; a consumed press also breaks
		// any running combo chain.
		m.haveLastClick = false
		return
	}

	now := m.now()
	switch {
	case !m.haveLastClick || button != m.lastClickButton ||
		now.Sub(m.lastClickTime) > m.settings.ComboMaxInterval.Duration:
		m.comboCount = 1
	case m.comboCount < m.settings.MaxComboSize:
		m.comboCount++
	case m.settings.ClearComboWhenMaxed:
		m.comboCount = 1
	}
	m.lastClickButton = button
	m.lastClickTime = now
	m.haveLastClick = true

	m.DispatchPress(Event{
		Kind: EventReleased, X: m.pointerX, Y: m.pointerY,
		Button: button, Mods: m.mods,
	}, false)

	if wasDragging {
		if dragTarget != nil {
			dragTarget.handle(Event{
				Kind: EventDragEnd, X: m.pointerX, Y: m.pointerY,
				StartX: m.pressX, StartY: m.pressY,
				DeltaX: m.pointerX - m.pressX, DeltaY: m.pointerY - m.pressY,
				Button: button, Mods: m.mods,
			})
		}
		return
	}

	accepted := m.Dispatch(Event{
		Kind: EventClicked, X: m.pointerX, Y: m.pointerY,
		Button: button, Clicks: m.comboCount, Mods: m.mods,
	})
	if !accepted && button == MouseButtonLeft {
		for i := len(m.candidates) - 1; i >= 0; i-- {
			c := m.candidates[i]
			if c.Focusable {
				if c != m.focus {
					m.Focus(c)
				}
				break
			}
		}
	}
}

// --- Scroll ---

// Scroll shapes raw scroll deltas per the settings — natural-scrolling
// inversion, axis swap while Shift is held, then per-axis multipliers — and
// dispatches a single Scrolled event to the candidate set (first acceptor
// wins).
func (m *Manager) Scroll(dx, dy float64) {
	if m.settings.NaturalScrolling {
		dx, dy = -dx, -dy
	}
	if m.mods&ModShift != 0 {
		dx, dy = dy, dx
	}
	dx *= m.settings.ScrollMultiplierX
	dy *= m.settings.ScrollMultiplierY
	m.Dispatch(Event{
		Kind: EventScrolled, X: m.pointerX, Y: m.pointerY,
		DeltaX: dx, DeltaY: dy, Mods: m.mods,
	})
}

// --- Keys ---

// modifierBit returns the modifier mask bit for a modifier key, honoring the
// command-acts-as-control remap.
func modifierBit(key Key, commandActsAsControl bool) Modifiers {
	switch key {
	case KeyShift:
		return ModShift
	case KeyControl:
		return ModCtrl
	case KeyAlt:
		return ModAlt
	case KeyMeta:
		if commandActsAsControl {
			return ModCtrl
		}
		return ModMeta
	}
	return 0
}

// KeyDown routes a mapped key press: first offered to the key binder; if
// unconsumed, forwarded to the focused drawable only (never the candidate
// set).
func (m *Manager) KeyDown(key Key) {
	m.mods |= modifierBit(key, m.settings.CommandActsAsControl)
	ev := Event{Kind: EventKeyDown, Key: key, Mods: m.mods}
	if m.binder.Accept(ev) {
		return
	}
	if m.focus != nil {
		m.focus.handle(ev)
	}
}

// KeyUp routes a mapped key release.
func (m *Manager) KeyUp(key Key) {
	m.mods &^= modifierBit(key, m.settings.CommandActsAsControl)
	ev := Event{Kind: EventKeyUp, Key: key, Mods: m.mods}
	if m.binder.Accept(ev) {
		return
	}
	if m.focus != nil {
		m.focus.handle(ev)
	}
}

// RawKeyDown routes a key the platform layer could not map to a [Key].
func (m *Manager) RawKeyDown(code int) {
	ev := Event{Kind: EventRawKeyDown, Code: code, Mods: m.mods}
	if m.binder.Accept(ev) {
		return
	}
	if m.focus != nil {
		m.focus.handle(ev)
	}
}

// RawKeyUp routes an unmapped key release.
func (m *Manager) RawKeyUp(code int) {
	ev := Event{Kind: EventRawKeyUp, Code: code, Mods: m.mods}
	if m.binder.Accept(ev) {
		return
	}
	if m.focus != nil {
		m.focus.handle(ev)
	}
}

// CharTyped routes printable character input to the focused drawable only.
func (m *Manager) CharTyped(r rune) {
	if m.focus != nil {
		m.focus.handle(Event{Kind: EventCharTyped, Rune: r, Mods: m.mods})
	}
}

// FileDropped routes dropped file paths to the candidate set (first acceptor
// wins).
func (m *Manager) FileDropped(paths []string) {
	m.Dispatch(Event{
		Kind: EventFileDropped, X: m.pointerX, Y: m.pointerY,
		Paths: paths, Mods: m.mods,
	})
}

// --- Focus ---

// Focus makes d the single focus target. Returns false without side effects
// if d is already focused. Panics if d is not focusable — that is a
// programming error, not a recoverable condition. Otherwise the previous
// target receives FocusLost, then d receives FocusGained; the return value is
// whether d accepted FocusGained. Passing nil clears focus.
func (m *Manager) Focus(d *Drawable) bool {
	if d == m.focus {
		return false
	}
	if d != nil && !d.Focusable {
		panic("quill: focus target is not focusable")
	}
	prev := m.focus
	m.focus = d
	if prev != nil {
		prev.handle(Event{Kind: EventFocusLost})
	}
	if d == nil {
		return false
	}
	return d.handle(Event{Kind: EventFocusGained})
}

// --- Generic dispatch ---

// Dispatch offers ev to the candidate set in reverse insertion order (topmost
// first), stopping at the first handler that accepts. Iterates over a
// snapshot, so handlers may mutate the candidate set; members dropped
// mid-dispatch are skipped. Returns whether any candidate accepted.
func (m *Manager) Dispatch(ev Event) bool {
	snapshot := append([]*Drawable(nil), m.candidates...)
	for i := len(snapshot) - 1; i >= 0; i-- {
		c := snapshot[i]
		if c.inputState == StateNone {
			continue
		}
		if c.handle(ev) {
			return true
		}
	}
	return false
}

// DispatchPress is Dispatch with input-state bookkeeping: each visited
// candidate's state is set to PRESSED (pressed=true) or back to HOVERED
// (pressed=false) before the event is offered to it.
func (m *Manager) DispatchPress(ev Event, pressed bool) bool {
	snapshot := append([]*Drawable(nil), m.candidates...)
	for i := len(snapshot) - 1; i >= 0; i-- {
		c := snapshot[i]
		if c.inputState == StateNone {
			continue
		}
		if pressed {
			c.inputState = StatePressed
		} else {
			c.inputState = StateHovered
		}
		if c.handle(ev) {
			return true
		}
	}
	return false
}
