package quill

import "math"

// HitShape is used for custom hit testing regions. Coordinates are local to
// the drawable (origin at its top-left corner).
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return Rect(r).Contains(x, y)
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	return math.Hypot(x-c.CenterX, y-c.CenterY) <= c.Radius
}

// drawableIDCounter is a plain counter (no atomic — quill is single-threaded).
var drawableIDCounter uint32

func nextDrawableID() uint32 {
	drawableIDCounter++
	return drawableIDCounter
}

// Drawable is the fundamental UI tree element. A single flat struct is used
// for all component types to avoid interface dispatch on the hot path;
// behavior is attached through the per-drawable callback fields.
type Drawable struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy. Parent is a non-owning back-reference; the parent owns its
	// children exclusively.
	Parent   *Drawable
	children []*Drawable

	// Geometry (local X/Y relative to parent; global bounds derive from the
	// ancestor chain). Mutated by layout, drag, or operations.
	X, Y          float64
	Width, Height float64
	Rotation      float64
	ScaleX        float64
	ScaleY        float64

	// Visual state
	Color Color
	Alpha float64

	// Interaction flags
	AcceptsInput bool
	Focusable    bool
	Enabled      bool
	Visible      bool
	ClipChildren bool

	// HitShape overrides the default Width/Height bounds test.
	HitShape HitShape

	// Metadata
	UserData any

	// Per-drawable event callbacks (nil by default; zero cost when unused).
	// A handler returning true accepts the event and stops propagation.
	OnPressed      func(*Drawable, Event) bool
	OnReleased     func(*Drawable, Event) bool
	OnClicked      func(*Drawable, Event) bool
	OnScrolled     func(*Drawable, Event) bool
	OnKeyDown      func(*Drawable, Event) bool
	OnKeyUp        func(*Drawable, Event) bool
	OnRawKeyDown   func(*Drawable, Event) bool
	OnRawKeyUp     func(*Drawable, Event) bool
	OnCharTyped    func(*Drawable, Event) bool
	OnFileDropped  func(*Drawable, Event) bool
	OnPointerEnter func(*Drawable, Event) bool
	OnPointerLeave func(*Drawable, Event) bool
	OnFocusGained  func(*Drawable, Event) bool
	OnFocusLost    func(*Drawable, Event) bool
	OnDragStart    func(*Drawable, Event) bool
	OnDrag         func(*Drawable, Event) bool
	OnDragEnd      func(*Drawable, Event) bool

	// OnRender draws the component through the pluggable backend.
	OnRender func(*Drawable, Renderer)

	// Internal
	inputState InputState
	ui         *UI // set while attached to a live tree
	ops        []*Operation
	opBuf      []*Operation // reused advance snapshot buffer
	disposed   bool
}

// NewDrawable creates a detached drawable. It becomes live once added under a
// live root (see [UI.Root]).
func NewDrawable(name string) *Drawable {
	d := &Drawable{Name: name}
	d.ID = nextDrawableID()
	d.ScaleX = 1
	d.ScaleY = 1
	d.Alpha = 1
	d.Color = ColorWhite
	d.Visible = true
	d.Enabled = true
	d.AcceptsInput = true
	return d
}

// InputState returns the event manager's tri-state pointer status. The state
// is owned exclusively by the event manager; it is not settable.
func (d *Drawable) InputState() InputState {
	return d.inputState
}

// IsLive reports whether this drawable is attached under a live root and thus
// participates in event dispatch.
func (d *Drawable) IsLive() bool {
	return d.ui != nil
}

// --- Tree manipulation ---

// AddChild appends child to this drawable's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this drawable (cycle).
func (d *Drawable) AddChild(child *Drawable) {
	if child == nil {
		panic("quill: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(d, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, d) {
		panic("quill: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = d
	d.children = append(d.children, child)
	if d.ui != nil {
		child.attach(d.ui)
	}
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(d)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (d *Drawable) AddChildAt(child *Drawable, index int) {
	if child == nil {
		panic("quill: cannot add nil child")
	}
	if isAncestor(child, d) {
		panic("quill: adding child would create a cycle")
	}
	if index < 0 || index > len(d.children) {
		panic("quill: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = d
	d.children = append(d.children, nil)
	copy(d.children[index+1:], d.children[index:])
	d.children[index] = child
	if d.ui != nil {
		child.attach(d.ui)
	}
}

// RemoveChild detaches child from this drawable, purging its subtree from the
// candidate set and from focus.
// Panics if child.Parent != d.
func (d *Drawable) RemoveChild(child *Drawable) {
	if child.Parent != d {
		panic("quill: child's parent is not this drawable")
	}
	child.detach()
	d.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveChildAt removes and returns the child at the given index.
func (d *Drawable) RemoveChildAt(index int) *Drawable {
	if index < 0 || index >= len(d.children) {
		panic("quill: child index out of range")
	}
	child := d.children[index]
	d.RemoveChild(child)
	return child
}

// RemoveFromParent detaches this drawable from its parent.
// No-op if this drawable has no parent.
func (d *Drawable) RemoveFromParent() {
	if d.Parent == nil {
		return
	}
	d.Parent.RemoveChild(d)
}

// RemoveChildren detaches all children. Children are NOT disposed.
func (d *Drawable) RemoveChildren() {
	for len(d.children) > 0 {
		d.RemoveChild(d.children[len(d.children)-1])
	}
}

// Children returns the child list in insertion order (front-to-back for
// rendering, back-to-front for hit testing). The returned slice MUST NOT be
// mutated by the caller.
func (d *Drawable) Children() []*Drawable {
	return d.children
}

// NumChildren returns the number of children.
func (d *Drawable) NumChildren() int {
	return len(d.children)
}

// ChildAt returns the child at the given index.
func (d *Drawable) ChildAt(index int) *Drawable {
	return d.children[index]
}

// --- Lifecycle ---

// attach marks the subtree live under ui.
func (d *Drawable) attach(ui *UI) {
	d.ui = ui
	for _, child := range d.children {
		child.attach(ui)
	}
}

// detach purges the subtree from the event manager and marks it not live.
func (d *Drawable) detach() {
	if d.ui != nil {
		d.ui.events.purge(d)
	}
	d.clearLive()
}

func (d *Drawable) clearLive() {
	d.ui = nil
	for _, child := range d.children {
		child.clearLive()
	}
}

// Dispose removes this drawable from its parent, marks it as disposed, and
// recursively disposes all descendants. The subtree is purged from the
// candidate set and from focus before any fields are cleared.
func (d *Drawable) Dispose() {
	if d.disposed {
		return
	}
	d.RemoveFromParent()
	d.detach()
	d.dispose()
}

func (d *Drawable) dispose() {
	d.disposed = true
	d.ID = 0
	for _, child := range d.children {
		child.Parent = nil
		child.dispose()
	}
	d.children = nil
	d.Parent = nil
	d.HitShape = nil
	d.ops = nil
	d.opBuf = nil
	d.UserData = nil
	d.OnPressed = nil
	d.OnReleased = nil
	d.OnClicked = nil
	d.OnScrolled = nil
	d.OnKeyDown = nil
	d.OnKeyUp = nil
	d.OnRawKeyDown = nil
	d.OnRawKeyUp = nil
	d.OnCharTyped = nil
	d.OnFileDropped = nil
	d.OnPointerEnter = nil
	d.OnPointerLeave = nil
	d.OnFocusGained = nil
	d.OnFocusLost = nil
	d.OnDragStart = nil
	d.OnDrag = nil
	d.OnDragEnd = nil
	d.OnRender = nil
}

// IsDisposed returns true if this drawable has been disposed.
func (d *Drawable) IsDisposed() bool {
	return d.disposed
}

// CanBeRemoved reports whether it is safe to detach or destroy this drawable:
// true only when it has no active operations.
func (d *Drawable) CanBeRemoved() bool {
	return len(d.ops) == 0
}

// --- Geometry ---

// GlobalPosition returns the drawable's top-left corner in global coordinates.
func (d *Drawable) GlobalPosition() (x, y float64) {
	x, y = d.X, d.Y
	for p := d.Parent; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return x, y
}

// Bounds returns the drawable's global bounding rectangle.
func (d *Drawable) Bounds() Rect {
	gx, gy := d.GlobalPosition()
	return Rect{X: gx, Y: gy, Width: d.Width, Height: d.Height}
}

// containsGlobal tests whether the global point (x, y) falls inside the
// drawable's hit region. Uses HitShape if set; otherwise the Width/Height
// bounds. Zero-sized drawables without a HitShape are not hit-testable.
func (d *Drawable) containsGlobal(x, y float64) bool {
	gx, gy := d.GlobalPosition()
	lx, ly := x-gx, y-gy
	if d.HitShape != nil {
		return d.HitShape.Contains(lx, ly)
	}
	if d.Width == 0 && d.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= d.Width && ly >= 0 && ly <= d.Height
}

// --- Event handling ---

// handle offers the event to this drawable's registered callback for the
// event's kind. Returns whether the event was accepted.
func (d *Drawable) handle(ev Event) bool {
	var fn func(*Drawable, Event) bool
	switch ev.Kind {
	case EventPressed:
		fn = d.OnPressed
	case EventReleased:
		fn = d.OnReleased
	case EventClicked:
		fn = d.OnClicked
	case EventScrolled:
		fn = d.OnScrolled
	case EventKeyDown:
		fn = d.OnKeyDown
	case EventKeyUp:
		fn = d.OnKeyUp
	case EventRawKeyDown:
		fn = d.OnRawKeyDown
	case EventRawKeyUp:
		fn = d.OnRawKeyUp
	case EventCharTyped:
		fn = d.OnCharTyped
	case EventFileDropped:
		fn = d.OnFileDropped
	case EventPointerEnter:
		fn = d.OnPointerEnter
	case EventPointerLeave:
		fn = d.OnPointerLeave
	case EventFocusGained:
		fn = d.OnFocusGained
	case EventFocusLost:
		fn = d.OnFocusLost
	case EventDragStart:
		fn = d.OnDragStart
	case EventDragMove:
		fn = d.OnDrag
	case EventDragEnd:
		fn = d.OnDragEnd
	}
	if fn == nil {
		return false
	}
	return fn(d, ev)
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of (or the same as) d.
func isAncestor(candidate, d *Drawable) bool {
	for p := d; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from d.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (d *Drawable) removeChildByPtr(child *Drawable) {
	for i, c := range d.children {
		if c == child {
			copy(d.children[i:], d.children[i+1:])
			d.children[len(d.children)-1] = nil
			d.children = d.children[:len(d.children)-1]
			return
		}
	}
}
