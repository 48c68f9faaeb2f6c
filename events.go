package quill

// EventKind identifies a kind of routed input event. The set is closed:
// dispatch switches over it rather than over per-instance handler maps.
type EventKind uint8

const (
	EventPressed      EventKind = iota // a mouse button went down over the drawable
	EventReleased                      // a mouse button came up
	EventClicked                       // press then release; Clicks carries the combo count
	EventScrolled                      // scroll wheel / trackpad, after settings shaping
	EventKeyDown                       // a mapped key went down
	EventKeyUp                         // a mapped key came up
	EventRawKeyDown                    // an unmapped key code went down
	EventRawKeyUp                      // an unmapped key code came up
	EventCharTyped                     // printable character input
	EventFileDropped                   // files dropped onto the window
	EventPointerEnter                  // pointer entered the drawable's bounds
	EventPointerLeave                  // pointer left the drawable's bounds
	EventFocusGained                   // the drawable became the focus target
	EventFocusLost                     // the drawable stopped being the focus target
	EventDragStart                     // pointer movement exceeded the drag dead zone
	EventDragMove                      // pointer moved while dragging
	EventDragEnd                       // primary button released after dragging
)

// Event is the tagged union carried through dispatch. Kind selects which
// fields are meaningful; unrelated fields are zero.
type Event struct {
	Kind EventKind

	// Pointer position in global coordinates (pointer and scroll events).
	X, Y float64

	// Scroll amounts or drag movement since the previous position.
	DeltaX, DeltaY float64

	// Drag origin (drag events only).
	StartX, StartY float64

	Button MouseButton // pressed/released/clicked/drag events
	Key    Key         // mapped key events
	Code   int         // raw key code events
	Rune   rune        // EventCharTyped
	Clicks int         // EventClicked combo count (1 = single, 2 = double, ...)
	Mods   Modifiers   // modifier state at the time of the event

	Paths []string // EventFileDropped
}
