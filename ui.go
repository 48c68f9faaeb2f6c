package quill

// UI is the toplevel context object. It owns the root of the drawable tree,
// the event manager, the key binder, and the input settings, and carries the
// redraw flag consumed by the renderer. Construct one per window; there are
// no global singletons.
type UI struct {
	root     *Drawable
	events   *Manager
	binder   *Binder
	settings *Settings

	needsRedraw bool
	debug       bool
}

// NewUI creates a UI context with a live root drawable covering nothing by
// default — size the root to the window for full-surface hit testing.
// A nil settings uses DefaultSettings.
func NewUI(settings *Settings) *UI {
	if settings == nil {
		settings = DefaultSettings()
	}
	ui := &UI{settings: settings}
	ui.binder = newBinder()
	ui.events = newManager(ui, settings, ui.binder)
	ui.root = NewDrawable("root")
	ui.root.Focusable = false
	ui.root.attach(ui)
	return ui
}

// Root returns the root drawable. The root is always live.
func (ui *UI) Root() *Drawable {
	return ui.root
}

// Events returns the event manager. Platform layers feed raw input into its
// entry points.
func (ui *UI) Events() *Manager {
	return ui.events
}

// Binds returns the key binder.
func (ui *UI) Binds() *Binder {
	return ui.binder
}

// Settings returns the active input settings.
func (ui *UI) Settings() *Settings {
	return ui.settings
}

// Update advances one frame by dt seconds: accumulates key-binding hold time,
// then advances every active operation in the tree. Finished operations run
// their completion callbacks and are reaped; any operation activity raises
// the redraw flag.
func (ui *UI) Update(dt float64) {
	ui.binder.Update(dt)
	if advanceTree(ui.root, dt) {
		ui.needsRedraw = true
	}
}

// advanceTree advances operations depth-first. Indexed iteration with a
// bounds check tolerates completion callbacks removing children mid-walk.
func advanceTree(d *Drawable, dt float64) bool {
	redraw := d.advanceOperations(dt)
	for i := 0; i < len(d.children); i++ {
		if advanceTree(d.children[i], dt) {
			redraw = true
		}
	}
	return redraw
}

// NeedsRedraw reports whether anything changed since the last Draw.
func (ui *UI) NeedsRedraw() bool {
	return ui.needsRedraw
}

// Invalidate raises the redraw flag manually.
func (ui *UI) Invalidate() {
	ui.needsRedraw = true
}

func (ui *UI) invalidate() {
	ui.needsRedraw = true
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and tree depth and child count warnings are printed to
// stderr.
func (ui *UI) SetDebugMode(enabled bool) {
	ui.debug = enabled
	globalDebug = enabled
}
