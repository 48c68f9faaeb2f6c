// Package ebitendriver runs a quill UI on [Ebitengine]: it implements
// quill.Renderer and feeds raw Ebitengine input into the event manager each
// tick.
//
// [Ebitengine]: https://ebitengine.org
package ebitendriver

import (
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/phanxgames/quill"
)

// Config configures Run.
type Config struct {
	Title         string
	Width, Height int

	// Face is the text face used for DrawText/MeasureText. Optional; without
	// it text calls are no-ops.
	Face text.Face
}

// Driver implements ebiten.Game over a quill.UI.
type Driver struct {
	ui       *quill.UI
	renderer *Renderer

	lastX, lastY float64
	hasPointer   bool
	keyBuf       []ebiten.Key
	charBuf      []rune
}

var driverButtons = [...]struct {
	eb ebiten.MouseButton
	q  quill.MouseButton
}{
	{ebiten.MouseButtonLeft, quill.MouseButtonLeft},
	{ebiten.MouseButtonRight, quill.MouseButtonRight},
	{ebiten.MouseButtonMiddle, quill.MouseButtonMiddle},
}

// New creates a driver for ui. face may be nil.
func New(ui *quill.UI, face text.Face) *Driver {
	return &Driver{ui: ui, renderer: &Renderer{face: face}}
}

// Update polls Ebitengine input, forwards it to the event manager verbatim,
// and advances the UI by one tick.
func (d *Driver) Update() error {
	ev := d.ui.Events()

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if !d.hasPointer || x != d.lastX || y != d.lastY {
		ev.PointerMoved(x, y)
		d.lastX, d.lastY = x, y
		d.hasPointer = true
	}

	for _, b := range driverButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			ev.PointerPressed(b.q)
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			ev.PointerReleased(b.q)
		}
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		ev.Scroll(wx, wy)
	}

	d.keyBuf = inpututil.AppendJustPressedKeys(d.keyBuf[:0])
	for _, k := range d.keyBuf {
		if q, ok := mapKey(k); ok {
			ev.KeyDown(q)
		} else {
			ev.RawKeyDown(int(k))
		}
	}
	d.keyBuf = inpututil.AppendJustReleasedKeys(d.keyBuf[:0])
	for _, k := range d.keyBuf {
		if q, ok := mapKey(k); ok {
			ev.KeyUp(q)
		} else {
			ev.RawKeyUp(int(k))
		}
	}

	d.charBuf = ebiten.AppendInputChars(d.charBuf[:0])
	for _, r := range d.charBuf {
		ev.CharTyped(r)
	}

	if files := ebiten.DroppedFiles(); files != nil {
		if paths := readDroppedPaths(files); len(paths) > 0 {
			ev.FileDropped(paths)
		}
	}

	d.ui.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func readDroppedPaths(files fs.FS) []string {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Name())
	}
	return paths
}

// Draw renders the UI tree to the screen.
func (d *Driver) Draw(screen *ebiten.Image) {
	d.renderer.begin(screen)
	d.ui.Draw(d.renderer)
}

// Layout implements ebiten.Game.
func (d *Driver) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run creates a window and drives ui until the window closes.
func Run(ui *quill.UI, cfg Config) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	return ebiten.RunGame(New(ui, cfg.Face))
}

// mapKey converts an ebiten key to a quill key. Keys outside the mapped set
// are delivered as raw codes instead.
func mapKey(k ebiten.Key) (quill.Key, bool) {
	switch {
	case k >= ebiten.KeyA && k <= ebiten.KeyZ:
		return quill.KeyA + quill.Key(k-ebiten.KeyA), true
	case k >= ebiten.KeyDigit0 && k <= ebiten.KeyDigit9:
		return quill.Key0 + quill.Key(k-ebiten.KeyDigit0), true
	case k >= ebiten.KeyF1 && k <= ebiten.KeyF12:
		return quill.KeyF1 + quill.Key(k-ebiten.KeyF1), true
	}
	switch k {
	case ebiten.KeyEscape:
		return quill.KeyEscape, true
	case ebiten.KeyEnter:
		return quill.KeyEnter, true
	case ebiten.KeyTab:
		return quill.KeyTab, true
	case ebiten.KeyBackspace:
		return quill.KeyBackspace, true
	case ebiten.KeyDelete:
		return quill.KeyDelete, true
	case ebiten.KeyInsert:
		return quill.KeyInsert, true
	case ebiten.KeySpace:
		return quill.KeySpace, true
	case ebiten.KeyArrowUp:
		return quill.KeyUp, true
	case ebiten.KeyArrowDown:
		return quill.KeyDown, true
	case ebiten.KeyArrowLeft:
		return quill.KeyLeft, true
	case ebiten.KeyArrowRight:
		return quill.KeyRight, true
	case ebiten.KeyHome:
		return quill.KeyHome, true
	case ebiten.KeyEnd:
		return quill.KeyEnd, true
	case ebiten.KeyPageUp:
		return quill.KeyPageUp, true
	case ebiten.KeyPageDown:
		return quill.KeyPageDown, true
	case ebiten.KeyShiftLeft, ebiten.KeyShiftRight:
		return quill.KeyShift, true
	case ebiten.KeyControlLeft, ebiten.KeyControlRight:
		return quill.KeyControl, true
	case ebiten.KeyAltLeft, ebiten.KeyAltRight:
		return quill.KeyAlt, true
	case ebiten.KeyMetaLeft, ebiten.KeyMetaRight:
		return quill.KeyMeta, true
	}
	return 0, false
}
