package ebitendriver

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/phanxgames/quill"
)

// whitePixel is a 1x1 white image scaled for solid color rectangles.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// Image wraps an ebiten image as a quill.Image handle.
type Image struct {
	img *ebiten.Image
}

// NewImage wraps img for use with Renderer.DrawImage.
func NewImage(img *ebiten.Image) *Image {
	return &Image{img: img}
}

// Size returns the image dimensions in pixels.
func (i *Image) Size() (w, h int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

// Renderer implements quill.Renderer on an ebiten screen. Scissor clipping
// uses SubImage, which shares pixels with the screen, so nested scissors cost
// no extra allocations beyond the image headers.
type Renderer struct {
	screen  *ebiten.Image
	targets []*ebiten.Image
	face    text.Face
}

// begin points the renderer at this frame's screen. Called from Driver.Draw.
func (r *Renderer) begin(screen *ebiten.Image) {
	r.screen = screen
	r.targets = r.targets[:0]
}

func (r *Renderer) target() *ebiten.Image {
	if n := len(r.targets); n > 0 {
		return r.targets[n-1]
	}
	return r.screen
}

// BeginFrame implements quill.Renderer.
func (r *Renderer) BeginFrame() {}

// EndFrame implements quill.Renderer.
func (r *Renderer) EndFrame() {}

// DrawRect fills rect with a solid color.
func (r *Renderer) DrawRect(rect quill.Rect, c quill.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(rect.Width, rect.Height)
	op.GeoM.Translate(rect.X, rect.Y)
	scaleColor(&op.ColorScale, c)
	r.target().DrawImage(whitePixel, op)
}

// DrawImage draws a wrapped ebiten image scaled into rect with a tint.
func (r *Renderer) DrawImage(img quill.Image, rect quill.Rect, tint quill.Color) {
	ei, ok := img.(*Image)
	if !ok || ei.img == nil {
		return
	}
	w, h := ei.Size()
	if w == 0 || h == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(rect.Width/float64(w), rect.Height/float64(h))
	op.GeoM.Translate(rect.X, rect.Y)
	scaleColor(&op.ColorScale, tint)
	r.target().DrawImage(ei.img, op)
}

// DrawText draws s with the configured face, top-left anchored at (x, y).
// No-op without a face.
func (r *Renderer) DrawText(s string, x, y float64, c quill.Color) {
	if r.face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	scaleColor(&op.ColorScale, c)
	text.Draw(r.target(), s, r.face, op)
}

// MeasureText returns the rendered size of s. Zero without a face.
func (r *Renderer) MeasureText(s string) (w, h float64) {
	if r.face == nil {
		return 0, 0
	}
	return text.Measure(s, r.face, r.face.Metrics().HLineGap)
}

// PushScissor clips subsequent draws to rect.
func (r *Renderer) PushScissor(rect quill.Rect) {
	sub := r.target().SubImage(image.Rect(
		int(rect.X), int(rect.Y),
		int(rect.X+rect.Width), int(rect.Y+rect.Height),
	)).(*ebiten.Image)
	r.targets = append(r.targets, sub)
}

// PopScissor restores the previous clip.
func (r *Renderer) PopScissor() {
	if n := len(r.targets); n > 0 {
		r.targets = r.targets[:n-1]
	}
}

// scaleColor applies a non-premultiplied quill color to a ColorScale.
func scaleColor(cs *ebiten.ColorScale, c quill.Color) {
	cs.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
}
