package render

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"headless/pkg/css"
	"headless/pkg/scene"
)

type Renderer struct {
	context *gg.Context
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{context: gg.NewContext(width, height)}
}

// NewRendererForImage draws directly into target.
func NewRendererForImage(target *image.RGBA) *Renderer {
	return &Renderer{context: gg.NewContextForRGBA(target)}
}

// Render paints the background gradient one row at a time, then each fill
// in order with source-over compositing.
func (r *Renderer) Render(s *scene.Scene) {
	width := float64(r.context.Width())
	rows := min(s.Height, r.context.Height())
	for y := 0; y < rows; y++ {
		r.FillRect(scene.Rect{X: 0, Y: float64(y), Width: width, Height: 1}, s.RowColor(y))
	}

	for _, f := range s.Fills {
		r.FillRect(f.Rect, f.Color)
	}
}

// FillRect fills rect with c. A negative width or height fills the area on
// the other side of the origin; zero-sized rectangles paint nothing.
func (r *Renderer) FillRect(rect scene.Rect, c css.Color) {
	rect, ok := r.clip(rect)
	if !ok || c.A == 0 {
		return
	}
	// SetColor keeps the exact 8-bit channels; SetRGBA goes through float
	// scaling and can land one step low.
	r.context.SetColor(c.NRGBA())
	r.context.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	r.context.Fill()
}

// clip sorts rect and intersects it with the canvas.
func (r *Renderer) clip(rect scene.Rect) (scene.Rect, bool) {
	rect = rect.Sorted()
	if rect.Empty() {
		return rect, false
	}
	x0 := math.Max(rect.X, 0)
	y0 := math.Max(rect.Y, 0)
	x1 := math.Min(rect.X+rect.Width, float64(r.context.Width()))
	y1 := math.Min(rect.Y+rect.Height, float64(r.context.Height()))
	out := scene.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	return out, out.Width > 0 && out.Height > 0
}

// Image returns the pixel buffer backing the renderer.
func (r *Renderer) Image() *image.RGBA {
	return r.context.Image().(*image.RGBA)
}
