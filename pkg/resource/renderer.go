package resource

import (
	"fmt"
	"image"

	"headless/pkg/render"
	"headless/pkg/scene"
)

// Renderer renders a document onto an image.
type Renderer interface {
	Render(doc *Document, target *image.RGBA) error
}

// DemoRenderer paints the demo scene. The document only has to exist: its
// content does not influence the output.
type DemoRenderer struct {
	theme scene.Theme
}

// NewDemoRenderer creates a DemoRenderer. Zero theme fields fall back to
// scene.DefaultTheme.
func NewDemoRenderer(theme scene.Theme) *DemoRenderer {
	return &DemoRenderer{theme: theme}
}

// Render paints onto target. The viewport width and height are derived from
// the target image dimensions.
func (r *DemoRenderer) Render(doc *Document, target *image.RGBA) error {
	if doc == nil {
		return fmt.Errorf("no document to render")
	}
	bounds := target.Bounds()
	s, err := scene.Demo(bounds.Dx(), bounds.Dy(), r.theme)
	if err != nil {
		return err
	}
	render.NewRendererForImage(target).Render(s)
	return nil
}
