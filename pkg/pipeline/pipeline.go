// Package pipeline runs one render: load the input, paint the demo scene at
// the requested viewport size and write the image to disk.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"headless/pkg/logger"
	"headless/pkg/render"
	"headless/pkg/resource"
)

const (
	DefaultOutput = "output/render.png"
	DefaultWidth  = 1024
	DefaultHeight = 768
)

type Options struct {
	Input   string
	Output  string
	Width   int
	Height  int
	Verbose bool
}

// Kind classifies a failed run.
type Kind int

const (
	KindInputRequired Kind = iota + 1
	KindOpen
	KindRead
	KindOutputDir
	KindRender
)

// Error is a failed run. Its message is meant for the user as is.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *Error) Unwrap() error { return e.err }

// IsKind reports whether err is a pipeline error of kind k.
func IsKind(err error, k Kind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == k
}

type Pipeline struct {
	loader   *resource.Loader
	renderer resource.Renderer
	stdout   io.Writer
	logger   *slog.Logger
}

// New creates a Pipeline. Progress lines go to stdout; diagnostics go to
// logger. A nil logger discards diagnostics.
func New(loader *resource.Loader, renderer resource.Renderer, stdout io.Writer, l *slog.Logger) *Pipeline {
	if l == nil {
		l = logger.Discard()
	}
	return &Pipeline{loader: loader, renderer: renderer, stdout: stdout, logger: l}
}

// CheckInput returns a KindInputRequired error for an empty input.
func CheckInput(input string) error {
	if input == "" {
		return &Error{Kind: KindInputRequired, msg: "Input file is required"}
	}
	return nil
}

// Run performs a single render.
func (p *Pipeline) Run(ctx context.Context, opts Options) error {
	if err := CheckInput(opts.Input); err != nil {
		return err
	}

	if opts.Verbose {
		p.println("Headless LibWeb Renderer Demo")
		p.printf("Input file: %s\n", opts.Input)
		p.printf("Output file: %s\n", opts.Output)
		p.printf("Viewport size: %dx%d\n", opts.Width, opts.Height)
	}

	start := time.Now()
	doc, err := p.loader.Load(ctx, opts.Input)
	if err != nil {
		var le *resource.LoadError
		if errors.As(err, &le) && le.Op == resource.OpRead {
			return &Error{Kind: KindRead, msg: fmt.Sprintf("Could not read input file '%s'", opts.Input), err: err}
		}
		return &Error{Kind: KindOpen, msg: fmt.Sprintf("Could not open input file '%s'", opts.Input), err: err}
	}
	p.logger.Debug("loaded input", "uri", doc.URI, "bytes", len(doc.Content), "content_type", doc.ContentType)

	if opts.Verbose {
		p.println("Rendering demo content...")
	}

	if opts.Width <= 0 || opts.Height <= 0 {
		return &Error{Kind: KindRender, msg: "Failed to render", err: fmt.Errorf("invalid viewport size %dx%d", opts.Width, opts.Height)}
	}

	if dir := filepath.Dir(opts.Output); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &Error{Kind: KindOutputDir, msg: fmt.Sprintf("Could not create output directory '%s'", dir), err: err}
		}
	}

	if err := p.render(doc, opts); err != nil {
		return &Error{Kind: KindRender, msg: "Failed to render", err: err}
	}
	p.logger.Debug("rendered", "output", opts.Output, "width", opts.Width, "height", opts.Height, "elapsed", time.Since(start))

	if opts.Verbose {
		p.printf("Successfully rendered demo to: %s\n", opts.Output)
	} else {
		p.printf("Rendered demo: %s -> %s\n", opts.Input, opts.Output)
	}
	return nil
}

func (p *Pipeline) render(doc *resource.Document, opts Options) error {
	target := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	if err := p.renderer.Render(doc, target); err != nil {
		return err
	}
	return render.NewRendererForImage(target).Save(opts.Output)
}

func (p *Pipeline) println(s string) {
	_, _ = fmt.Fprintln(p.stdout, s)
}

func (p *Pipeline) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.stdout, format, args...)
}
