// Command headless-view shows the demo render of an input in a window and
// re-renders when the input file changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"headless/pkg/config"
	"headless/pkg/logger"
	"headless/pkg/resource"
	"headless/pkg/watch"
	stdnet "headless/std/net"
)

type viewer struct {
	loader   *resource.Loader
	renderer resource.Renderer
	width    int
	height   int
	logger   *slog.Logger
}

// render loads input and paints it into a fresh viewport-sized image.
func (v *viewer) render(ctx context.Context, input string) (*image.RGBA, error) {
	doc, err := v.loader.Load(ctx, input)
	if err != nil {
		return nil, err
	}
	target := image.NewRGBA(image.Rect(0, 0, v.width, v.height))
	if err := v.renderer.Render(doc, target); err != nil {
		return nil, err
	}
	return target, nil
}

func main() {
	width := flag.Int("w", 1024, "viewport width in pixels")
	height := flag.Int("h", 768, "viewport height in pixels")
	profile := flag.String("profile", "", "config profile name")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: headless-view [flags] [input.html]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *width <= 0 || *height <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid viewport size %dx%d\n", *width, *height)
		os.Exit(1)
	}
	cfg, err := config.Load(*profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	l := logger.New(logger.Options{Verbose: *verbose})
	v := &viewer{
		loader:   resource.NewLoader(stdnet.NewClient(l)),
		renderer: resource.NewDemoRenderer(cfg.Theme),
		width:    *width,
		height:   *height,
		logger:   l,
	}

	a := app.New()
	w := a.NewWindow("headless-view")
	w.Resize(fyne.NewSize(float32(*width), float32(*height)+80))

	canvasImg := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, *width, *height)))
	canvasImg.FillMode = canvas.ImageFillOriginal
	status := widget.NewLabel("Enter a file path or URL and press Enter")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var stopWatch context.CancelFunc = func() {}

	show := func(input string) error {
		img, err := v.render(ctx, input)
		if err != nil {
			fyne.Do(func() { status.SetText("Error: " + err.Error()) })
			return err
		}
		fyne.Do(func() {
			canvasImg.Image = img
			canvasImg.Refresh()
			status.SetText(input)
			w.SetTitle("headless-view - " + input)
		})
		return nil
	}

	open := func(input string) {
		stopWatch()
		status.SetText("Loading " + input + "...")
		go func() { _ = show(input) }()
		if stdnet.IsNetworkURL(input) {
			stopWatch = func() {}
			return
		}
		watchCtx, stop := context.WithCancel(ctx)
		stopWatch = stop
		go func() {
			err := watch.File(watchCtx, input, func(context.Context) error {
				return show(input)
			}, watch.WithLogger(l))
			if err != nil {
				l.Warn("not watching input", "input", input, "error", err)
			}
		}()
	}

	inputEntry := widget.NewEntry()
	inputEntry.SetPlaceHolder("index.html or https://example.com")
	inputEntry.OnSubmitted = open

	content := container.NewBorder(inputEntry, status, nil, nil, canvasImg)
	w.SetContent(content)
	w.Canvas().Focus(inputEntry)

	if flag.NArg() > 0 {
		inputEntry.SetText(flag.Arg(0))
		open(flag.Arg(0))
	}

	w.ShowAndRun()
	stopWatch()
}
