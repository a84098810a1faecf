package visualtest

import (
	"fmt"
	"os"
	"path/filepath"

	"headless/pkg/render"
	"headless/pkg/scene"
)

// RenderDemoToFile renders the demo scene with the default theme to an image
// file. The encoding follows the file extension.
func RenderDemoToFile(outputPath string, width, height int) error {
	s, err := scene.Demo(width, height, scene.Theme{})
	if err != nil {
		return fmt.Errorf("scene error: %w", err)
	}

	renderer := render.NewRenderer(width, height)
	renderer.Render(s)

	// Ensure output directory exists
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := renderer.Save(outputPath); err != nil {
		return fmt.Errorf("save error: %w", err)
	}

	return nil
}

// UpdateReferenceImage generates a new reference image
// Use this when you've intentionally changed rendering behavior
func UpdateReferenceImage(referencePath string, width, height int) error {
	fmt.Printf("Updating reference image: %s\n", referencePath)
	return RenderDemoToFile(referencePath, width, height)
}
