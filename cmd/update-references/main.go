package main

import (
	"fmt"
	"os"
	"path/filepath"

	"headless/pkg/visualtest"
)

// Regenerates the reference images used by the visual regression tests.
func main() {
	dir := "testdata/reference"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := generateReferences(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Reference images generated successfully")
}

// referenceSizes are the viewports covered by the visual regression tests.
var referenceSizes = []struct {
	width, height int
}{
	{1024, 768},
	{800, 600},
	{320, 240},
}

func generateReferences(dir string) error {
	for _, size := range referenceSizes {
		path := filepath.Join(dir, fmt.Sprintf("demo_%dx%d.png", size.width, size.height))
		if err := visualtest.UpdateReferenceImage(path, size.width, size.height); err != nil {
			return fmt.Errorf("failed to generate %s: %w", path, err)
		}
	}
	return nil
}
