// Command headless-renderer writes the demo scene for an input document to
// an image file.
//
// Usage:
//
//	headless-renderer [-o output.png] [-w width] [-h height] [-v] <input.html>
//	headless-renderer compare <actual.png> <expected.png>
package main

import "os"

func main() {
	os.Exit(execute(os.Args[1:]))
}
