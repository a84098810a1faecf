package version

// Name for this
const Name string = "headless-renderer"

// Version for this
var Version = "0.1.0"

// Revision for this, set with -ldflags at build time
var Revision = "HEAD"
