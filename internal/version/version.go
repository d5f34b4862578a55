// ABOUTME: Build-time identity constants for this module
// ABOUTME: Version can be overridden at link time via -ldflags for release builds
package version

// Version is the semantic version of this build; "dev" outside of a
// tagged release build.
var Version = "dev"

// Product is the human-readable name of this implementation.
const Product = "sea-go"

// Manufacturer identifies the reference implementation's maintainer.
const Manufacturer = "seacodec"
