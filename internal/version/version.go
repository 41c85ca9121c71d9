package version

// Version is the compiler version reported by --version.
// Overridden at release time via -ldflags "-X slicec/internal/version.Version=...".
var Version = "0.1.0-dev"
