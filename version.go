package switchboard

// Version is the library version, overridable at build time via
// -ldflags "-X github.com/switchboard-dev/switchboard.Version=...".
var Version = "0.1.0"
