package synergereader

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/synerge/synergereader.Version=...".
var Version = "dev"
