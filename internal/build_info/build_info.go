package build_info

const (
	DefaultDevVersion = "0.0.0-dev"
)

// Set via -ldflags "-X github.com/bayware/bwctl/internal/build_info.Version=..." at release time.
var (
	Version = DefaultDevVersion
	Commit  = "unknown"
	Date    = "unknown"
)
