package version

import (
	"fmt"
	"runtime"
)

// Set by ldflags: -X github.com/staffdesk/staffdesk/internal/version.Version=...
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// GetInfo returns complete version information
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

func (i Info) shortCommit() string {
	if len(i.Commit) > 8 {
		return i.Commit[:8]
	}
	return i.Commit
}

func (i Info) String() string {
	return fmt.Sprintf("staffdesk %s (%s) built %s with %s for %s",
		i.Version, i.shortCommit(), i.Date, i.GoVersion, i.Platform)
}

// UserAgent is sent with every backend request.
func (i Info) UserAgent() string {
	return fmt.Sprintf("staffdesk/%s (%s)", i.Version, i.Platform)
}
