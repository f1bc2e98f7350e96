// Package buildinfo exposes the version stamped into the binary at link time:
//
//	go build -ldflags "-X github.com/matzehuels/barnframe/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/barnframe/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/barnframe/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Unstamped builds report "dev".
package buildinfo

import "fmt"

// Set by -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the version block of the API health response.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

func (i Info) String() string {
	return fmt.Sprintf("version %s\ncommit: %s\nbuilt: %s", i.Version, i.Commit, i.Date)
}

// Template is the cobra version template, e.g. "barnframe version v1.0.0".
func Template() string {
	return "{{.Name}} " + Get().String() + "\n"
}
