package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the release of the dashboard and the carstats tool
	Version = "0.3.0"

	// APIVersion covers the HTTP routes and the WebSocket message shapes
	APIVersion = "v1"
)

// Build metadata, stamped by build.go through -ldflags -X
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

// VersionInfo is the version report printed by carstats version --json
type VersionInfo struct {
	Version    string `json:"version"`
	APIVersion string `json:"api_version"`
	BuildTime  string `json:"build_time"`
	GitCommit  string `json:"git_commit"`
	GitBranch  string `json:"git_branch"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:    Version,
		APIVersion: APIVersion,
		BuildTime:  BuildTime,
		GitCommit:  GitCommit,
		GitBranch:  GitBranch,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// GetFullVersionString renders the version report on one line
func GetFullVersionString() string {
	info := GetVersionInfo()
	return fmt.Sprintf("Car Sales Dashboard v%s (api %s, commit %s@%s, built %s, %s %s)",
		info.Version, info.APIVersion, info.GitCommit, info.GitBranch, info.BuildTime, info.GoVersion, info.Platform)
}
