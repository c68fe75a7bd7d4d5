package handler

import (
	"net/http"
	"runtime"
	"runtime/debug"
	"sync"
)

// VersionInfo describes the running binary
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// Set with -ldflags "-X .../internal/handler.Version=..."
var (
	Version   = ""
	BuildTime = ""
	GitCommit = ""
)

var vcsOnce = sync.OnceValues(func() (revision, buildTime string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			buildTime = s.Value
		}
	}
	return revision, buildTime
})

// buildVersion resolves the version and VCS details. Linker flags win over
// configVersion, and the module's embedded VCS stamp fills any gaps.
func buildVersion(configVersion string) VersionInfo {
	info := VersionInfo{
		Version:   firstNonEmpty(Version, configVersion, "dev"),
		GoVersion: runtime.Version(),
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}
	rev, at := vcsOnce()
	info.GitCommit = firstNonEmpty(info.GitCommit, rev)
	info.BuildTime = firstNonEmpty(info.BuildTime, at)
	return info
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// HandleVersion returns build information
// @Summary Build information
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion(configVersion string) http.HandlerFunc {
	info := buildVersion(configVersion)
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}
