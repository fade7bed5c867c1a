package version

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name":"v1.4.0"}`))
	}))
	defer srv.Close()

	old := ReleasesURL
	ReleasesURL = srv.URL
	defer func() { ReleasesURL = old }()

	assert.Equal(t, "1.4.0", LatestVersion())
}

func TestLatestVersion_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	old := ReleasesURL
	ReleasesURL = srv.URL
	defer func() { ReleasesURL = old }()

	assert.Equal(t, "", LatestVersion())
}

func TestFormatVersion(t *testing.T) {
	oldV, oldC, oldB := Version, Commit, BuildTime
	defer func() { Version, Commit, BuildTime = oldV, oldC, oldB }()

	Version, Commit, BuildTime = "1.2.3", "abc1234", ""
	assert.Equal(t, "1.2.3 (commit: abc1234)", FormatVersion())

	Version, Commit, BuildTime = "1.2.3", "", ""
	assert.Equal(t, "1.2.3 (development)", FormatVersion())
}

func TestFillFromBuild(t *testing.T) {
	oldV, oldC, oldB := Version, Commit, BuildTime
	defer func() { Version, Commit, BuildTime = oldV, oldC, oldB }()

	tests := []struct {
		name          string
		version       string
		moduleVersion string
		settings      map[string]string
		wantVersion   string
		wantCommit    string
		wantBuildTime string
	}{
		{
			name:          "installed release",
			version:       devVersion,
			moduleVersion: "v1.3.0",
			settings: map[string]string{
				"vcs.revision": "0123456789abcdef",
				"vcs.time":     "2025-10-23T10:20:30+02:00",
			},
			wantVersion:   "1.3.0",
			wantCommit:    "0123456",
			wantBuildTime: "2025-10-23T08:20:30Z",
		},
		{
			name:          "dirty tree",
			version:       devVersion,
			moduleVersion: "v1.3.0",
			settings:      map[string]string{"vcs.modified": "true"},
			wantVersion:   "1.3.0-dirty",
		},
		{
			name:          "local build",
			version:       devVersion,
			moduleVersion: "(devel)",
			settings:      map[string]string{"vcs.revision": "abc"},
			wantVersion:   devVersion,
		},
		{
			name:          "ldflags win",
			version:       "2.0.0",
			moduleVersion: "v1.3.0",
			wantVersion:   "2.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, BuildTime = tt.version, "", ""

			fillFromBuild(tt.moduleVersion, tt.settings)

			assert.Equal(t, tt.wantVersion, Version)
			assert.Equal(t, tt.wantCommit, Commit)
			assert.Equal(t, tt.wantBuildTime, BuildTime)
		})
	}
}
