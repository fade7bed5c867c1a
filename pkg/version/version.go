package version

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/pterm/pterm"
)

// ReleasesURL is the endpoint queried for the latest published release.
var ReleasesURL = "https://api.github.com/repos/diillson/aws-carbon-emissions-go/releases/latest"

const devVersion = "0.0.0-dev"

// Version, Commit e BuildTime vêm de -ldflags -X; sem eles, do build info.
var (
	Version   = devVersion
	Commit    = ""
	BuildTime = ""
)

func init() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}
	fillFromBuild(bi.Main.Version, settings)
}

// fillFromBuild completa os campos vazios a partir da versão do módulo
// (go install ...@vX.Y.Z) e das chaves vcs.* gravadas pelo toolchain.
func fillFromBuild(moduleVersion string, settings map[string]string) {
	if Commit == "" && len(settings["vcs.revision"]) >= 7 {
		Commit = settings["vcs.revision"][:7]
	}
	if BuildTime == "" {
		if ts, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
			BuildTime = ts.UTC().Format(time.RFC3339)
		}
	}
	if Version != devVersion || moduleVersion == "" || moduleVersion == "(devel)" {
		return
	}
	Version = strings.TrimPrefix(moduleVersion, "v")
	if strings.EqualFold(settings["vcs.modified"], "true") {
		Version += "-dirty"
	}
}

// LatestVersion consulta a última release publicada. Retorna "" em qualquer falha.
func LatestVersion() string {
	resp, err := resty.New().
		SetTimeout(3 * time.Second).
		R().
		SetHeader("Accept", "application/vnd.github+json").
		Get(ReleasesURL)
	if err != nil || resp.StatusCode() != http.StatusOK {
		return ""
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal(resp.Body(), &release); err != nil {
		return ""
	}
	return strings.TrimPrefix(release.TagName, "v")
}

// CheckLatestVersion verifica se uma versão mais recente está disponível.
func CheckLatestVersion(currentVersion string) {
	// Versões dev não são verificadas
	if strings.HasSuffix(currentVersion, "-dev") {
		return
	}

	latestVersion := LatestVersion()
	// Compara versões (heurística simples)
	if latestVersion != "" && latestVersion > currentVersion {
		pterm.Warning.Println(fmt.Sprintf("A new version of aws-carbon is available: %s", latestVersion))
		pterm.Info.Println("Please update using: go install github.com/diillson/aws-carbon-emissions-go/cmd/aws-carbon@latest")
	}
}

// FormatVersion retorna, por exemplo, "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)".
func FormatVersion() string {
	switch {
	case Commit == "" && BuildTime == "":
		return fmt.Sprintf("%s (development)", Version)
	case Commit == "":
		return fmt.Sprintf("%s (built at: %s)", Version, BuildTime)
	case BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", Version, Commit)
	}
	return fmt.Sprintf("%s (commit: %s, built at: %s)", Version, Commit, BuildTime)
}
