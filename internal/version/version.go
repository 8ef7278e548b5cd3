package version

import "github.com/fatih/color"

// Build metadata for the trueup CLI. The git and date fields are meant to
// be stamped at link time, e.g.
//
//	-ldflags "-X trueup/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// Version is the semantic version reported by the CLI.
	Version = paintSemver("0", "1", "0") + "-dev"

	// GitCommit is the commit the binary was built from.
	GitCommit = ""

	// GitMessage is the subject line of that commit.
	GitMessage = ""

	// BuildDate is the build timestamp in ISO-8601.
	BuildDate = ""
)

// paintSemver раскрашивает сегменты major.minor.patch в баннере;
// color сам отключается, когда вывод не терминал.
func paintSemver(major, minor, patch string) string {
	return color.New(color.FgYellow, color.Bold).Sprint(major) +
		"." + color.New(color.FgGreen, color.Bold).Sprint(minor) +
		"." + color.New(color.FgBlue, color.Bold).Sprint(patch)
}
