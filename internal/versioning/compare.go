package versioning

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Direction classifies a pending version change.
type Direction string

const (
	DirectionUpgrade   Direction = "upgrade"
	DirectionDowngrade Direction = "downgrade"
	DirectionReinstall Direction = "reinstall"
	DirectionUnknown   Direction = "unknown"
)

// CompareVersions classifies moving from installed to latest. An installed
// version that is not semver (such as "unknown") counts as older than any
// valid latest version.
func CompareVersions(installed, latest string) Direction {
	l := canonical(latest)
	if l == "" {
		return DirectionUnknown
	}

	i := canonical(installed)
	if i == "" {
		return DirectionUpgrade
	}

	switch semver.Compare(i, l) {
	case -1:
		return DirectionUpgrade
	case 1:
		return DirectionDowngrade
	default:
		return DirectionReinstall
	}
}

// IsValid reports whether v is a semantic version, with or without a "v" prefix.
func IsValid(v string) bool {
	return canonical(v) != ""
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
