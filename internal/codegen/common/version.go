package common

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// Version is set via ldflags at build time:
// -ldflags "-X github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/common.Version=x.y.z"
var Version = ""

// DevVersion is reported when Version was not set at build time.
const DevVersion = "0.0.1-dev"

// GetVersion returns the build-time version without a leading "v".
// Returns DevVersion if Version is empty (development builds only).
func GetVersion() (string, error) {
	return NormalizeVersion(Version)
}

// NormalizeVersion validates v as a semantic version and returns it without
// a leading "v". An empty v yields DevVersion.
func NormalizeVersion(v string) (string, error) {
	if v == "" {
		return DevVersion, nil
	}
	if _, err := semver.StrictNewVersion(strings.TrimPrefix(v, "v")); err != nil {
		return "", errors.Wrapf(err, "invalid version format: %s (expected x.y.z)", v)
	}
	return strings.TrimPrefix(v, "v"), nil
}

// ParseVersion extracts major, minor, patch from a version string like
// "1.2.3" or "1.2.3-dirty". Unparseable input yields zeros.
func ParseVersion(version string) (major, minor, patch int) {
	sv, err := semver.NewVersion(version)
	if err != nil {
		return 0, 0, 0
	}
	return int(sv.Major()), int(sv.Minor()), int(sv.Patch())
}
