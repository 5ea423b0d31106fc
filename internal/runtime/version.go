package runtime

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ParseVersion strips a leading "v" and parses the version string.
func ParseVersion(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
func CompareVersions(a, b string) (int, error) {
	av, err := ParseVersion(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := ParseVersion(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// CheckMinVersion returns an error when version is older than minVersion.
// An empty minVersion always passes.
func CheckMinVersion(version, minVersion string) error {
	if minVersion == "" {
		return nil
	}
	cmp, err := CompareVersions(version, minVersion)
	if err != nil {
		return err
	}
	if cmp < 0 {
		return fmt.Errorf("version %s is older than required minimum %s", version, minVersion)
	}
	return nil
}
