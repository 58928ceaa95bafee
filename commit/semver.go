package commit

import (
	"github.com/blang/semver/v4"

	"github.com/jeffrom/changeset/model"
)

// Bump returns v incremented by kind. Prerelease and build metadata are
// dropped. Unknown kinds return v unchanged.
func Bump(v semver.Version, kind model.BumpKind) semver.Version {
	next := semver.Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	switch kind {
	case model.BumpMajor:
		next.Major++
		next.Minor = 0
		next.Patch = 0
	case model.BumpMinor:
		next.Minor++
		next.Patch = 0
	case model.BumpPatch:
		// a prerelease of x.y.z releases as x.y.z
		if len(v.Pre) == 0 {
			next.Patch++
		}
	default:
		return v
	}
	return next
}
