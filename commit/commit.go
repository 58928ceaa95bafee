// Package commit contains code for reading and processing commits.
package commit

import "github.com/jeffrom/changeset/model"

type ReleaseType int

const (
	_ ReleaseType = iota

	ReleaseSkip
	ReleasePatch
	ReleaseMinor
	ReleaseMajor
)

func (t ReleaseType) String() string {
	switch t {
	case ReleaseSkip:
		return "SKIP"
	case ReleasePatch:
		return "PATCH"
	case ReleaseMinor:
		return "MINOR"
	case ReleaseMajor:
		return "MAJOR"
	case 0:
		return "<INVALID>"
	default:
		return "<UNKNOWN>"
	}
}

// ReleaseTypeFromString panics on unknown input. Policies are validated by
// config.Config.Validate before they get here.
func ReleaseTypeFromString(s string) ReleaseType {
	switch s {
	case "SKIP":
		return ReleaseSkip
	case "PATCH":
		return ReleasePatch
	case "MINOR":
		return ReleaseMinor
	case "MAJOR":
		return ReleaseMajor
	}
	panic("unknown release type: " + s)
}

// BumpKind returns the changeset bump kind for t. ok is false for SKIP and
// invalid types, which produce no release.
func (t ReleaseType) BumpKind() (kind model.BumpKind, ok bool) {
	switch t {
	case ReleasePatch:
		return model.BumpPatch, true
	case ReleaseMinor:
		return model.BumpMinor, true
	case ReleaseMajor:
		return model.BumpMajor, true
	}
	return "", false
}

// ReleaseTypeFromBumpKind is the inverse of ReleaseType.BumpKind.
func ReleaseTypeFromBumpKind(k model.BumpKind) ReleaseType {
	switch k {
	case model.BumpPatch:
		return ReleasePatch
	case model.BumpMinor:
		return ReleaseMinor
	case model.BumpMajor:
		return ReleaseMajor
	}
	return 0
}
