package model

import (
	"fmt"
	"strings"
	"time"
)

// BumpKind is the semantic version increment a release asks for.
type BumpKind string

const (
	BumpPatch BumpKind = "patch"
	BumpMinor BumpKind = "minor"
	BumpMajor BumpKind = "major"
)

func ParseBumpKind(s string) (BumpKind, error) {
	switch k := BumpKind(strings.ToLower(strings.TrimSpace(s))); k {
	case BumpPatch, BumpMinor, BumpMajor:
		return k, nil
	}
	return "", fmt.Errorf("model: invalid bump kind %q", s)
}

func (k BumpKind) String() string { return string(k) }

// Rank orders bump kinds so the largest one can be picked. Unknown kinds rank
// 0.
func (k BumpKind) Rank() int {
	switch k {
	case BumpPatch:
		return 1
	case BumpMinor:
		return 2
	case BumpMajor:
		return 3
	}
	return 0
}

// Release is a single package bump within a changeset.
type Release struct {
	Name string   `json:"name"`
	Type BumpKind `json:"type"`
}

// ChangeRecord is everything needed to write one changeset file. Hash and
// Date must be set; Releases may be empty.
type ChangeRecord struct {
	Summary  string    `json:"summary"`
	Releases []Release `json:"releases"`
	Hash     string    `json:"hash"`
	Date     time.Time `json:"date"`
}

// ShortHash returns the part of the hash used in the changeset identifier.
func (r *ChangeRecord) ShortHash() string {
	return shortHash(r.Hash)
}
