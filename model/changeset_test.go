package model

import "testing"

func TestParseBumpKind(t *testing.T) {
	tcs := []struct {
		in     string
		expect BumpKind
		err    bool
	}{
		{in: "patch", expect: BumpPatch},
		{in: "MINOR", expect: BumpMinor},
		{in: " Major ", expect: BumpMajor},
		{in: "skip", err: true},
		{in: "", err: true},
	}

	for _, tc := range tcs {
		t.Run(tc.in, func(t *testing.T) {
			k, err := ParseBumpKind(tc.in)
			if tc.err {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tc.in, k)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if k != tc.expect {
				t.Errorf("expected %q, got %q", tc.expect, k)
			}
		})
	}
}

func TestBumpKindRank(t *testing.T) {
	if !(BumpPatch.Rank() < BumpMinor.Rank() && BumpMinor.Rank() < BumpMajor.Rank()) {
		t.Fatal("expected patch < minor < major")
	}
	if BumpKind("nope").Rank() != 0 {
		t.Fatal("expected unknown bump kind to rank 0")
	}
}
