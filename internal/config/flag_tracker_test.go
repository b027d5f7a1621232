package config

import (
	"testing"
)

func TestFlagTrackerSetAndQuery(t *testing.T) {
	ft := NewFlagTracker()

	if ft.WasSet("format") {
		t.Error("fresh tracker should report no flags")
	}

	ft.Set("format")
	if !ft.WasSet("format") {
		t.Error("flag should be reported after Set")
	}
	if ft.Count() != 1 {
		t.Errorf("Count = %d, want 1", ft.Count())
	}
}

func TestFlagTrackerSeededCopy(t *testing.T) {
	seed := map[string]bool{"buffer": true}
	ft := NewFlagTrackerWithFlags(seed)

	seed["hours-per-day"] = true
	if ft.WasSet("hours-per-day") {
		t.Error("tracker must copy the seed map, not alias it")
	}
	if !ft.WasSet("buffer") {
		t.Error("seeded flag should be reported")
	}
}

func TestFlagTrackerMerge(t *testing.T) {
	ft := NewFlagTrackerWithFlags(map[string]bool{
		"format": true,
		"buffer": true,
	})

	if got := ft.MergeString("text", "json", "format"); got != "json" {
		t.Errorf("MergeString = %q, want explicit override", got)
	}
	if got := ft.MergeString("text", "json", "sort"); got != "text" {
		t.Errorf("MergeString = %q, want base for untouched flag", got)
	}

	// Explicit zero wins over a non-zero base
	if got := ft.MergeFloat64(20, 0, "buffer"); got != 0 {
		t.Errorf("MergeFloat64 = %g, want explicit 0", got)
	}
	if got := ft.MergeFloat64(20, 0, "hours-per-day"); got != 20 {
		t.Errorf("MergeFloat64 = %g, want base 20", got)
	}

	if got := ft.MergeBool(true, false, "details"); got != true {
		t.Error("MergeBool should keep base for untouched flag")
	}
	if got := ft.MergeInt(100, 50, "buffer"); got != 50 {
		t.Errorf("MergeInt = %d, want 50", got)
	}
	if got := ft.MergeStringSlice([]string{"*.fpe.yaml"}, nil, "format"); len(got) != 1 {
		t.Error("MergeStringSlice should keep base when override is empty")
	}
}
