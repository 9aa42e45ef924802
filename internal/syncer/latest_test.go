package syncer

import "testing"

func TestTracker_LastIssuedWins(t *testing.T) {
	var tr Tracker

	first := tr.Begin()
	if !tr.Current(first) {
		t.Fatal("freshly issued ticket not current")
	}

	second := tr.Begin()
	if tr.Current(first) {
		t.Fatal("superseded ticket still current")
	}
	if !tr.Current(second) {
		t.Fatal("newest ticket not current")
	}
}

func TestTracker_SlowEarlyResponseIsDropped(t *testing.T) {
	var tr Tracker

	// Two queries fire back to back; the first response lands last.
	early := tr.Begin()
	late := tr.Begin()

	// The late query's response arrives first and is accepted.
	if !tr.Current(late) {
		t.Fatal("late query's response rejected")
	}
	// The early query's response straggles in and must be dropped.
	if tr.Current(early) {
		t.Fatal("stale response accepted after a newer query")
	}
}
