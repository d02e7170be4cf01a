package filesystem

import "testing"

func TestCommitPhaseAdvanceMonotonic(t *testing.T) {
	var phase CommitPhase
	phase.advance(PhaseWriting)
	phase.advance(PhaseSyncedFile)
	phase.advance(PhaseClosed)

	if phase != PhaseClosed {
		t.Errorf("phase = %v, want %v", phase, PhaseClosed)
	}
}

func TestCommitPhaseAdvanceBackwardsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when advancing to an earlier phase")
		}
	}()

	var phase CommitPhase
	phase.advance(PhaseClosed)
	phase.advance(PhaseWriting)
}

func TestCommitPhasePublished(t *testing.T) {
	cases := []struct {
		phase CommitPhase
		want  bool
	}{
		{PhasePending, false},
		{PhaseWriting, false},
		{PhaseSyncedFile, false},
		{PhaseClosed, false},
		{PhaseRenamedPublished, true},
		{PhaseDirectorySyncAttempted, true},
		{PhaseSyncedDirectory, true},
	}
	for _, c := range cases {
		if got := c.phase.Published(); got != c.want {
			t.Errorf("%v.Published() = %v, want %v", c.phase, got, c.want)
		}
	}
}
