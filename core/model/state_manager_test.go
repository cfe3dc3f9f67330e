package model

import (
	"sync"
	"testing"
)

func TestStateManager_Lifecycle(t *testing.T) {
	sm := NewStateManager()

	if sm.State() != NotStarted {
		t.Fatalf("initial state = %v, want %v", sm.State(), NotStarted)
	}
	if sm.IsTerminal() {
		t.Error("NotStarted should not be terminal")
	}

	if err := sm.Finish(true); err == nil {
		t.Error("Finish before Begin should fail")
	}

	if err := sm.Begin(3, 10); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if sm.State() != InProgress {
		t.Errorf("state = %v, want %v", sm.State(), InProgress)
	}
	if err := sm.Begin(3, 10); err == nil {
		t.Error("second Begin should fail")
	}

	nTrees, nSamples := sm.GetDimensions()
	if nTrees != 3 || nSamples != 10 {
		t.Errorf("GetDimensions() = (%d, %d), want (3, 10)", nTrees, nSamples)
	}

	if err := sm.Finish(false); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if sm.State() != Failed || !sm.IsTerminal() {
		t.Errorf("state = %v, want terminal %v", sm.State(), Failed)
	}

	sm.Reset()
	if sm.State() != NotStarted {
		t.Errorf("state after Reset = %v, want %v", sm.State(), NotStarted)
	}
	if err := sm.Begin(1, 1); err != nil {
		t.Errorf("Begin after Reset error = %v", err)
	}
	if err := sm.Finish(true); err != nil || sm.State() != Succeeded {
		t.Errorf("Finish(true) = %v, state %v", err, sm.State())
	}
}

func TestBuildState_String(t *testing.T) {
	tests := []struct {
		state BuildState
		want  string
	}{
		{NotStarted, "not_started"},
		{InProgress, "in_progress"},
		{Succeeded, "succeeded"},
		{Failed, "failed"},
		{BuildState(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}

func TestStateManager_ConcurrentBegin(t *testing.T) {
	sm := NewStateManager()

	var wg sync.WaitGroup
	var mu sync.Mutex
	started := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sm.Begin(1, 1) == nil {
				mu.Lock()
				started++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if started != 1 {
		t.Errorf("exactly one Begin should succeed, got %d", started)
	}
}
