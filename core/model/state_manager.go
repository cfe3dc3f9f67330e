// Package model provides build state management for forest builders.
package model

import (
	"fmt"
	"sync"
)

// StateManager manages the build state of a forest builder in a thread-safe manner.
type StateManager struct {
	mu    sync.RWMutex
	state BuildState

	// Optional metadata recorded when a build begins.
	nTrees   int
	nSamples int
}

// NewStateManager creates a new StateManager in the NotStarted state.
func NewStateManager() *StateManager {
	return &StateManager{state: NotStarted}
}

// State returns the current build state.
func (s *StateManager) State() BuildState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsTerminal reports whether a terminal state has been reached.
func (s *StateManager) IsTerminal() bool {
	return s.State().IsTerminal()
}

// Begin moves the state from NotStarted to InProgress.
// It fails if a build already began on this instance.
func (s *StateManager) Begin(nTrees, nSamples int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != NotStarted {
		return fmt.Errorf("cannot begin build in state %s", s.state)
	}
	s.state = InProgress
	s.nTrees = nTrees
	s.nSamples = nSamples
	return nil
}

// Finish records the terminal state of an in-progress build.
func (s *StateManager) Finish(ok bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != InProgress {
		return fmt.Errorf("cannot finish build in state %s", s.state)
	}
	if ok {
		s.state = Succeeded
	} else {
		s.state = Failed
	}
	return nil
}

// Reset returns the manager to NotStarted.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = NotStarted
	s.nTrees = 0
	s.nSamples = 0
}

// GetDimensions returns the tree and sample counts recorded by Begin.
func (s *StateManager) GetDimensions() (nTrees, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nTrees, s.nSamples
}
