// Package model provides fitted-state tracking and gob persistence for
// trained models.
package model

import (
	"sync"

	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

// StateManager manages the fitted state of a model in a thread-safe manner.
// Exported fields survive gob encoding, so a loaded model stays fitted.
type StateManager struct {
	Fitted bool
	mu     sync.RWMutex

	NFeatures int
	NSamples  int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Fitted
}

// SetFitted marks the model as fitted and records the training shape.
func (s *StateManager) SetFitted(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = true
	s.NFeatures = nFeatures
	s.NSamples = nSamples
}

// GetDimensions returns the number of features and samples seen during fitting.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NFeatures, s.NSamples
}

// RequireFitted returns a NotFittedError naming modelName and method if the
// model has not been fitted. A nil receiver counts as not fitted.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if s == nil || !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}
