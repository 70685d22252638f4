package view

import (
	"sync"

	"github.com/presencedash/models"
)

// SelectionState is the filter tuple of one view session.
// It only changes through its setters.
type SelectionState struct {
	mu  sync.RWMutex
	sel models.Selection
}

func (s *SelectionState) SetSubject(id string) models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.SubjectID = id
	return s.sel
}

func (s *SelectionState) SetPeriod(key string) models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.PeriodKey = key
	return s.sel
}

func (s *SelectionState) SetGender(g models.Gender) models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Gender = g
	return s.sel
}

// Apply replaces the whole tuple
func (s *SelectionState) Apply(sel models.Selection) models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = sel
	return s.sel
}

func (s *SelectionState) Snapshot() models.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel
}
