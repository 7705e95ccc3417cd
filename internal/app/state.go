package app

import (
	"context"
	"sync"
)

// Analyzer runs a single analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*Analysis, error)
}

// AnalysisState holds the result of the latest analysis run.
//
// The state is cleared when a run starts and replaced only when the run succeeds.
// Runs are serialized, readers never see a partially built analysis.
type AnalysisState struct {
	runMu sync.Mutex

	mu       sync.RWMutex
	analysis *Analysis
}

// NewAnalysisState creates empty AnalysisState.
func NewAnalysisState() *AnalysisState {
	return &AnalysisState{}
}

// Run clears current analysis, runs a new one and stores its result.
// Invalid requests are rejected before the current analysis is cleared.
func (s *AnalysisState) Run(ctx context.Context, analyzer Analyzer, req Request) (*Analysis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.Replace(nil)
	a, err := analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	s.Replace(a)

	return a, nil
}

// Replace sets current analysis.
func (s *AnalysisState) Replace(a *Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.analysis = a
}

// Current returns current analysis, or nil if there's none.
func (s *AnalysisState) Current() *Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.analysis
}
