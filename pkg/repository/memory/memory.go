package memory

import (
	"github.com/secmon-lab/riskreg/pkg/domain/interfaces"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
)

// Memory keeps the risk collection in process memory
type Memory struct {
	risk *riskRepository
}

var _ interfaces.Repository = &Memory{}

type Option func(*Memory)

// WithRisks seeds the collection
func WithRisks(risks ...*model.Risk) Option {
	return func(m *Memory) {
		m.risk.risks = copyRisks(risks)
	}
}

// WithSaveError makes every Save fail with err
func WithSaveError(err error) Option {
	return func(m *Memory) {
		m.risk.saveErr = err
	}
}

func New(opts ...Option) *Memory {
	m := &Memory{
		risk: newRiskRepository(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

// Saves returns how many times the collection has been saved
func (m *Memory) Saves() int {
	m.risk.mu.RLock()
	defer m.risk.mu.RUnlock()
	return m.risk.saves
}

func (m *Memory) Close() error {
	return nil
}
