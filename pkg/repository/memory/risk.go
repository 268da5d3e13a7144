package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
)

type riskRepository struct {
	mu      sync.RWMutex
	risks   []*model.Risk
	saves   int
	saveErr error
}

func newRiskRepository() *riskRepository {
	return &riskRepository{
		risks: []*model.Risk{},
	}
}

func (r *riskRepository) Load(ctx context.Context) ([]*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Return copies to prevent external modification
	return copyRisks(r.risks), nil
}

func (r *riskRepository) Save(ctx context.Context, risks []*model.Risk) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveErr != nil {
		return goerr.Wrap(r.saveErr, "failed to save risks", goerr.V("count", len(risks)))
	}

	r.risks = copyRisks(risks)
	r.saves++
	return nil
}

func copyRisks(risks []*model.Risk) []*model.Risk {
	copied := make([]*model.Risk, 0, len(risks))
	for _, risk := range risks {
		copied = append(copied, risk.Copy())
	}
	return copied
}
