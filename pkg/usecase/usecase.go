package usecase

import (
	"time"

	"github.com/secmon-lab/riskreg/pkg/domain/interfaces"
	"github.com/secmon-lab/riskreg/pkg/domain/types"
)

type UseCases struct {
	repo        interfaces.Repository
	notifier    interfaces.Notifier
	notifyLevel types.Level
	now         func() time.Time
	newID       func() types.RiskID
	Risk        *RiskUseCase
}

type Option func(*UseCases)

// WithNotifier announces added risks whose level is at least minLevel
func WithNotifier(notifier interfaces.Notifier, minLevel types.Level) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
		uc.notifyLevel = minLevel
	}
}

// WithClock replaces the time source used for created_at
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// WithIDGenerator replaces the risk ID generator
func WithIDGenerator(newID func() types.RiskID) Option {
	return func(uc *UseCases) {
		uc.newID = newID
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:        repo,
		notifyLevel: types.LevelCritical,
		now:         time.Now,
		newID:       types.NewRiskID,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Risk = NewRiskUseCase(repo, uc.notifier, uc.notifyLevel, uc.now, uc.newID)

	return uc
}
