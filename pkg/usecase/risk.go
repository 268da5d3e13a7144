package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/interfaces"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/domain/types"
	"github.com/secmon-lab/riskreg/pkg/utils/errutil"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
)

// maxIDAttempts bounds regeneration when a new ID collides with a stored one
const maxIDAttempts = 8

type RiskUseCase struct {
	repo        interfaces.Repository
	notifier    interfaces.Notifier
	notifyLevel types.Level
	now         func() time.Time
	newID       func() types.RiskID
}

func NewRiskUseCase(repo interfaces.Repository, notifier interfaces.Notifier, notifyLevel types.Level, now func() time.Time, newID func() types.RiskID) *RiskUseCase {
	return &RiskUseCase{
		repo:        repo,
		notifier:    notifier,
		notifyLevel: notifyLevel,
		now:         now,
		newID:       newID,
	}
}

// UpdateRiskInput holds the optional changes of an update. Empty fields are left untouched.
type UpdateRiskInput struct {
	Status types.Status
	Notes  string
}

// AddRisk validates the draft, registers a new open risk and persists the collection.
// Nothing is loaded or written when validation fails.
func (uc *RiskUseCase) AddRisk(ctx context.Context, draft model.RiskDraft) (*model.Risk, error) {
	if err := draft.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid risk",
			goerr.V("title", draft.Title),
			goerr.V("likelihood", int(draft.Likelihood)),
			goerr.V("impact", int(draft.Impact)))
	}

	risks, err := uc.repo.Risk().Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load risks")
	}

	id, err := uc.generateID(risks)
	if err != nil {
		return nil, err
	}

	risk := model.NewRisk(id, draft, uc.now())
	risks = append(risks, risk)

	if err := uc.repo.Risk().Save(ctx, risks); err != nil {
		return nil, goerr.Wrap(err, "failed to save risks", goerr.V(RiskIDKey, id))
	}

	logging.From(ctx).Info("risk added",
		"id", risk.ID,
		"level", risk.Level,
		"score", risk.Score,
	)

	uc.notify(ctx, risk)

	return risk, nil
}

func (uc *RiskUseCase) generateID(risks []*model.Risk) (types.RiskID, error) {
	for range maxIDAttempts {
		id := uc.newID()
		if model.FindRisk(risks, id) == nil {
			return id, nil
		}
	}
	return "", goerr.Wrap(ErrIDExhausted, "risk ID collided on every attempt",
		goerr.V("attempts", maxIDAttempts))
}

// notify delivers the added risk to the notifier. Failures are logged only
// because the risk is already persisted.
func (uc *RiskUseCase) notify(ctx context.Context, risk *model.Risk) {
	if uc.notifier == nil || risk.Level.Rank() < uc.notifyLevel.Rank() {
		return
	}
	if err := uc.notifier.NotifyRiskAdded(ctx, risk); err != nil {
		_ = errutil.Handle(ctx, err, "failed to notify added risk")
	}
}

// ListRisks returns the risks matching filter, highest score first
func (uc *RiskUseCase) ListRisks(ctx context.Context, filter model.RiskFilter) ([]*model.Risk, error) {
	risks, err := uc.repo.Risk().Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load risks")
	}

	matched := filter.Apply(risks)
	model.SortByScore(matched)
	return matched, nil
}

// UpdateRisk changes the status and appends notes of the risk with the given ID.
// found is false when no risk has the ID; nothing is written in that case.
// A found risk is saved even when input carries no change.
func (uc *RiskUseCase) UpdateRisk(ctx context.Context, id types.RiskID, input UpdateRiskInput) (risk *model.Risk, found bool, err error) {
	if input.Status != "" && !input.Status.IsValid() {
		return nil, false, goerr.Wrap(types.ErrInvalidStatus, "invalid status",
			goerr.V(RiskIDKey, id), goerr.V("status", input.Status))
	}

	risks, err := uc.repo.Risk().Load(ctx)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to load risks")
	}

	risk = model.FindRisk(risks, id)
	if risk == nil {
		logging.From(ctx).Debug("risk not found", "id", id)
		return nil, false, nil
	}

	if input.Status != "" {
		risk.Status = input.Status
	}
	if input.Notes != "" {
		risk.AppendNotes(input.Notes)
	}

	if err := uc.repo.Risk().Save(ctx, risks); err != nil {
		return nil, true, goerr.Wrap(err, "failed to save risks", goerr.V(RiskIDKey, id))
	}

	logging.From(ctx).Info("risk updated", "id", risk.ID, "status", risk.Status)
	return risk, true, nil
}

// RiskStats counts stored risks by level and category
func (uc *RiskUseCase) RiskStats(ctx context.Context) (*model.RiskStats, error) {
	risks, err := uc.repo.Risk().Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load risks")
	}
	return model.NewRiskStats(risks), nil
}
