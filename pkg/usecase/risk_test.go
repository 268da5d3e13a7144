package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/domain/types"
	"github.com/secmon-lab/riskreg/pkg/repository/memory"
	"github.com/secmon-lab/riskreg/pkg/usecase"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func sequentialIDs(ids ...types.RiskID) func() types.RiskID {
	var mu sync.Mutex
	i := 0
	return func() types.RiskID {
		mu.Lock()
		defer mu.Unlock()
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func counterIDs() func() types.RiskID {
	n := 0
	return func() types.RiskID {
		n++
		return types.RiskID(fmt.Sprintf("id%06d", n))
	}
}

func newUseCases(repo *memory.Memory, opts ...usecase.Option) *usecase.UseCases {
	base := []usecase.Option{
		usecase.WithClock(func() time.Time { return fixedNow }),
		usecase.WithIDGenerator(counterIDs()),
	}
	return usecase.New(repo, append(base, opts...)...)
}

type notifierMock struct {
	notified []*model.Risk
	err      error
}

func (m *notifierMock) NotifyRiskAdded(ctx context.Context, risk *model.Risk) error {
	m.notified = append(m.notified, risk)
	return m.err
}

func TestAddRisk(t *testing.T) {
	ctx := context.Background()

	t.Run("stores score, level and defaults", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)

		risk, err := uc.Risk.AddRisk(ctx, model.RiskDraft{
			Title:      "Cloud region outage",
			Likelihood: 3,
			Impact:     4,
			Category:   "Cloud",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, risk.ID).Equal(types.RiskID("id000001"))
		gt.Number(t, risk.Score).Equal(12)
		gt.Value(t, risk.Level).Equal(types.LevelHigh)
		gt.Value(t, risk.Status).Equal(types.StatusOpen)
		gt.Value(t, risk.Category).Equal(types.Category("cloud"))
		gt.String(t, risk.Owner).Equal("")
		gt.String(t, risk.Notes).Equal("")
		gt.Bool(t, risk.CreatedAt.Equal(fixedNow)).True()

		stored, err := repo.Risk().Load(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(1).Required()
		gt.Value(t, stored[0].ID).Equal(risk.ID)
		gt.Number(t, repo.Saves()).Equal(1)
	})

	t.Run("every rating pair produces its product and level", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)

		for l := types.Likelihood(1); l <= 5; l++ {
			for i := types.Impact(1); i <= 5; i++ {
				risk, err := uc.Risk.AddRisk(ctx, model.RiskDraft{Title: "r", Likelihood: l, Impact: i})
				gt.NoError(t, err).Required()
				gt.Number(t, risk.Score).Equal(int(l) * int(i))
				gt.Value(t, risk.Level).Equal(types.LevelFromScore(int(l) * int(i)))
			}
		}
		gt.Number(t, repo.Saves()).Equal(25)
	})

	t.Run("out of range ratings are rejected without writing", func(t *testing.T) {
		tests := []struct {
			name    string
			l       types.Likelihood
			i       types.Impact
			wantErr error
		}{
			{"likelihood zero", 0, 3, types.ErrInvalidLikelihood},
			{"likelihood six", 6, 3, types.ErrInvalidLikelihood},
			{"impact negative", 3, -1, types.ErrInvalidImpact},
			{"impact six", 3, 6, types.ErrInvalidImpact},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := memory.New()
				uc := newUseCases(repo)

				_, err := uc.Risk.AddRisk(ctx, model.RiskDraft{Title: "bad", Likelihood: tt.l, Impact: tt.i})
				gt.Error(t, err).Is(tt.wantErr)
				gt.Number(t, repo.Saves()).Equal(0)
			})
		}
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)

		_, err := uc.Risk.AddRisk(ctx, model.RiskDraft{Likelihood: 1, Impact: 1})
		gt.Error(t, err).Is(model.ErrEmptyTitle)
		gt.Number(t, repo.Saves()).Equal(0)
	})

	t.Run("colliding ID is regenerated", func(t *testing.T) {
		existing := model.NewRisk("dup00001", model.RiskDraft{Title: "old", Likelihood: 1, Impact: 1}, fixedNow)
		repo := memory.New(memory.WithRisks(existing))
		uc := newUseCases(repo, usecase.WithIDGenerator(sequentialIDs("dup00001", "new00002")))

		risk, err := uc.Risk.AddRisk(ctx, model.RiskDraft{Title: "new", Likelihood: 1, Impact: 1})
		gt.NoError(t, err).Required()
		gt.Value(t, risk.ID).Equal(types.RiskID("new00002"))
	})

	t.Run("persistent collision gives up", func(t *testing.T) {
		existing := model.NewRisk("dup00001", model.RiskDraft{Title: "old", Likelihood: 1, Impact: 1}, fixedNow)
		repo := memory.New(memory.WithRisks(existing))
		uc := newUseCases(repo, usecase.WithIDGenerator(sequentialIDs("dup00001")))

		_, err := uc.Risk.AddRisk(ctx, model.RiskDraft{Title: "new", Likelihood: 1, Impact: 1})
		gt.Error(t, err).Is(usecase.ErrIDExhausted)
		gt.Number(t, repo.Saves()).Equal(0)
	})

	t.Run("write failure is returned", func(t *testing.T) {
		saveErr := errors.New("disk full")
		repo := memory.New(memory.WithSaveError(saveErr))
		uc := newUseCases(repo)

		_, err := uc.Risk.AddRisk(ctx, model.RiskDraft{Title: "x", Likelihood: 1, Impact: 1})
		gt.Error(t, err).Is(saveErr)
	})
}

func TestAddRisk_Notification(t *testing.T) {
	ctx := context.Background()

	t.Run("notifies risks at or above the level", func(t *testing.T) {
		notifier := &notifierMock{}
		uc := newUseCases(memory.New(), usecase.WithNotifier(notifier, types.LevelHigh))

		_, err := uc.Risk.AddRisk(ctx, model.RiskDraft{Title: "low", Likelihood: 1, Impact: 1})
		gt.NoError(t, err).Required()
		_, err = uc.Risk.AddRisk(ctx, model.RiskDraft{Title: "high", Likelihood: 3, Impact: 4})
		gt.NoError(t, err).Required()
		_, err = uc.Risk.AddRisk(ctx, model.RiskDraft{Title: "critical", Likelihood: 5, Impact: 5})
		gt.NoError(t, err).Required()

		gt.Array(t, notifier.notified).Length(2).Required()
		gt.String(t, notifier.notified[0].Title).Equal("high")
		gt.String(t, notifier.notified[1].Title).Equal("critical")
	})

	t.Run("notification failure does not fail the add", func(t *testing.T) {
		notifier := &notifierMock{err: errors.New("webhook down")}
		repo := memory.New()
		uc := newUseCases(repo, usecase.WithNotifier(notifier, types.LevelLow))

		_, err := uc.Risk.AddRisk(ctx, model.RiskDraft{Title: "x", Likelihood: 1, Impact: 1})
		gt.NoError(t, err)
		gt.Number(t, repo.Saves()).Equal(1)
		gt.Array(t, notifier.notified).Length(1)
	})
}

func TestListRisks(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) *usecase.UseCases {
		t.Helper()
		uc := newUseCases(memory.New())
		drafts := []model.RiskDraft{
			{Title: "low cloud", Likelihood: 2, Impact: 2, Category: "cloud", Owner: "Alice"},
			{Title: "critical cloud", Likelihood: 4, Impact: 5, Category: "Cloud", Owner: "alice"},
			{Title: "high vendor", Likelihood: 3, Impact: 4, Category: "vendor", Owner: "Bob"},
		}
		for _, d := range drafts {
			_, err := uc.Risk.AddRisk(ctx, d)
			gt.NoError(t, err).Required()
		}
		return uc
	}

	titles := func(risks []*model.Risk) []string {
		out := make([]string, 0, len(risks))
		for _, r := range risks {
			out = append(out, r.Title)
		}
		return out
	}

	t.Run("sorted by score descending", func(t *testing.T) {
		risks, err := seed(t).Risk.ListRisks(ctx, model.RiskFilter{})
		gt.NoError(t, err).Required()
		gt.Value(t, titles(risks)).Equal([]string{"critical cloud", "high vendor", "low cloud"})
	})

	t.Run("category filter matches lowercased categories", func(t *testing.T) {
		risks, err := seed(t).Risk.ListRisks(ctx, model.RiskFilter{Category: "cloud"})
		gt.NoError(t, err).Required()
		gt.Value(t, titles(risks)).Equal([]string{"critical cloud", "low cloud"})
	})

	t.Run("owner filter is case-insensitive", func(t *testing.T) {
		risks, err := seed(t).Risk.ListRisks(ctx, model.RiskFilter{Owner: "ALICE"})
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(2)
	})

	t.Run("no match is empty", func(t *testing.T) {
		risks, err := seed(t).Risk.ListRisks(ctx, model.RiskFilter{Category: "privacy"})
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(0)
	})

	t.Run("listing does not write", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)
		_, err := uc.Risk.ListRisks(ctx, model.RiskFilter{})
		gt.NoError(t, err)
		gt.Number(t, repo.Saves()).Equal(0)
	})
}

func TestUpdateRisk(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*memory.Memory, *usecase.UseCases, types.RiskID) {
		t.Helper()
		repo := memory.New()
		uc := newUseCases(repo)
		risk, err := uc.Risk.AddRisk(ctx, model.RiskDraft{Title: "x", Likelihood: 2, Impact: 3})
		gt.NoError(t, err).Required()
		return repo, uc, risk.ID
	}

	t.Run("unknown ID is not found and nothing is written", func(t *testing.T) {
		repo, uc, _ := setup(t)
		before, err := repo.Risk().Load(ctx)
		gt.NoError(t, err).Required()

		risk, found, err := uc.Risk.UpdateRisk(ctx, "missing", usecase.UpdateRiskInput{Status: types.StatusClosed})
		gt.NoError(t, err)
		gt.Bool(t, found).False()
		gt.Value(t, risk).Nil()
		gt.Number(t, repo.Saves()).Equal(1)

		after, err := repo.Risk().Load(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, after).Equal(before)
	})

	t.Run("status is replaced", func(t *testing.T) {
		repo, uc, id := setup(t)

		risk, found, err := uc.Risk.UpdateRisk(ctx, id, usecase.UpdateRiskInput{Status: types.StatusMitigating})
		gt.NoError(t, err).Required()
		gt.Bool(t, found).True()
		gt.Value(t, risk.Status).Equal(types.StatusMitigating)

		stored, err := repo.Risk().Load(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, stored[0].Status).Equal(types.StatusMitigating)
	})

	t.Run("notes are appended with newline", func(t *testing.T) {
		repo, uc, id := setup(t)

		_, _, err := uc.Risk.UpdateRisk(ctx, id, usecase.UpdateRiskInput{Notes: "x"})
		gt.NoError(t, err).Required()
		_, _, err = uc.Risk.UpdateRisk(ctx, id, usecase.UpdateRiskInput{Notes: "y"})
		gt.NoError(t, err).Required()

		stored, err := repo.Risk().Load(ctx)
		gt.NoError(t, err).Required()
		gt.String(t, stored[0].Notes).Equal("x\ny")
		gt.Value(t, stored[0].Status).Equal(types.StatusOpen)
	})

	t.Run("empty update still saves", func(t *testing.T) {
		repo, uc, id := setup(t)

		_, found, err := uc.Risk.UpdateRisk(ctx, id, usecase.UpdateRiskInput{})
		gt.NoError(t, err).Required()
		gt.Bool(t, found).True()
		gt.Number(t, repo.Saves()).Equal(2)
	})

	t.Run("invalid status is rejected before loading", func(t *testing.T) {
		repo, uc, id := setup(t)

		_, _, err := uc.Risk.UpdateRisk(ctx, id, usecase.UpdateRiskInput{Status: "done"})
		gt.Error(t, err).Is(types.ErrInvalidStatus)
		gt.Number(t, repo.Saves()).Equal(1)
	})
}

func TestRiskStats(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		stats, err := newUseCases(memory.New()).Risk.RiskStats(ctx)
		gt.NoError(t, err).Required()
		gt.Number(t, stats.Total).Equal(0)
	})

	t.Run("counts levels and categories", func(t *testing.T) {
		uc := newUseCases(memory.New())
		for _, d := range []model.RiskDraft{
			{Title: "a", Likelihood: 1, Impact: 1, Category: "vendor"},
			{Title: "b", Likelihood: 1, Impact: 2},
			{Title: "c", Likelihood: 5, Impact: 5, Category: "Vendor"},
		} {
			_, err := uc.Risk.AddRisk(ctx, d)
			gt.NoError(t, err).Required()
		}

		stats, err := uc.Risk.RiskStats(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, stats.ByLevel).Equal([]model.Bucket{
			{Label: "Low", Count: 2},
			{Label: "Critical", Count: 1},
		})
		gt.Value(t, stats.ByCategory).Equal([]model.Bucket{
			{Label: "vendor", Count: 2},
			{Label: types.UncategorizedLabel, Count: 1},
		})
	})
}
