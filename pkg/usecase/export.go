package usecase

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
	"github.com/secmon-lab/riskreg/pkg/utils/safe"
)

// DefaultExportPath is the export destination used when none is given
const DefaultExportPath = "risks_export.csv"

// ExportColumns is the CSV header, in stored field order
var ExportColumns = []string{
	"id",
	"title",
	"category",
	"owner",
	"likelihood",
	"impact",
	"score",
	"level",
	"status",
	"created_at",
	"notes",
}

func exportRow(r *model.Risk) []string {
	return []string{
		r.ID.String(),
		r.Title,
		r.Category.String(),
		r.Owner,
		r.Likelihood.String(),
		r.Impact.String(),
		strconv.Itoa(r.Score),
		r.Level.String(),
		r.Status.String(),
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
		r.Notes,
	}
}

// WriteCSV writes the header and one row per risk in the given order
func WriteCSV(w io.Writer, risks []*model.Risk) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}
	for _, r := range risks {
		if err := cw.Write(exportRow(r)); err != nil {
			return goerr.Wrap(err, "failed to write CSV row", goerr.V(RiskIDKey, r.ID))
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV")
	}
	return nil
}

// ExportRisks writes every stored risk, in stored order, as CSV to path and returns the count.
// When the store is empty nothing is written and the count is 0.
func (uc *RiskUseCase) ExportRisks(ctx context.Context, path string) (int, error) {
	if path == "" {
		path = DefaultExportPath
	}

	risks, err := uc.repo.Risk().Load(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to load risks")
	}
	if len(risks) == 0 {
		return 0, nil
	}

	if err := safe.WriteFile(path, 0o644, func(w io.Writer) error {
		return WriteCSV(w, risks)
	}); err != nil {
		return 0, goerr.Wrap(err, "failed to export risks", goerr.V(ExportPathKey, path))
	}

	logging.From(ctx).Info("risks exported", "path", path, "count", len(risks))
	return len(risks), nil
}
