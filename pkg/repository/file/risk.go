package file

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/repository/codec"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
	"github.com/secmon-lab/riskreg/pkg/utils/safe"
)

const storeFileMode = 0o644

type riskRepository struct {
	path string
}

func newRiskRepository(path string) *riskRepository {
	return &riskRepository{path: path}
}

func (r *riskRepository) Load(ctx context.Context) ([]*model.Risk, error) {
	logger := logging.From(ctx)

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("risk store does not exist, starting empty", "path", r.path)
			return []*model.Risk{}, nil
		}
		return nil, goerr.Wrap(err, "failed to read risk store", goerr.V("path", r.path))
	}

	risks, err := codec.Decode(data)
	if err != nil {
		logger.Debug("risk store is unreadable, starting empty", "path", r.path, "error", err.Error())
		return risks, nil
	}

	logger.Debug("loaded risk store", "path", r.path, "count", len(risks))
	return risks, nil
}

// Save replaces the store document atomically
func (r *riskRepository) Save(ctx context.Context, risks []*model.Risk) error {
	data, err := codec.Encode(risks)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create risk store directory", goerr.V("dir", dir))
	}

	if err := safe.WriteFile(r.path, storeFileMode, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}); err != nil {
		return goerr.Wrap(err, "failed to write risk store", goerr.V("path", r.path))
	}

	logging.From(ctx).Debug("saved risk store", "path", r.path, "count", len(risks))
	return nil
}
