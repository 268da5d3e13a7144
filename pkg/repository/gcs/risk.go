package gcs

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/repository/codec"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
	"github.com/secmon-lab/riskreg/pkg/utils/safe"
)

type riskRepository struct {
	obj *storage.ObjectHandle
}

func newRiskRepository(obj *storage.ObjectHandle) *riskRepository {
	return &riskRepository{obj: obj}
}

func (r *riskRepository) Load(ctx context.Context) ([]*model.Risk, error) {
	logger := logging.From(ctx)

	rd, err := r.obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			logger.Debug("risk store object does not exist, starting empty",
				"bucket", r.obj.BucketName(), "object", r.obj.ObjectName())
			return []*model.Risk{}, nil
		}
		return nil, goerr.Wrap(err, "failed to open risk store object",
			goerr.V("bucket", r.obj.BucketName()), goerr.V("object", r.obj.ObjectName()))
	}
	defer safe.Close(ctx, rd)

	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read risk store object",
			goerr.V("bucket", r.obj.BucketName()), goerr.V("object", r.obj.ObjectName()))
	}

	risks, err := codec.Decode(data)
	if err != nil {
		logger.Debug("risk store object is unreadable, starting empty", "error", err.Error())
	}
	return risks, nil
}

func (r *riskRepository) Save(ctx context.Context, risks []*model.Risk) error {
	data, err := codec.Encode(risks)
	if err != nil {
		return err
	}

	// The object is replaced only when Close succeeds
	w := r.obj.NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write risk store object",
			goerr.V("bucket", r.obj.BucketName()), goerr.V("object", r.obj.ObjectName()))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to commit risk store object",
			goerr.V("bucket", r.obj.BucketName()), goerr.V("object", r.obj.ObjectName()))
	}

	logging.From(ctx).Debug("saved risk store object", "object", r.obj.ObjectName(), "count", len(risks))
	return nil
}
