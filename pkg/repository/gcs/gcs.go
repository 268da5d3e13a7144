package gcs

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/interfaces"
)

// DefaultObject is the object name used when none is configured
const DefaultObject = "risks.json"

// GCS keeps the risk collection as a single JSON object in a Cloud Storage bucket
type GCS struct {
	client *storage.Client
	risk   *riskRepository
}

var _ interfaces.Repository = &GCS{}

func New(ctx context.Context, bucket, object string) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("GCS bucket is required")
	}
	if object == "" {
		object = DefaultObject
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	return &GCS{
		client: client,
		risk:   newRiskRepository(client.Bucket(bucket).Object(object)),
	}, nil
}

func (g *GCS) Risk() interfaces.RiskRepository {
	return g.risk
}

func (g *GCS) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
