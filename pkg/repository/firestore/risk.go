package firestore

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/domain/types"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// riskDocument is the stored form of a risk. Seq keeps the collection order.
type riskDocument struct {
	Seq        int       `firestore:"seq"`
	ID         string    `firestore:"id"`
	Title      string    `firestore:"title"`
	Category   string    `firestore:"category"`
	Owner      string    `firestore:"owner"`
	Likelihood int       `firestore:"likelihood"`
	Impact     int       `firestore:"impact"`
	Score      int       `firestore:"score"`
	Level      string    `firestore:"level"`
	Status     string    `firestore:"status"`
	CreatedAt  time.Time `firestore:"created_at"`
	Notes      string    `firestore:"notes"`
}

func toDocument(seq int, r *model.Risk) *riskDocument {
	return &riskDocument{
		Seq:        seq,
		ID:         r.ID.String(),
		Title:      r.Title,
		Category:   r.Category.String(),
		Owner:      r.Owner,
		Likelihood: int(r.Likelihood),
		Impact:     int(r.Impact),
		Score:      r.Score,
		Level:      r.Level.String(),
		Status:     r.Status.String(),
		CreatedAt:  r.CreatedAt,
		Notes:      r.Notes,
	}
}

func (d *riskDocument) toModel() *model.Risk {
	return &model.Risk{
		ID:         types.RiskID(d.ID),
		Title:      d.Title,
		Category:   types.Category(d.Category),
		Owner:      d.Owner,
		Likelihood: types.Likelihood(d.Likelihood),
		Impact:     types.Impact(d.Impact),
		Score:      d.Score,
		Level:      types.Level(d.Level),
		Status:     types.Status(d.Status),
		CreatedAt:  d.CreatedAt.UTC(),
		Notes:      d.Notes,
	}
}

type riskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRiskRepository(client *firestore.Client) *riskRepository {
	return &riskRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *riskRepository) risksCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_risks"
	}
	return "risks"
}

func (r *riskRepository) Load(ctx context.Context) ([]*model.Risk, error) {
	logger := logging.From(ctx)
	iter := r.client.Collection(r.risksCollection()).OrderBy("seq", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	risks := []*model.Risk{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			if status.Code(err) == codes.NotFound {
				logger.Debug("risk collection does not exist, starting empty", "collection", r.risksCollection())
				return []*model.Risk{}, nil
			}
			return nil, goerr.Wrap(err, "failed to iterate risks", goerr.V("collection", r.risksCollection()))
		}

		var d riskDocument
		if err := doc.DataTo(&d); err != nil {
			logger.Debug("risk collection is unreadable, starting empty",
				"collection", r.risksCollection(), "doc", doc.Ref.ID, "error", err.Error())
			return []*model.Risk{}, nil
		}
		risks = append(risks, d.toModel())
	}

	return risks, nil
}

// Save writes every risk and deletes documents that are no longer part of the collection
func (r *riskRepository) Save(ctx context.Context, risks []*model.Risk) error {
	coll := r.client.Collection(r.risksCollection())

	keep := make(map[string]struct{}, len(risks))
	for _, risk := range risks {
		keep[risk.ID.String()] = struct{}{}
	}

	var stale []*firestore.DocumentRef
	refs := coll.DocumentRefs(ctx)
	for {
		ref, err := refs.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to list stored risks", goerr.V("collection", r.risksCollection()))
		}
		if _, ok := keep[ref.ID]; !ok {
			stale = append(stale, ref)
		}
	}

	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(risks)+len(stale))
	for i, risk := range risks {
		job, err := bw.Set(coll.Doc(risk.ID.String()), toDocument(i, risk))
		if err != nil {
			bw.End()
			return goerr.Wrap(err, "failed to enqueue risk", goerr.V("id", risk.ID))
		}
		jobs = append(jobs, job)
	}
	for _, ref := range stale {
		job, err := bw.Delete(ref)
		if err != nil {
			bw.End()
			return goerr.Wrap(err, "failed to enqueue stale risk deletion", goerr.V("id", ref.ID))
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return goerr.Wrap(err, "failed to save risks", goerr.V("collection", r.risksCollection()))
		}
	}

	logging.From(ctx).Debug("saved risk collection", "collection", r.risksCollection(), "count", len(risks))
	return nil
}
