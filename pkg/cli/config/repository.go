package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/interfaces"
	"github.com/secmon-lab/riskreg/pkg/repository/file"
	"github.com/secmon-lab/riskreg/pkg/repository/firestore"
	"github.com/secmon-lab/riskreg/pkg/repository/gcs"
	"github.com/secmon-lab/riskreg/pkg/repository/memory"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository backend names
const (
	BackendFile      = "file"
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendGCS       = "gcs"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend    string
	path       string
	bucket     string
	object     string
	projectID  string
	databaseID string
	prefix     string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (file, memory, firestore or gcs)",
			Category:    "Store",
			Value:       BackendFile,
			Sources:     cli.EnvVars("RISKREG_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "store-path",
			Usage:       "Path of the JSON store (file backend)",
			Category:    "Store",
			Value:       file.DefaultPath,
			Sources:     cli.EnvVars("RISKREG_STORE_PATH"),
			Destination: &r.path,
		},
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Cloud Storage bucket (required when using gcs backend)",
			Category:    "Store",
			Sources:     cli.EnvVars("RISKREG_GCS_BUCKET"),
			Destination: &r.bucket,
		},
		&cli.StringFlag{
			Name:        "gcs-object",
			Usage:       "Cloud Storage object name (gcs backend)",
			Category:    "Store",
			Value:       gcs.DefaultObject,
			Sources:     cli.EnvVars("RISKREG_GCS_OBJECT"),
			Destination: &r.object,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Store",
			Sources:     cli.EnvVars("RISKREG_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Store",
			Sources:     cli.EnvVars("RISKREG_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-prefix",
			Usage:       "Prefix prepended to Firestore collection names",
			Category:    "Store",
			Sources:     cli.EnvVars("RISKREG_FIRESTORE_PREFIX"),
			Destination: &r.prefix,
		},
	}
}

func (r Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", r.backend),
		slog.String("path", r.path),
		slog.String("gcs_bucket", r.bucket),
		slog.String("gcs_object", r.object),
		slog.String("firestore_project_id", r.projectID),
		slog.String("firestore_database_id", r.databaseID),
	)
}

// Merge fills every flag not set on the command line or environment
// from the configuration file.
func (r *Repository) Merge(cfg *FileConfig, isSet func(name string) bool) {
	if cfg == nil {
		return
	}
	merge := func(name string, dst *string, v string) {
		if v != "" && !isSet(name) {
			*dst = v
		}
	}
	s := cfg.Store
	merge("repository-backend", &r.backend, s.Backend)
	merge("store-path", &r.path, s.Path)
	merge("gcs-bucket", &r.bucket, s.GCSBucket)
	merge("gcs-object", &r.object, s.GCSObject)
	merge("firestore-project-id", &r.projectID, s.FirestoreProjectID)
	merge("firestore-database-id", &r.databaseID, s.FirestoreDatabaseID)
	merge("firestore-prefix", &r.prefix, s.FirestorePrefix)
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	logger := logging.From(ctx)

	switch r.backend {
	case "", BackendFile:
		logger.Debug("Using file repository", "path", r.path)
		return file.New(r.path), nil

	case BackendMemory:
		logger.Info("Using in-memory repository (nothing is persisted)")
		return memory.New(), nil

	case BackendFirestore:
		if r.projectID == "" {
			return nil, goerr.Wrap(ErrMissingParameter, "firestore-project-id is required when using firestore backend",
				goerr.V(BackendKey, r.backend), goerr.V(ParameterKey, "firestore-project-id"))
		}
		var opts []firestore.Option
		if r.prefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(r.prefix))
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logger.Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	case BackendGCS:
		if r.bucket == "" {
			return nil, goerr.Wrap(ErrMissingParameter, "gcs-bucket is required when using gcs backend",
				goerr.V(BackendKey, r.backend), goerr.V(ParameterKey, "gcs-bucket"))
		}
		repo, err := gcs.New(ctx, r.bucket, r.object)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize gcs repository")
		}
		logger.Info("Using Cloud Storage repository", "bucket", r.bucket, "object", r.object)
		return repo, nil

	default:
		return nil, goerr.Wrap(ErrUnknownBackend, "invalid repository backend", goerr.V(BackendKey, r.backend))
	}
}
