package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read when present and no --config is given
const DefaultConfigPath = ".riskreg.toml"

// FileConfig represents the optional configuration file
type FileConfig struct {
	Store  StoreSection  `toml:"store" yaml:"store"`
	Export ExportSection `toml:"export" yaml:"export"`
	Notify NotifySection `toml:"notify" yaml:"notify"`
}

// StoreSection configures where the risk register is persisted
type StoreSection struct {
	Backend             string `toml:"backend" yaml:"backend"`
	Path                string `toml:"path" yaml:"path"`
	GCSBucket           string `toml:"gcs_bucket" yaml:"gcs_bucket"`
	GCSObject           string `toml:"gcs_object" yaml:"gcs_object"`
	FirestoreProjectID  string `toml:"firestore_project_id" yaml:"firestore_project_id"`
	FirestoreDatabaseID string `toml:"firestore_database_id" yaml:"firestore_database_id"`
	FirestorePrefix     string `toml:"firestore_prefix" yaml:"firestore_prefix"`
}

// ExportSection configures CSV export
type ExportSection struct {
	Path string `toml:"path" yaml:"path"`
}

// NotifySection configures Slack notification of new risks
type NotifySection struct {
	SlackWebhookURL string `toml:"slack_webhook_url" yaml:"slack_webhook_url" masq:"secret"`
	Level           string `toml:"level" yaml:"level"`
}

// LoadFile reads a configuration file. TOML is assumed unless the
// extension is .yaml or .yml.
func LoadFile(path string) (*FileConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "failed to read config file", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var cfg FileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml", "":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
				goerr.V(ConfigPathKey, path), goerr.V("cause", err.Error()))
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse YAML config",
				goerr.V(ConfigPathKey, path), goerr.V("cause", err.Error()))
		}
	default:
		return nil, goerr.Wrap(ErrUnknownFormat, "unsupported config file extension",
			goerr.V(ConfigPathKey, path), goerr.V("extension", ext))
	}

	return &cfg, nil
}

// App holds the --config flag and the file it resolves to
type App struct {
	path string
	file *FileConfig
}

// Flags returns CLI flags for the configuration file
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to configuration file (TOML or YAML). Defaults to " + DefaultConfigPath + " when present",
			Sources:     cli.EnvVars("RISKREG_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Load reads the configured file. An explicitly given path must exist;
// the default path is skipped silently when absent.
func (a *App) Load() error {
	path := a.path
	if path == "" {
		if _, err := os.Stat(DefaultConfigPath); err != nil {
			a.file = &FileConfig{}
			return nil
		}
		path = DefaultConfigPath
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return err
	}
	a.path = path
	a.file = cfg
	return nil
}

// File returns the loaded configuration, or an empty one before Load
func (a *App) File() *FileConfig {
	if a.file == nil {
		return &FileConfig{}
	}
	return a.file
}

// Path returns the resolved configuration file path, empty if none was read
func (a *App) Path() string {
	if a.file == nil {
		return ""
	}
	return a.path
}
