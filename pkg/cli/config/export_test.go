package config

import "io"

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, path string) *Repository {
	return &Repository{backend: backend, path: path}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(webhookURL, level string) *Slack {
	return &Slack{webhookURL: webhookURL, level: level}
}

// NewLoggerForTest creates a Logger config writing to w for testing purposes
func NewLoggerForTest(level, format string, w io.Writer) *Logger {
	return &Logger{level: level, format: format, output: "stderr", stderr: w}
}

// NewAppForTest creates an App config reading path for testing purposes
func NewAppForTest(path string) *App {
	return &App{path: path}
}

// RepositoryParams exposes the resolved repository parameters
func (r *Repository) RepositoryParams() map[string]string {
	return map[string]string{
		"backend":    r.backend,
		"path":       r.path,
		"bucket":     r.bucket,
		"object":     r.object,
		"projectID":  r.projectID,
		"databaseID": r.databaseID,
		"prefix":     r.prefix,
	}
}

// SlackLevel exposes the resolved notify level
func (x *Slack) SlackLevel() string {
	return x.level
}
