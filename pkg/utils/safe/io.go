package safe

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
)

// Close closes an io.Closer and logs any error.
// It handles nil closers gracefully.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

// WriteFile writes a file through write into a temporary sibling and renames it over path,
// so readers see either the old or the new content.
func WriteFile(path string, perm os.FileMode, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file", goerr.V("dir", dir))
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close temporary file", goerr.V("path", tmpPath))
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return goerr.Wrap(err, "failed to set file mode", goerr.V("path", tmpPath))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return goerr.Wrap(err, "failed to move file into place", goerr.V("path", path))
	}
	committed = true
	return nil
}
