package safe_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskreg/pkg/utils/safe"
)

type failingCloser struct{ closed bool }

func (c *failingCloser) Close() error {
	c.closed = true
	return errors.New("boom")
}

func TestClose(t *testing.T) {
	safe.Close(context.Background(), nil)

	c := &failingCloser{}
	safe.Close(context.Background(), c)
	gt.Bool(t, c.closed).True()
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	err := safe.WriteFile(path, 0o644, func(w io.Writer) error {
		_, err := w.Write([]byte("first"))
		return err
	})
	gt.NoError(t, err).Required()

	data, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	gt.String(t, string(data)).Equal("first")
}

func TestWriteFile_FailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	gt.NoError(t, os.WriteFile(path, []byte("original"), 0o644)).Required()

	writeErr := errors.New("disk full")
	err := safe.WriteFile(path, 0o644, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return writeErr
	})
	gt.Error(t, err).Is(writeErr)

	data, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	gt.String(t, string(data)).Equal("original")

	entries, err := os.ReadDir(dir)
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(1)
}
