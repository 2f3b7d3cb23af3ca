package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/fmsdesk/internal/filex"
)

const fallbackName = "document"

// LocalSink writes files into a directory. Existing files are never
// overwritten; a numeric suffix is added instead.
type LocalSink struct {
	dir string
}

func NewLocalSink(dir string) (*LocalSink, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &LocalSink{dir: abs}, nil
}

func (s *LocalSink) Dir() string { return s.dir }

// Put returns the absolute path of the written file.
func (s *LocalSink) Put(ctx context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".part-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	target, err := s.freePath(filex.SafeName(name, fallbackName))
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("move %s: %w", name, err)
	}
	return target, nil
}

func (s *LocalSink) freePath(name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; i < 1000; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		p := filepath.Join(s.dir, candidate)
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			return p, nil
		} else if err != nil {
			return "", fmt.Errorf("stat %s: %w", p, err)
		}
	}
	return "", fmt.Errorf("no free file name for %s in %s", name, s.dir)
}

// PreviewSink is a LocalSink in a fresh temporary directory that Close
// removes with everything written to it.
type PreviewSink struct {
	*LocalSink
}

func NewPreviewSink() (*PreviewSink, error) {
	dir, err := os.MkdirTemp("", "fmsdesk-preview-")
	if err != nil {
		return nil, fmt.Errorf("create preview dir: %w", err)
	}
	return &PreviewSink{LocalSink: &LocalSink{dir: dir}}, nil
}

func (p *PreviewSink) Close() error {
	return os.RemoveAll(p.dir)
}
