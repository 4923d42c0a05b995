package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pageza/recipe-catalog/backend/internal/metrics"
)

// ImageURLPrefix is the URL path under which stored images are served
const ImageURLPrefix = "/uploads/"

// ErrImageNotFound is returned by ImageStore.Open for unknown names
var ErrImageNotFound = errors.New("image not found")

// ImagePath returns the served path for a stored file name, escaped so that
// names containing '#', '%' or spaces can be fetched as written.
func ImagePath(storedName string) string {
	return ImageURLPrefix + url.PathEscape(storedName)
}

// StoredName builds "<epoch-ms>-<original name>". Two uploads of the same
// name within one millisecond map to the same stored name.
func StoredName(now time.Time, originalName string) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), filepath.Base(originalName))
}

// validName rejects anything that could escape the upload directory
func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && name == filepath.Base(name)
}

// LocalImageStore writes uploads into a directory on local disk
type LocalImageStore struct {
	dir string
	now func() time.Time
}

// NewLocalImageStore creates the upload directory if it does not exist
func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalImageStore{dir: dir, now: time.Now}, nil
}

// Dir returns the upload directory
func (s *LocalImageStore) Dir() string {
	return s.dir
}

func (s *LocalImageStore) Backend() string {
	return "local"
}

// Save writes r to the upload directory. A failed write leaves whatever was
// written on disk.
func (s *LocalImageStore) Save(ctx context.Context, originalName string, r io.Reader, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := StoredName(s.now(), originalName)
	if !validName(name) {
		return "", fmt.Errorf("invalid file name %q", originalName)
	}

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	metrics.RecordImageStored(s.Backend(), written)
	return name, nil
}

// Open returns the stored file. The returned value is an *os.File and
// therefore seekable.
func (s *LocalImageStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, ErrImageNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	if info, err := f.Stat(); err == nil && info.IsDir() {
		_ = f.Close()
		return nil, ErrImageNotFound
	}
	return f, nil
}
