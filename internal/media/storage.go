// Package media stores uploaded posters and pictures on local disk.
package media

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported image type")
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Storage writes uploads to <root>/<kind>/<YYYY>/<MM>/<DD>/<uuid><ext>.
// Stored values are paths relative to root, always with forward slashes.
type Storage struct {
	root    string
	maxSize int64
	now     func() time.Time
}

func NewStorage(root string, maxSize int64) *Storage {
	return &Storage{root: root, maxSize: maxSize, now: time.Now}
}

// Root is the directory served under /media.
func (s *Storage) Root() string {
	return s.root
}

// SaveUpload stores the file sent in form field and returns its relative
// path. It returns nil, nil when the request carries no such file.
func (s *Storage) SaveUpload(c *gin.Context, field, kind string) (*string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if fh.Size > s.maxSize {
		return nil, fmt.Errorf("%s: %w (%d > %d bytes)", field, ErrTooLarge, fh.Size, s.maxSize)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return nil, fmt.Errorf("%s: %w %q", field, ErrUnsupportedType, ext)
	}

	rel := s.relPath(kind, ext)
	if err := c.SaveUploadedFile(fh, filepath.Join(s.root, filepath.FromSlash(rel))); err != nil {
		return nil, fmt.Errorf("save %s: %w", field, err)
	}
	return &rel, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *Storage) Remove(rel *string) error {
	if rel == nil || *rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(*rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Storage) relPath(kind, ext string) string {
	now := s.now().UTC()
	return path.Join(
		kind,
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", int(now.Month())),
		fmt.Sprintf("%02d", now.Day()),
		uuid.New().String()+ext,
	)
}
