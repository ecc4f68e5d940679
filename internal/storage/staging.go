// Package storage stages uploaded source documents on local disk and
// optionally archives them to S3-compatible object storage.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrFileTooLarge is returned when an upload exceeds the configured size.
var ErrFileTooLarge = errors.New("file too large")

// Stager writes uploads to a scratch directory under UUID names.
type Stager struct {
	dir      string
	maxBytes int64
}

func NewStager(dir string, maxBytes int64) *Stager {
	return &Stager{dir: dir, maxBytes: maxBytes}
}

// StagedFile is an upload sitting in the scratch directory.
// Callers must Remove it once done.
type StagedFile struct {
	ID           string
	Path         string
	OriginalName string
	Ext          string
	Size         int64
}

// Stage copies an uploaded file to disk.
func (s *Stager) Stage(file io.Reader, header *multipart.FileHeader) (*StagedFile, error) {
	if s.maxBytes > 0 && header.Size > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.maxBytes)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	id := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	dest := filepath.Join(s.dir, id+ext)

	dst, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	src := file
	if s.maxBytes > 0 {
		src = io.LimitReader(file, s.maxBytes+1)
	}
	n, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dest)
		return nil, fmt.Errorf("write file: %w", err)
	}
	if s.maxBytes > 0 && n > s.maxBytes {
		os.Remove(dest)
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, s.maxBytes)
	}

	return &StagedFile{
		ID:           id,
		Path:         dest,
		OriginalName: filepath.Base(header.Filename),
		Ext:          ext,
		Size:         n,
	}, nil
}

// Read returns the staged bytes.
func (f *StagedFile) Read() ([]byte, error) {
	return os.ReadFile(f.Path)
}

// Remove deletes the staged file. Removing a missing file is not an error.
func (f *StagedFile) Remove() error {
	if f == nil {
		return nil
	}
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SweepStale removes staged files last modified before cutoff. Uploads are
// removed as soon as they are processed, so anything old was left behind by
// a crash.
func (s *Stager) SweepStale(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read upload dir: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("remove %s: %w", e.Name(), err)
		}
		removed++
	}
	return removed, nil
}
