package docstore

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DefaultMaxSize caps uploads at 5 MiB unless configured otherwise.
const DefaultMaxSize = 5 * 1024 * 1024

var (
	// ErrUnsupportedType rejects anything outside the JPG/PNG/PDF whitelist.
	ErrUnsupportedType = errors.New("format file tidak didukung, gunakan JPG, PNG, atau PDF")
	// ErrTooLarge rejects files over the configured size cap.
	ErrTooLarge = errors.New("ukuran file melebihi batas maksimal")
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
}

// Store writes uploaded document files under a base directory, one
// subdirectory per record kind ("claims", "verifications"). Stored names
// are random UUIDs so client names never reach the filesystem.
type Store struct {
	Base    string
	MaxSize int64
}

func New(base string, maxSize int64) *Store {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Store{Base: base, MaxSize: maxSize}
}

// Stored describes a persisted file. Path is relative to the store base and
// is what goes into the database.
type Stored struct {
	FileName string // original client-supplied name
	Path     string
	Size     int64
	MimeType string
}

// Check validates size and MIME type without writing anything. Lifecycle
// operations call it during their validation phase so a bad file aborts
// before any row exists.
func (s *Store) Check(fh *multipart.FileHeader) error {
	if fh.Size > s.MaxSize {
		return ErrTooLarge
	}
	if !allowedMimeTypes[fh.Header.Get("Content-Type")] {
		return ErrUnsupportedType
	}
	return nil
}

// Save copies the upload to <base>/<kind>/<uuid><ext> and returns its metadata.
func (s *Store) Save(fh *multipart.FileHeader, kind string) (*Stored, error) {
	if err := s.Check(fh); err != nil {
		return nil, err
	}
	dir := filepath.Join(s.Base, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	name := uuid.New().String() + filepath.Ext(fh.Filename)
	dst := filepath.Join(dir, name)

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	out, err := os.Create(dst)
	if err != nil {
		return nil, err
	}
	defer out.Close()
	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return nil, err
	}

	return &Stored{
		FileName: fh.Filename,
		Path:     filepath.ToSlash(filepath.Join(kind, name)),
		Size:     fh.Size,
		MimeType: fh.Header.Get("Content-Type"),
	}, nil
}

// Abs resolves a stored relative path to its on-disk location.
func (s *Store) Abs(relPath string) string {
	return filepath.Join(s.Base, filepath.FromSlash(relPath))
}

// Exists reports whether the backing file is still on disk.
func (s *Store) Exists(relPath string) bool {
	_, err := os.Stat(s.Abs(relPath))
	return err == nil
}

// Remove deletes the backing file. A file that is already gone is not an
// error; record deletion must not roll back because of the filesystem.
func (s *Store) Remove(relPath string) error {
	err := os.Remove(s.Abs(relPath))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
