// Package fs stores documents as files, one document per file. The file
// extension selects the serializer.
package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/strata/pkg/core"
)

// Repository implements core.Repository on the local filesystem.
type Repository struct {
	Path        string
	config      Config
	serializers map[string]Serializer
	logger      *slog.Logger
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path       string
	MustExist  bool
	DefaultExt string // used for IDs without extension; defaults to ".md"
	Logger     *slog.Logger
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.DefaultExt == "" {
		config.DefaultExt = ".md"
	}
	if !strings.HasPrefix(config.DefaultExt, ".") {
		config.DefaultExt = "." + config.DefaultExt
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		Path:        config.Path,
		config:      config,
		serializers: DefaultSerializers(),
		logger:      logger.With("component", "fs"),
	}
}

// Initialize creates the root directory, or checks it exists when MustExist is set.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("path is not a directory: %s", r.Path)
		}
		return nil
	}

	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// filename maps an ID to its file path relative to the root. IDs without a
// known extension get the default one.
func (r *Repository) filename(id string) (string, Serializer, error) {
	if id == "" {
		return "", nil, core.ErrEmptyID
	}
	if !filepath.IsLocal(filepath.FromSlash(id)) {
		return "", nil, fmt.Errorf("invalid document ID %q: escapes repository root", id)
	}

	name := id
	ext := filepath.Ext(id)
	if _, known := r.serializers[ext]; !known {
		ext = r.config.DefaultExt
		name = id + ext
	}

	s, ok := r.serializers[ext]
	if !ok {
		return "", nil, fmt.Errorf("no serializer for extension %q", ext)
	}
	return name, s, nil
}

// idFor is the inverse of filename.
func (r *Repository) idFor(rel string) string {
	if strings.HasSuffix(rel, r.config.DefaultExt) {
		return strings.TrimSuffix(rel, r.config.DefaultExt)
	}
	return rel
}

// Save writes the document atomically, creating parent directories as needed.
func (r *Repository) Save(ctx context.Context, doc core.Document) error {
	name, s, err := r.filename(doc.ID)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(r.Path, name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	data, err := s.Serialize(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document %s: %w", doc.ID, err)
	}
	if err := writeFileAtomic(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	r.logger.Debug("saved document", "id", doc.ID, "file", name)
	return nil
}

// Get reads and parses the document stored under id.
func (r *Repository) Get(ctx context.Context, id string) (core.Document, error) {
	name, s, err := r.filename(id)
	if err != nil {
		return core.Document{}, err
	}

	data, err := os.ReadFile(filepath.Join(r.Path, name))
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return core.Document{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
		}
		return core.Document{}, err
	}

	doc, err := s.Parse(data)
	if err != nil {
		return core.Document{}, fmt.Errorf("failed to parse document %s: %w", id, err)
	}
	doc.ID = id
	return doc, nil
}

// List returns every document in the repository.
func (r *Repository) List(ctx context.Context) ([]core.Document, error) {
	return r.ListMatching(ctx, "**")
}

// ListMatching returns the documents whose ID matches the doublestar glob
// pattern (e.g. "users/*" or "**/draft-*"). Hidden directories and files
// that fail to parse are skipped.
func (r *Repository) ListMatching(ctx context.Context, pattern string) ([]core.Document, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	var ids []string
	err := filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != r.Path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), tempPrefix) {
			return nil
		}
		if _, ok := r.serializers[filepath.Ext(d.Name())]; !ok {
			return nil
		}

		rel, err := filepath.Rel(r.Path, path)
		if err != nil {
			return err
		}
		id := r.idFor(filepath.ToSlash(rel))
		if doublestar.MatchUnvalidated(pattern, id) {
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(ids)
	docs := make([]core.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := r.Get(ctx, id)
		if err != nil {
			r.logger.Warn("skipping unreadable document", "id", id, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Delete removes the document stored under id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	name, _, err := r.filename(id)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(r.Path, name)); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return fmt.Errorf("%w: %s", core.ErrNotFound, id)
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}

	r.logger.Debug("deleted document", "id", id)
	return nil
}

var _ core.Repository = (*Repository)(nil)
