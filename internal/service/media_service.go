package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/models"
	"github.com/rs/zerolog"
)

// MediaURLPrefix is the public URL under which the media root is served
const MediaURLPrefix = "/static/media"

// mediaService is the concrete implementation of MediaService
type mediaService struct {
	root    string
	maxSize int64
	log     zerolog.Logger
}

func newMediaService(cfg config.MediaConfig, log zerolog.Logger) *mediaService {
	return &mediaService{
		root:    cfg.Root,
		maxSize: cfg.MaxUploadSize,
		log:     log.With().Str("service", "media").Logger(),
	}
}

// List returns the public URL of every file below the media root
func (s *mediaService) List(ctx context.Context, identity models.Identity) ([]string, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	urls := make([]string, 0)
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.Type().IsRegular() || isPartial(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		urls = append(urls, path.Join(MediaURLPrefix, filepath.ToSlash(rel)))
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: list media: %w", models.ErrStore, err)
	}

	sort.Strings(urls)
	return urls, nil
}

// isPartial reports whether name is an upload still being written
func isPartial(name string) bool {
	return strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".part")
}

// sanitizeFilename reduces a client supplied name to its base name
func sanitizeFilename(name string) (string, error) {
	base := filepath.Base(filepath.Clean("/" + filepath.FromSlash(name)))
	if base == "" || base == "." || base == string(filepath.Separator) || base == ".." {
		return "", fmt.Errorf("%w: invalid file name %q", models.ErrValidation, name)
	}
	return base, nil
}

// Upload writes one file into the directory of the given article and
// returns its public URL
func (s *mediaService) Upload(ctx context.Context, identity models.Identity, articleID int64, filename string, r io.Reader) (string, error) {
	if err := requireAdmin(identity); err != nil {
		return "", err
	}
	if articleID <= 0 {
		return "", fmt.Errorf("%w: invalid article id", models.ErrValidation)
	}
	name, err := sanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	dirName := strconv.FormatInt(articleID, 10)
	dir := filepath.Join(s.root, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create media dir: %w", models.ErrStore, err)
	}

	// The upload lands in a temp file and only replaces the target once complete
	tmp, err := os.CreateTemp(dir, "."+name+".*.part")
	if err != nil {
		return "", fmt.Errorf("%w: create media file: %w", models.ErrStore, err)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	src := r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}
	n, err := io.Copy(tmp, src)
	if err != nil {
		return "", fmt.Errorf("%w: write media file: %w", models.ErrStore, err)
	}
	if s.maxSize > 0 && n > s.maxSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", models.ErrValidation, s.maxSize)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: close media file: %w", models.ErrStore, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("%w: chmod media file: %w", models.ErrStore, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("%w: store media file: %w", models.ErrStore, err)
	}
	committed = true

	s.log.Info().Int64("article_id", articleID).Str("file", name).Int64("bytes", n).Msg("Media uploaded")
	return path.Join(MediaURLPrefix, dirName, name), nil
}
