package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/mailgallery/contextio"
)

const (
	defaultLimit       = 100
	defaultConcurrency = 4
)

// ErrInvalidFileID is returned for files whose identifier cannot name a local file
var ErrInvalidFileID = errors.New("invalid file id")

// Service lists and downloads the pictures attached to a mailbox
type Service struct {
	api         contextio.FileAPI
	match       func(File) bool
	limit       int
	concurrency int
	logger      zerolog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithFilter restricts listings to files accepted by match
func WithFilter(match func(File) bool) Option {
	return func(s *Service) {
		if match != nil {
			s.match = match
		}
	}
}

// WithLimit sets the number of files requested from allfiles
func WithLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithConcurrency bounds the number of parallel downloads
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewService creates a gallery service on top of a Context.IO client
func NewService(api contextio.FileAPI, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		api:         api,
		match:       File.IsImage,
		limit:       defaultLimit,
		concurrency: defaultConcurrency,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListPictures returns the recent attachments of account accepted by the filter
func (s *Service) ListPictures(ctx context.Context, account string) ([]File, error) {
	params := contextio.Params{{Key: string(contextio.KeyLimit), Value: s.limit}}

	resp, err := s.api.AllFiles(ctx, account, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var files []File
	if err := resp.DecodeData(&files); err != nil {
		return nil, fmt.Errorf("failed to decode files: %w", err)
	}

	pictures := make([]File, 0, len(files))
	for _, f := range files {
		if s.match(f) {
			pictures = append(pictures, f)
		}
	}

	s.logger.Debug().
		Str("account", account).
		Int("files", len(files)).
		Int("pictures", len(pictures)).
		Msg("Listed attachments")

	return pictures, nil
}

// Paginate returns the zero-based page of files. Pages past the end are
// empty and negative pages are treated as the first one.
func Paginate(files []File, page, pageSize int) []File {
	if pageSize <= 0 {
		return files
	}
	if page < 0 {
		page = 0
	}
	start := page * pageSize
	if start >= len(files) {
		return []File{}
	}
	end := min(start+pageSize, len(files))
	return files[start:end]
}

// PageCount returns the number of pages needed for n files
func PageCount(n, pageSize int) int {
	if pageSize <= 0 || n == 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// LocalPath returns where Download stores file inside dir
func LocalPath(dir string, file File) (string, error) {
	id := strings.TrimSpace(file.ID)
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileID, file.ID)
	}
	return filepath.Join(dir, id+file.Ext()), nil
}

// Download streams one attachment into dir and returns the written path.
// A failed download leaves no file behind.
func (s *Service) Download(ctx context.Context, account string, file File, dir string) (string, error) {
	path, err := LocalPath(dir, file)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	counter := &countingWriter{w: out}
	params := contextio.Params{{Key: string(contextio.KeyFileID), Value: file.ID}}
	dlErr := s.api.DownloadFile(ctx, account, params, counter)
	closeErr := out.Close()

	if dlErr == nil && closeErr != nil {
		dlErr = fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	if dlErr != nil {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			s.logger.Warn().Err(rmErr).Str("path", path).Msg("Failed to remove partial download")
		}
		return "", fmt.Errorf("failed to download %s: %w", file.ID, dlErr)
	}

	s.logger.Info().
		Str("file_id", file.ID).
		Str("name", file.Name).
		Str("size", humanize.Bytes(uint64(counter.n))).
		Str("path", path).
		Msg("Downloaded attachment")

	return path, nil
}

// DownloadAll downloads files concurrently and returns their local paths in
// input order. The first failure cancels the remaining downloads.
func (s *Service) DownloadAll(ctx context.Context, account string, files []File, dir string) ([]string, error) {
	paths := make([]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, file := range files {
		g.Go(func() error {
			path, err := s.Download(ctx, account, file, dir)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
