package snapshot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/grid/service/registry"
	"github.com/viant/grid/tracing"
)

// Store persists snapshot blobs by URL through the abstract file storage, so
// any scheme afs supports (file, mem, s3, gs, ...) can hold the grid state.
type Store struct {
	fs afs.Service
}

// NewStore creates a snapshot store.
func NewStore() *Store {
	return &Store{fs: afs.New()}
}

// Save encodes the registry and uploads the blob to the supplied URL.
func (s *Store) Save(ctx context.Context, URL string, reg *registry.Service) error {
	if URL == "" {
		return fmt.Errorf("snapshot: URL cannot be empty")
	}
	ctx, span := tracing.StartSpan(ctx, "snapshot.save", "INTERNAL")
	data, err := Encode(reg)
	if err == nil {
		if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
			err = fmt.Errorf("snapshot: failed to save to %s: %w", URL, err)
		}
	}
	tracing.EndSpan(span, err)
	return err
}

// Load downloads the blob at the supplied URL and reconstructs the registry.
func (s *Store) Load(ctx context.Context, URL string) (*registry.Service, error) {
	if URL == "" {
		return nil, fmt.Errorf("snapshot: URL cannot be empty")
	}
	ctx, span := tracing.StartSpan(ctx, "snapshot.load", "INTERNAL")
	reg, err := s.load(ctx, URL)
	tracing.EndSpan(span, err)
	return reg, err
}

func (s *Store) load(ctx context.Context, URL string) (*registry.Service, error) {
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("snapshot: failed to check %s: %w", URL, err)
	}
	if !exists {
		return nil, fmt.Errorf("snapshot: not found: %s", URL)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("snapshot: failed to read %s: %w", URL, err)
	}
	return Decode(data)
}
