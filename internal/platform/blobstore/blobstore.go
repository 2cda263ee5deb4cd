// Package blobstore provides supporting-document storage for the claims
// platform. It defines the ObjectStore interface, an in-memory implementation
// for testing and development, and an S3-backed implementation with presigned
// download URLs for private buckets.
package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrFileTooLarge   = errors.New("file exceeds maximum allowed size")
	ErrMissingPath    = errors.New("object path is required")
)

// MaxFileSize is the maximum allowed object size in bytes (50 MB).
const MaxFileSize = 50 * 1024 * 1024

// AllowedContentTypes lists MIME types accepted for supporting documents.
var AllowedContentTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"application/pdf": true,
	"text/plain":      true,
}

// ---------------------------------------------------------------------------
// ObjectStore interface
// ---------------------------------------------------------------------------

// ObjectStore is the object-storage capability consumed by the attachments
// layer: upload a blob to a path (overwrite allowed) and resolve a stored
// path to a fetchable URL, public or time-limited signed.
type ObjectStore interface {
	Put(ctx context.Context, path, contentType string, content io.Reader) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	ResolveURL(ctx context.Context, path string) (string, error)
}

// ---------------------------------------------------------------------------
// In-memory implementation
// ---------------------------------------------------------------------------

type storedObject struct {
	contentType string
	data        []byte
	storedAt    time.Time
}

// MemoryStore is a thread-safe in-memory ObjectStore for testing/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]*storedObject
}

// NewMemoryStore returns a ready-to-use MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]*storedObject)}
}

// Put validates and stores the object, overwriting any existing object at
// the same path.
func (s *MemoryStore) Put(_ context.Context, path, contentType string, content io.Reader) error {
	if path == "" {
		return ErrMissingPath
	}

	data, err := io.ReadAll(io.LimitReader(content, MaxFileSize+1))
	if err != nil {
		return fmt.Errorf("reading content: %w", err)
	}
	if int64(len(data)) > MaxFileSize {
		return ErrFileTooLarge
	}

	s.mu.Lock()
	s.objects[path] = &storedObject{
		contentType: contentType,
		data:        data,
		storedAt:    time.Now().UTC(),
	}
	s.mu.Unlock()
	return nil
}

// Get returns a reader over the stored object.
func (s *MemoryStore) Get(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.RLock()
	obj, ok := s.objects[path]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

// ResolveURL returns a synthetic URL for dev use.
func (s *MemoryStore) ResolveURL(_ context.Context, path string) (string, error) {
	s.mu.RLock()
	_, ok := s.objects[path]
	s.mu.RUnlock()

	if !ok {
		return "", ErrObjectNotFound
	}
	return "memory://" + path, nil
}

// Len reports the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
