package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestMemoryStore_PutAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	err := s.Put(ctx, "attachments/IMR/1001_report.pdf", "application/pdf", strings.NewReader("pdf-bytes"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	rc, err := s.Get(ctx, "attachments/IMR/1001_report.pdf")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()

	data, _ := io.ReadAll(rc)
	if string(data) != "pdf-bytes" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestMemoryStore_PutOverwrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Put(ctx, "a/b.pdf", "application/pdf", strings.NewReader("old"))
	_ = s.Put(ctx, "a/b.pdf", "application/pdf", strings.NewReader("new"))

	rc, err := s.Get(ctx, "a/b.pdf")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	data, _ := io.ReadAll(rc)
	if string(data) != "new" {
		t.Errorf("expected overwrite, got %q", data)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 object, got %d", s.Len())
	}
}

func TestMemoryStore_MissingPath(t *testing.T) {
	s := NewMemoryStore()
	err := s.Put(context.Background(), "", "text/plain", strings.NewReader("x"))
	if !errors.Is(err, ErrMissingPath) {
		t.Errorf("expected ErrMissingPath, got %v", err)
	}
}

func TestMemoryStore_TooLarge(t *testing.T) {
	s := NewMemoryStore()
	big := bytes.NewReader(make([]byte, MaxFileSize+1))
	err := s.Put(context.Background(), "a/big.bin", "application/pdf", big)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestMemoryStore_GetNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestMemoryStore_ResolveURL(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Put(ctx, "a/b.pdf", "application/pdf", strings.NewReader("x"))

	url, err := s.ResolveURL(ctx, "a/b.pdf")
	if err != nil {
		t.Fatalf("ResolveURL: %v", err)
	}
	if url != "memory://a/b.pdf" {
		t.Errorf("unexpected url %s", url)
	}

	if _, err := s.ResolveURL(ctx, "missing"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestS3Store_PublicURL(t *testing.T) {
	s := &S3Store{bucket: "claims-docs", region: "ap-southeast-2", public: true}
	url, err := s.ResolveURL(context.Background(), "attachments/DC/1002_cert.pdf")
	if err != nil {
		t.Fatalf("ResolveURL: %v", err)
	}
	want := "https://claims-docs.s3.ap-southeast-2.amazonaws.com/attachments/DC/1002_cert.pdf"
	if url != want {
		t.Errorf("expected %s, got %s", want, url)
	}
}
