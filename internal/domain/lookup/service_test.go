package lookup

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/owc/owc/internal/domain/claims"
)

type mockRepo struct {
	provinces []Province
	insurers  []Insurer
	calls     int32
	err       error
}

func (m *mockRepo) ListProvinces(context.Context) ([]Province, error) {
	atomic.AddInt32(&m.calls, 1)
	return m.provinces, m.err
}

func (m *mockRepo) ListInsurers(context.Context) ([]Insurer, error) {
	atomic.AddInt32(&m.calls, 1)
	return m.insurers, m.err
}

func TestInsurerName_NormalizesLookupKey(t *testing.T) {
	repo := &mockRepo{insurers: []Insurer{{Code: " pmi ", Name: "Pacific MMI"}}}
	svc := NewService(repo, zerolog.Nop())

	for _, code := range []string{"PMI", "pmi", "  Pmi "} {
		name, err := svc.InsurerName(context.Background(), code)
		if err != nil {
			t.Fatalf("InsurerName(%q): %v", code, err)
		}
		if name != "Pacific MMI" {
			t.Errorf("InsurerName(%q) = %q", code, name)
		}
	}
}

func TestInsurerName_UnknownCode(t *testing.T) {
	svc := NewService(&mockRepo{}, zerolog.Nop())
	svc.insurers = map[string]string{}

	_, err := svc.InsurerName(context.Background(), "NOPE")
	if !errors.Is(err, claims.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPreload_LoadsBothDictionariesOnce(t *testing.T) {
	repo := &mockRepo{
		provinces: []Province{{Code: "MPL", Name: "Morobe", Region: "Momase"}},
		insurers:  []Insurer{{Code: "PMI", Name: "Pacific MMI"}},
	}
	svc := NewService(repo, zerolog.Nop())

	if err := svc.Preload(context.Background()); err != nil {
		t.Fatalf("Preload: %v", err)
	}
	if got := atomic.LoadInt32(&repo.calls); got != 2 {
		t.Errorf("expected 2 repo reads, got %d", got)
	}

	// Subsequent reads come from the cache.
	if _, err := svc.Provinces(context.Background()); err != nil {
		t.Fatalf("Provinces: %v", err)
	}
	if _, err := svc.Insurers(context.Background()); err != nil {
		t.Fatalf("Insurers: %v", err)
	}
	if got := atomic.LoadInt32(&repo.calls); got != 2 {
		t.Errorf("cached reads must not hit the store again, got %d calls", got)
	}
}

func TestPreload_PropagatesError(t *testing.T) {
	repo := &mockRepo{err: errors.New("connection refused")}
	svc := NewService(repo, zerolog.Nop())

	if err := svc.Preload(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
