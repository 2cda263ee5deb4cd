package lookup

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/owc/owc/internal/domain/claims"
)

// Service serves the reference dictionaries. Both tables are small and
// read-only, so they are loaded once and held in memory; Preload runs the two
// reads concurrently since neither depends on the other.
type Service struct {
	repo   Repository
	logger zerolog.Logger

	mu        sync.RWMutex
	provinces []Province
	insurers  map[string]string
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Preload fetches both dictionaries. Safe to call again to refresh.
func (s *Service) Preload(ctx context.Context) error {
	var wg sync.WaitGroup
	var provinces []Province
	var insurers []Insurer
	var provErr, insErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		provinces, provErr = s.repo.ListProvinces(ctx)
	}()
	go func() {
		defer wg.Done()
		insurers, insErr = s.repo.ListInsurers(ctx)
	}()
	wg.Wait()

	if provErr != nil {
		return provErr
	}
	if insErr != nil {
		return insErr
	}

	byCode := make(map[string]string, len(insurers))
	for _, ins := range insurers {
		byCode[NormalizeCode(ins.Code)] = ins.Name
	}

	s.mu.Lock()
	s.provinces = provinces
	s.insurers = byCode
	s.mu.Unlock()

	s.logger.Info().
		Int("provinces", len(provinces)).
		Int("insurers", len(insurers)).
		Msg("lookup dictionaries loaded")
	return nil
}

// NormalizeCode maps a provider code to its canonical lookup key. Source
// tables disagree on case and padding, so every comparison goes through this.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Provinces returns the cached province list, loading on first use.
func (s *Service) Provinces(ctx context.Context) ([]Province, error) {
	s.mu.RLock()
	cached := s.provinces
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	if err := s.Preload(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provinces, nil
}

// Insurers returns the cached provider map keyed by normalized code.
func (s *Service) Insurers(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	cached := s.insurers
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	if err := s.Preload(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.insurers, nil
}

// InsurerName resolves a normalized provider code to its display name.
// Unknown codes return claims.ErrNotFound.
func (s *Service) InsurerName(ctx context.Context, code string) (string, error) {
	insurers, err := s.Insurers(ctx)
	if err != nil {
		return "", err
	}
	name, ok := insurers[NormalizeCode(code)]
	if !ok {
		return "", claims.ErrNotFound
	}
	return name, nil
}
