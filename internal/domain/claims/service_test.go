package claims

import (
	"context"
	"errors"
	"testing"
)

// -- Mock Repository --

type mockRepo struct {
	viewMapping     map[int64]int64 // claim_worker_view
	incidentMapping map[int64]int64 // form11_master fallback
	reviewCounts    map[Stage]map[int64]int
	summaries       map[int64]*ClaimSummary
	viewErr         error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		viewMapping:     make(map[int64]int64),
		incidentMapping: make(map[int64]int64),
		reviewCounts:    make(map[Stage]map[int64]int),
		summaries:       make(map[int64]*ClaimSummary),
	}
}

func (m *mockRepo) WorkerIDByIRN(_ context.Context, irn int64) (int64, error) {
	if m.viewErr != nil {
		return 0, m.viewErr
	}
	id, ok := m.viewMapping[irn]
	if !ok {
		return 0, ErrNotFound
	}
	return id, nil
}

func (m *mockRepo) WorkerIDFromIncidentMaster(_ context.Context, irn int64) (int64, error) {
	id, ok := m.incidentMapping[irn]
	if !ok {
		return 0, ErrNotFound
	}
	return id, nil
}

func (m *mockRepo) CountReviewRows(_ context.Context, irn int64, stage Stage) (int, error) {
	return m.reviewCounts[stage][irn], nil
}

func (m *mockRepo) GetSummary(_ context.Context, irn int64) (*ClaimSummary, error) {
	s, ok := m.summaries[irn]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *mockRepo) SearchByName(_ context.Context, q string, limit, offset int) ([]*ClaimSummary, int, error) {
	var items []*ClaimSummary
	for _, s := range m.summaries {
		items = append(items, s)
	}
	return items, len(items), nil
}

// -- Tests --

func TestResolve_TrustsHint(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	workerID, err := svc.Resolve(context.Background(), 1001, 55)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if workerID != 55 {
		t.Errorf("expected hint 55 trusted, got %d", workerID)
	}
}

func TestResolve_ViewLookup(t *testing.T) {
	repo := newMockRepo()
	repo.viewMapping[1001] = 42
	svc := NewService(repo)

	workerID, err := svc.Resolve(context.Background(), 1001, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if workerID != 42 {
		t.Errorf("expected 42 from view, got %d", workerID)
	}
}

func TestResolve_FallsBackToIncidentMaster(t *testing.T) {
	repo := newMockRepo()
	repo.incidentMapping[1001] = 77
	svc := NewService(repo)

	workerID, err := svc.Resolve(context.Background(), 1001, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if workerID != 77 {
		t.Errorf("expected 77 from incident master, got %d", workerID)
	}
}

func TestResolve_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.Resolve(context.Background(), 1001, 0)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolve_InvalidIRN(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.Resolve(context.Background(), 0, 0)
	if !IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestResolve_StoreErrorPropagates(t *testing.T) {
	repo := newMockRepo()
	repo.viewErr = errors.New("connection refused")
	svc := NewService(repo)

	_, err := svc.Resolve(context.Background(), 1001, 0)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected store error to propagate, got %v", err)
	}
}

func TestReviewRowExists(t *testing.T) {
	repo := newMockRepo()
	repo.reviewCounts[StagePrescreening] = map[int64]int{1001: 1}
	svc := NewService(repo)

	ok, err := svc.ReviewRowExists(context.Background(), 1001, StagePrescreening)
	if err != nil {
		t.Fatalf("ReviewRowExists: %v", err)
	}
	if !ok {
		t.Error("expected existing row to be reported")
	}

	ok, err = svc.ReviewRowExists(context.Background(), 2002, StagePrescreening)
	if err != nil {
		t.Fatalf("ReviewRowExists: %v", err)
	}
	if ok {
		t.Error("expected missing row to be reported")
	}
}

func TestIncidentType(t *testing.T) {
	if Form3.IncidentType() != "Injury" {
		t.Errorf("Form3 incident type: %s", Form3.IncidentType())
	}
	if Form4.IncidentType() != "Death" {
		t.Errorf("Form4 incident type: %s", Form4.IncidentType())
	}
}

func TestSearchByName_BlankRejected(t *testing.T) {
	svc := NewService(newMockRepo())
	_, _, err := svc.SearchByName(context.Background(), "   ", 20, 0)
	if !IsValidation(err) {
		t.Errorf("expected validation error for blank query, got %v", err)
	}
}
