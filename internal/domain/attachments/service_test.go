package attachments

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/owc/owc/internal/domain/claims"
	"github.com/owc/owc/internal/platform/blobstore"
)

// -- Mock Repository --

type rowKey struct {
	irn      int64
	category Category
}

type mockRepo struct {
	rows    map[rowKey]*Attachment
	inserts int
	updates int
}

func newMockRepo() *mockRepo {
	return &mockRepo{rows: make(map[rowKey]*Attachment)}
}

func (m *mockRepo) RowExists(_ context.Context, irn int64, category Category) (bool, error) {
	_, ok := m.rows[rowKey{irn, category}]
	return ok, nil
}

func (m *mockRepo) InsertRow(_ context.Context, a *Attachment) error {
	m.inserts++
	m.rows[rowKey{a.IRN, a.AttachmentType}] = a
	return nil
}

func (m *mockRepo) UpdateRow(_ context.Context, a *Attachment) error {
	m.updates++
	m.rows[rowKey{a.IRN, a.AttachmentType}] = a
	return nil
}

func (m *mockRepo) ListByClaim(_ context.Context, irn int64) ([]*Attachment, error) {
	var items []*Attachment
	for _, a := range m.rows {
		if a.IRN == irn {
			items = append(items, a)
		}
	}
	return items, nil
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}
}

func newTestService(repo *mockRepo) (*Service, *blobstore.MemoryStore) {
	store := blobstore.NewMemoryStore()
	svc := NewService(store, repo, zerolog.Nop()).WithClock(fixedClock())
	return svc, store
}

// -- Tests --

func TestPersist_InsertsFirstRow(t *testing.T) {
	repo := newMockRepo()
	svc, store := newTestService(repo)

	row, err := svc.Persist(context.Background(), 1001, Upload{
		Category:    CatInterimMedicalReport,
		FileName:    "report.pdf",
		ContentType: "application/pdf",
		Content:     []byte("pdf"),
	})
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if repo.inserts != 1 || repo.updates != 0 {
		t.Errorf("expected 1 insert / 0 updates, got %d / %d", repo.inserts, repo.updates)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 stored object, got %d", store.Len())
	}
	if !strings.HasPrefix(row.FilePath, "attachments/interim-medical/1001_") {
		t.Errorf("unexpected storage path %s", row.FilePath)
	}
	if !strings.HasSuffix(row.FilePath, "_report.pdf") {
		t.Errorf("expected timestamped filename, got %s", row.FilePath)
	}
}

func TestPersist_ReplacementNeverDuplicatesRow(t *testing.T) {
	repo := newMockRepo()
	svc, store := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Persist(ctx, 1001, Upload{Category: CatDeathCertificate, FileName: "cert_v1.pdf", Content: []byte("v1")})
	if err != nil {
		t.Fatalf("first Persist: %v", err)
	}

	svc.WithClock(func() time.Time { return time.Date(2026, 8, 30, 13, 0, 0, 0, time.UTC) })
	second, err := svc.Persist(ctx, 1001, Upload{Category: CatDeathCertificate, FileName: "cert_v2.pdf", Content: []byte("v2")})
	if err != nil {
		t.Fatalf("second Persist: %v", err)
	}

	if len(repo.rows) != 1 {
		t.Fatalf("expected exactly one row per (claim, category), got %d", len(repo.rows))
	}
	current := repo.rows[rowKey{1001, CatDeathCertificate}]
	if current.FilePath != second.FilePath {
		t.Errorf("expected row to point at latest upload, got %s", current.FilePath)
	}
	if first.FilePath == second.FilePath {
		t.Error("storage keys must differ so history is not clobbered")
	}
	// Both objects remain in storage; only the table row moved.
	if store.Len() != 2 {
		t.Errorf("expected 2 stored objects, got %d", store.Len())
	}
	if repo.inserts != 1 || repo.updates != 1 {
		t.Errorf("expected 1 insert / 1 update, got %d / %d", repo.inserts, repo.updates)
	}
}

func TestUpload_UnknownCategory(t *testing.T) {
	repo := newMockRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Upload(context.Background(), 1001, Upload{Category: "Selfie", FileName: "x.png"})
	if !claims.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpload_ErrorNamesCategory(t *testing.T) {
	repo := newMockRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Upload(context.Background(), 1001, Upload{Category: CatPayslip, FileName: ""})
	if err == nil {
		t.Fatal("expected error for missing file name")
	}

	// Storage failures must carry the category label for the error surface.
	failing := NewService(failingStore{}, repo, zerolog.Nop()).WithClock(fixedClock())
	_, err = failing.Upload(context.Background(), 1001, Upload{Category: CatPayslip, FileName: "pay.pdf"})
	if err == nil || !strings.Contains(err.Error(), string(CatPayslip)) {
		t.Errorf("expected category in error, got %v", err)
	}
}

func TestListWithURLs(t *testing.T) {
	repo := newMockRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Persist(ctx, 1001, Upload{Category: CatWitnessStatement, FileName: "w.pdf", Content: []byte("x")}); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	items, err := svc.ListWithURLs(ctx, 1001)
	if err != nil {
		t.Fatalf("ListWithURLs: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(items))
	}
	if !strings.HasPrefix(items[0].URL, "memory://") {
		t.Errorf("expected resolved url, got %q", items[0].URL)
	}
}

func TestCategoriesFor(t *testing.T) {
	for _, c := range CategoriesFor(claims.Form4) {
		if !c.Known() {
			t.Errorf("death category %q not in folder map", c)
		}
	}
	for _, c := range CategoriesFor(claims.Form3) {
		if !c.Known() {
			t.Errorf("injury category %q not in folder map", c)
		}
	}
}

// failingStore always fails Put.
type failingStore struct{}

func (failingStore) Put(context.Context, string, string, io.Reader) error {
	return blobstore.ErrFileTooLarge
}

func (failingStore) Get(context.Context, string) (io.ReadCloser, error) {
	return nil, blobstore.ErrObjectNotFound
}

func (failingStore) ResolveURL(context.Context, string) (string, error) {
	return "", blobstore.ErrObjectNotFound
}
