package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shortlyhq/shortly/internal/processing/billing"
)

type fakePackagesRepo struct {
	mu   sync.Mutex
	byID map[string]*billing.Package
}

func newFakePackagesRepo() *fakePackagesRepo {
	return &fakePackagesRepo{byID: make(map[string]*billing.Package)}
}

func (r *fakePackagesRepo) Insert(_ context.Context, pkg *billing.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Name, pkg.Name) {
			return billing.ErrPackageExists
		}
	}
	cp := *pkg
	r.byID[pkg.ID] = &cp
	return nil
}

func (r *fakePackagesRepo) List(_ context.Context) ([]*billing.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*billing.Package, 0, len(r.byID))
	for _, pkg := range r.byID {
		out = append(out, pkg)
	}
	return out, nil
}

func (r *fakePackagesRepo) FindByID(_ context.Context, id string) (*billing.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pkg, ok := r.byID[id]
	if !ok {
		return nil, billing.ErrPackageNotFound
	}
	cp := *pkg
	return &cp, nil
}

func (r *fakePackagesRepo) FindByName(_ context.Context, name string) (*billing.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pkg := range r.byID {
		if strings.EqualFold(pkg.Name, name) {
			return pkg, nil
		}
	}
	return nil, billing.ErrPackageNotFound
}

func (r *fakePackagesRepo) Update(_ context.Context, pkg *billing.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[pkg.ID]; !ok {
		return billing.ErrPackageNotFound
	}
	cp := *pkg
	r.byID[pkg.ID] = &cp
	return nil
}

func newPackagesFixture() (*PackagesHandler, *fakePackagesRepo) {
	repo := newFakePackagesRepo()
	return NewPackagesHandler(billing.NewService(repo)), repo
}

func TestPackagesHandlerCreate_HappyPath(t *testing.T) {
	handler, _ := newPackagesFixture()

	rec := postJSON(handler.Create, "/api/packages", `{"name":"pro","maxUrls":100,"price":9.99}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	resp := decodeEnvelope(t, rec)
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data payload: %v", resp.Data)
	}
	if data["name"] != "pro" {
		t.Errorf("got name %v, want pro", data["name"])
	}
	if maxURLs, _ := data["maxUrls"].(float64); maxURLs != 100 {
		t.Errorf("got maxUrls %v, want 100", data["maxUrls"])
	}
}

func TestPackagesHandlerCreate_Invalid(t *testing.T) {
	handler, _ := newPackagesFixture()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"not json", `{broken`, http.StatusBadRequest},
		{"blank name", `{"name":" ","maxUrls":10}`, http.StatusBadRequest},
		{"zero maxUrls", `{"name":"pro","maxUrls":0}`, http.StatusBadRequest},
		{"negative price", `{"name":"pro","maxUrls":10,"price":-1}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(handler.Create, "/api/packages", tt.body)
			if rec.Code != tt.want {
				t.Errorf("got status %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestPackagesHandlerCreate_DuplicateName(t *testing.T) {
	handler, _ := newPackagesFixture()

	rec := postJSON(handler.Create, "/api/packages", `{"name":"pro","maxUrls":100}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("setup create failed with status %d", rec.Code)
	}

	rec = postJSON(handler.Create, "/api/packages", `{"name":"PRO","maxUrls":50}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPackagesHandlerList(t *testing.T) {
	handler, _ := newPackagesFixture()

	for _, body := range []string{
		`{"name":"free","maxUrls":5}`,
		`{"name":"pro","maxUrls":100,"price":9.99}`,
	} {
		if rec := postJSON(handler.Create, "/api/packages", body); rec.Code != http.StatusCreated {
			t.Fatalf("setup create failed with status %d", rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/packages", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeEnvelope(t, rec)
	data, ok := resp.Data.([]any)
	if !ok {
		t.Fatalf("unexpected data payload: %v", resp.Data)
	}
	if len(data) != 2 {
		t.Errorf("got %d packages, want 2", len(data))
	}
}

func TestPackagesHandlerUpdate_PartialPatch(t *testing.T) {
	handler, repo := newPackagesFixture()

	rec := postJSON(handler.Create, "/api/packages", `{"name":"pro","maxUrls":100,"price":9.99}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("setup create failed with status %d", rec.Code)
	}
	pkg, err := repo.FindByName(context.Background(), "pro")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/packages/"+pkg.ID, strings.NewReader(`{"maxUrls":250}`))
	req.SetPathValue("id", pkg.ID)
	rec = httptest.NewRecorder()
	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	updated, err := repo.FindByID(context.Background(), pkg.ID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.MaxURLs != 250 {
		t.Errorf("got maxURLs %d, want 250", updated.MaxURLs)
	}
	if updated.Name != "pro" || updated.Price != 9.99 {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestPackagesHandlerUpdate_NotFound(t *testing.T) {
	handler, _ := newPackagesFixture()

	req := httptest.NewRequest(http.MethodPatch, "/api/packages/missing", strings.NewReader(`{"maxUrls":250}`))
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}
