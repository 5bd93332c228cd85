package routes

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/herathmmr/stash/internal/content"
	"github.com/herathmmr/stash/internal/httpserver/deps"
	"github.com/herathmmr/stash/internal/logger"
	"github.com/herathmmr/stash/internal/saved"
	"github.com/herathmmr/stash/internal/sources/categories"
	"github.com/herathmmr/stash/internal/store/memory"
)

type fakeSource struct{}

func (fakeSource) Article(_ context.Context, id string) (*content.Article, error) {
	if id != "n1" {
		return nil, fmt.Errorf("article %s: %w", id, content.ErrNotFound)
	}
	return &content.Article{
		ID:       "n1",
		Title:    "Harbor Expansion Approved",
		Author:   "K. Perera",
		Category: "Business",
	}, nil
}

func (fakeSource) Job(_ context.Context, id string) (*content.Job, error) {
	if id != "j1" {
		return nil, fmt.Errorf("job %s: %w", id, content.ErrNotFound)
	}
	return &content.Job{
		ID:       "j1",
		Title:    "Staff Nurse",
		Company:  "General Hospital",
		Location: "Colombo",
	}, nil
}

func tokenWithExp(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	enc := func(v any) string {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		return base64.RawURLEncoding.EncodeToString(b)
	}
	header := enc(map[string]string{"alg": "HS256", "typ": "JWT"})
	payload := enc(map[string]any{"sub": sub, "exp": exp.Unix()})
	return header + "." + payload + ".sig"
}

func signedInToken(t *testing.T, sub string) string {
	t.Helper()
	return tokenWithExp(t, sub, time.Now().Add(time.Hour))
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logger.New("error", false)
	fallback := memory.NewStore()
	svc := saved.NewService(memory.NewStore(), fallback, fakeSource{}, log, saved.Options{})

	d := deps.Deps{
		Logger:          log,
		StartTime:       time.Now(),
		TimeNow:         time.Now,
		Saved:           svc,
		Fallback:        fallback,
		RateLimitBurst:  100,
		RateLimitPerMin: 100,
	}

	r := chi.NewRouter()
	RegisterAll(r, d)
	return r
}

func do(t *testing.T, h http.Handler, method, target, token string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSavedListRequiresSession(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/saved", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["error"] != "sign_in_required" {
		t.Errorf("error = %q, want sign_in_required", resp["error"])
	}
}

func TestToggleRequiresSession(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/saved/news/n1/toggle", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// A garbage token is the same as no token.
	rec = do(t, h, http.MethodPost, "/api/saved/news/n1/toggle", "not-a-jwt", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// So is one whose exp claim has passed.
	expired := tokenWithExp(t, "user-1", time.Now().Add(-time.Hour))
	rec = do(t, h, http.MethodPost, "/api/saved/news/n1/toggle", expired, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired token status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// None of the rejected requests may have touched the collection.
	rec = do(t, h, http.MethodGet, "/api/saved", signedInToken(t, "user-1"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var view struct {
		Total int    `json:"total"`
		State string `json:"state"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	if view.Total != 0 || view.State != "empty" {
		t.Errorf("after rejected toggles view = %+v, want empty collection", view)
	}
}

func TestToggleAndList(t *testing.T) {
	h := newTestRouter(t)
	token := signedInToken(t, "user-1")

	rec := do(t, h, http.MethodPost, "/api/saved/news/n1/toggle", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d, body %s", rec.Code, rec.Body.String())
	}
	var toggle saved.ToggleResult
	if err := json.Unmarshal(rec.Body.Bytes(), &toggle); err != nil {
		t.Fatalf("unmarshal toggle: %v", err)
	}
	if !toggle.Saved {
		t.Error("first toggle should save the item")
	}

	rec = do(t, h, http.MethodGet, "/api/saved?tab=news", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var view struct {
		NewsCount int    `json:"news_count"`
		Total     int    `json:"total"`
		State     string `json:"state"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	if view.NewsCount != 1 || view.Total != 1 || view.State != "ok" {
		t.Errorf("view = %+v, want one news item in state ok", view)
	}

	// Second toggle removes it again.
	rec = do(t, h, http.MethodPost, "/api/saved/news/n1/toggle", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("untoggle status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &toggle); err != nil {
		t.Fatalf("unmarshal untoggle: %v", err)
	}
	if toggle.Saved {
		t.Error("second toggle should remove the item")
	}
}

func TestToggleUnknownItem(t *testing.T) {
	h := newTestRouter(t)
	token := signedInToken(t, "user-1")

	rec := do(t, h, http.MethodPost, "/api/saved/news/missing/toggle", token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestToggleUnknownKind(t *testing.T) {
	h := newTestRouter(t)
	token := signedInToken(t, "user-1")

	rec := do(t, h, http.MethodPost, "/api/saved/videos/v1/toggle", token, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestListUnknownTab(t *testing.T) {
	h := newTestRouter(t)
	token := signedInToken(t, "user-1")

	rec := do(t, h, http.MethodGet, "/api/saved?tab=videos", token, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDeleteFlowOverHTTP(t *testing.T) {
	h := newTestRouter(t)
	token := signedInToken(t, "user-1")

	if rec := do(t, h, http.MethodPost, "/api/saved/jobs/j1/toggle", token, ""); rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d", rec.Code)
	}

	// Cannot delete what is not saved.
	rec := do(t, h, http.MethodPost, "/api/saved/news/n1/delete", token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete unsaved status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = do(t, h, http.MethodPost, "/api/saved/jobs/j1/delete", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete request status = %d, body %s", rec.Code, rec.Body.String())
	}
	var pending struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &pending); err != nil {
		t.Fatalf("unmarshal pending: %v", err)
	}
	if pending.Token == "" {
		t.Fatal("delete request returned no confirmation token")
	}

	// Wrong token is rejected, item stays.
	rec = do(t, h, http.MethodPost, "/api/saved/delete/confirm", token, `{"token":"wrong"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("wrong token status = %d, want %d", rec.Code, http.StatusConflict)
	}

	rec = do(t, h, http.MethodPost, "/api/saved/delete/confirm", token, `{"token":"`+pending.Token+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/saved?tab=jobs", token, "")
	var view struct {
		JobsCount int    `json:"jobs_count"`
		State     string `json:"state"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	if view.JobsCount != 0 || view.State != "empty" {
		t.Errorf("after delete view = %+v, want empty", view)
	}
}

func TestCancelDeleteOverHTTP(t *testing.T) {
	h := newTestRouter(t)
	token := signedInToken(t, "user-1")

	if rec := do(t, h, http.MethodPost, "/api/saved/jobs/j1/toggle", token, ""); rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/saved/jobs/j1/delete", token, ""); rec.Code != http.StatusOK {
		t.Fatalf("delete request status = %d", rec.Code)
	}

	rec := do(t, h, http.MethodPost, "/api/saved/delete/cancel", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel status = %d", rec.Code)
	}

	// Item survived the cancelled deletion.
	rec = do(t, h, http.MethodGet, "/api/saved?tab=jobs", token, "")
	var view struct {
		JobsCount int `json:"jobs_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	if view.JobsCount != 1 {
		t.Errorf("jobs_count = %d, want 1", view.JobsCount)
	}

	// Cancel again with nothing pending.
	rec = do(t, h, http.MethodPost, "/api/saved/delete/cancel", token, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("second cancel status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestInfraReportsComponents(t *testing.T) {
	log := logger.New("error", false)
	fallback := memory.NewStore()
	svc := saved.NewService(memory.NewStore(), fallback, fakeSource{}, log, saved.Options{})

	catalog := categories.NewCatalog()
	catalog.Update(&categories.Config{
		News: []string{"Business", "Sports"},
		Jobs: []string{"Government"},
	})

	d := deps.Deps{
		Logger:    log,
		StartTime: time.Now(),
		TimeNow:   time.Now,
		Saved:     svc,
		Fallback:  fallback,
		Catalog:   catalog,
	}
	r := chi.NewRouter()
	RegisterAll(r, d)

	rec := do(t, r, http.MethodGet, "/infra", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("infra status = %d", rec.Code)
	}

	var resp struct {
		StorageMode string `json:"storage_mode"`
		Components  map[string]struct {
			OK             bool `json:"ok"`
			NewsCategories *int `json:"news_categories"`
			JobsCategories *int `json:"jobs_categories"`
			DirtySlots     *int `json:"dirty_slots"`
		} `json:"components"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal infra: %v", err)
	}

	cats, ok := resp.Components["categories"]
	if !ok {
		t.Fatal("infra response has no categories component")
	}
	if !cats.OK {
		t.Error("categories component should be ok with a loaded catalog")
	}
	if cats.NewsCategories == nil || *cats.NewsCategories != 2 {
		t.Errorf("news_categories = %v, want 2", cats.NewsCategories)
	}
	if cats.JobsCategories == nil || *cats.JobsCategories != 1 {
		t.Errorf("jobs_categories = %v, want 1", cats.JobsCategories)
	}

	store, ok := resp.Components["store"]
	if !ok {
		t.Fatal("infra response has no store component")
	}
	if store.DirtySlots == nil || *store.DirtySlots != 0 {
		t.Errorf("dirty_slots = %v, want 0", store.DirtySlots)
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/readyz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz status = %d", rec.Code)
	}
	var ready struct {
		Ready bool   `json:"ready"`
		Mode  string `json:"mode"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &ready); err != nil {
		t.Fatalf("unmarshal readyz: %v", err)
	}
	if !ready.Ready {
		t.Error("readyz should report ready")
	}
}
