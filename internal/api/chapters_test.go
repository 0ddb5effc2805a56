package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/warbandhq/chapter-registry/internal/api"
	"github.com/warbandhq/chapter-registry/internal/service"
	"github.com/warbandhq/chapter-registry/internal/testutil"
	"go.uber.org/zap"
)

func newChapterRouter(t *testing.T) (*gin.Engine, *testutil.ChapterRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := testutil.NewChapterRepo()
	engine := gin.New()
	api.NewChapterHandler(service.NewChapters(repo), zap.NewNop()).RegisterRoutes(engine.Group("/api"))
	return engine, repo
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestChapterCreate(t *testing.T) {
	engine, _ := newChapterRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/chapters",
		`{"Chapter_Name":"Alpha","Chapter_Description":"d","Created_By":"u1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body)
	}

	var chapter struct {
		ChapterID string `json:"Chapter_Id"`
		Name      string `json:"Chapter_Name"`
		Status    string `json:"Status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &chapter); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if !regexp.MustCompile(`^[a-z0-9]{6}$`).MatchString(chapter.ChapterID) {
		t.Errorf("Chapter_Id %q is not a 6-char lowercase alphanumeric id", chapter.ChapterID)
	}
	if chapter.Status != "pending" {
		t.Errorf("Status: got %q, want %q", chapter.Status, "pending")
	}

	// Same name, different case → 400 with the fixed conflict message.
	rec = doJSON(t, engine, http.MethodPost, "/api/chapters",
		`{"Chapter_Name":"alpha","Chapter_Description":"d","Created_By":"u1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("conflict status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if errResp.Error != "Chapter name already exists (case-insensitive)" {
		t.Errorf("error: got %q", errResp.Error)
	}
}

func TestChapterCreateMissingFields(t *testing.T) {
	engine, _ := newChapterRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/chapters", `{"Chapter_Name":"Alpha"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestChapterList(t *testing.T) {
	engine, _ := newChapterRouter(t)

	for i := 0; i < 10; i++ {
		body := fmt.Sprintf(`{"Chapter_Name":"Chapter %02d","Chapter_Description":"d","Created_By":"u1"}`, i)
		if rec := doJSON(t, engine, http.MethodPost, "/api/chapters", body); rec.Code != http.StatusCreated {
			t.Fatalf("seed chapter %d: status %d", i, rec.Code)
		}
	}

	rec := doJSON(t, engine, http.MethodGet, "/api/chapters?page=1&limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Chapters []struct {
			ChapterID string `json:"Chapter_Id"`
			Name      string `json:"Chapter_Name"`
		} `json:"chapters"`
		Pagination struct {
			Total      int `json:"total"`
			Page       int `json:"page"`
			Limit      int `json:"limit"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(resp.Chapters) != 2 {
		t.Errorf("chapters: got %d, want 2", len(resp.Chapters))
	}
	if resp.Pagination.Total != 10 || resp.Pagination.TotalPages != 5 {
		t.Errorf("pagination: got %+v, want total=10 totalPages=5", resp.Pagination)
	}

	// Beyond the last page: empty list, correct total, JSON [] not null.
	rec = doJSON(t, engine, http.MethodGet, "/api/chapters?page=99&limit=2", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(resp.Chapters) != 0 || resp.Pagination.Total != 10 {
		t.Errorf("out-of-range page: got %d chapters, total %d", len(resp.Chapters), resp.Pagination.Total)
	}
	if !strings.Contains(rec.Body.String(), `"chapters":[]`) {
		t.Errorf("expected empty array serialization, got %s", rec.Body)
	}
}

func TestChapterCount(t *testing.T) {
	engine, _ := newChapterRouter(t)

	doJSON(t, engine, http.MethodPost, "/api/chapters",
		`{"Chapter_Name":"Alpha","Chapter_Description":"d","Created_By":"u1"}`)

	rec := doJSON(t, engine, http.MethodGet, "/api/chapters/count", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total: got %d, want 1", resp.Total)
	}
}

func TestChapterCheckName(t *testing.T) {
	engine, _ := newChapterRouter(t)

	doJSON(t, engine, http.MethodPost, "/api/chapters",
		`{"Chapter_Name":"Alpha","Chapter_Description":"d","Created_By":"u1"}`)

	rec := doJSON(t, engine, http.MethodGet, "/api/chapters/check-name?Chapter_Name=ALPHA", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var resp struct {
		Exists  bool   `json:"exists"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if !resp.Exists {
		t.Error("expected case-insensitive existence")
	}
	if resp.Message == "" {
		t.Error("expected a human-readable message")
	}

	// Missing query parameter.
	rec = doJSON(t, engine, http.MethodGet, "/api/chapters/check-name", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing param status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestChapterGet(t *testing.T) {
	engine, repo := newChapterRouter(t)

	doJSON(t, engine, http.MethodPost, "/api/chapters",
		`{"Chapter_Name":"Alpha","Chapter_Description":"d","Created_By":"u1"}`)
	chapterID := repo.Chapters[0].ChapterID

	rec := doJSON(t, engine, http.MethodGet, "/api/chapters/"+chapterID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var chapter struct {
		Name      string `json:"Chapter_Name"`
		CreatedAt string `json:"Created_At"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &chapter); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if chapter.Name != "Alpha" {
		t.Errorf("name: got %q, want %q", chapter.Name, "Alpha")
	}
	if chapter.CreatedAt == "" {
		t.Error("expected timestamps in the response")
	}

	rec = doJSON(t, engine, http.MethodGet, "/api/chapters/zzzzzz", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}
