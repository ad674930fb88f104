package delivery

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"category_service/internal/domain"
	"category_service/internal/repository"
	"category_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func setupRouter() (*gin.Engine, *repository.InMemoryCategoryRepository) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := repository.NewInMemoryCategoryRepository(logger)
	handler := NewCategoryHandler(usecase.NewCategoryUseCase(repo, logger), logger)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router, repo
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListCategoriesEmptyReturnsEmptyArray(t *testing.T) {
	router, _ := setupRouter()

	w := doRequest(router, http.MethodGet, "/categories", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want []", got)
	}
}

func TestCreateCategoryReturnsCreatedEntity(t *testing.T) {
	router, _ := setupRouter()

	w := doRequest(router, http.MethodPost, "/categories", `{"name":"Sparen","icon":"🏦"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var created domain.Category
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID != 1 || created.Name != "Sparen" || created.Icon != "🏦" {
		t.Fatalf("unexpected category: %+v", created)
	}

	w = doRequest(router, http.MethodGet, "/categories", "")
	var categories []domain.Category
	if err := json.Unmarshal(w.Body.Bytes(), &categories); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(categories) != 1 || categories[0] != created {
		t.Fatalf("list does not reflect create: %v", categories)
	}
}

func TestCreateCategoryDefaultsIcon(t *testing.T) {
	router, _ := setupRouter()

	w := doRequest(router, http.MethodPost, "/categories", `{"name":"Onderwijs"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var created domain.Category
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Icon != domain.DefaultIcon {
		t.Errorf("Icon = %q, want %q", created.Icon, domain.DefaultIcon)
	}
}

func TestCreateCategoryValidationFailures(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantField   string
		wantMessage string
	}{
		{
			name:        "missing name",
			body:        `{"icon":"🏦"}`,
			wantField:   "name",
			wantMessage: "name is required",
		},
		{
			name:        "blank name",
			body:        `{"name":"   "}`,
			wantField:   "name",
			wantMessage: "name is required",
		},
		{
			name:        "name too short",
			body:        `{"name":"A"}`,
			wantField:   "name",
			wantMessage: "name must be at least 2 characters",
		},
		{
			name:        "name too long",
			body:        `{"name":"` + strings.Repeat("a", 51) + `"}`,
			wantField:   "name",
			wantMessage: "name must be at most 50 characters",
		},
		{
			name:        "icon too long",
			body:        `{"name":"Boodschappen","icon":"` + strings.Repeat("🛒", 11) + `"}`,
			wantField:   "icon",
			wantMessage: "icon must be at most 10 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupRouter()

			w := doRequest(router, http.MethodPost, "/categories", tt.body)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusUnprocessableEntity, w.Body.String())
			}

			var body ValidationErrorBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode validation response: %v", err)
			}
			if body.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMessage)
			}
			fieldErrors, ok := body.Errors[tt.wantField]
			if !ok || len(fieldErrors) != 1 || fieldErrors[0] != tt.wantMessage {
				t.Errorf("errors[%q] = %v, want [%q]", tt.wantField, fieldErrors, tt.wantMessage)
			}

			w = doRequest(router, http.MethodGet, "/categories", "")
			if got := strings.TrimSpace(w.Body.String()); got != "[]" {
				t.Errorf("rejected create still visible in list: %s", got)
			}
		})
	}
}

func TestCreateCategoryInvalidJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"name":`},
		{name: "wrong field type", body: `{"name":123}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupRouter()

			w := doRequest(router, http.MethodPost, "/categories", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}

			var body MessageBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if body.Message != "Invalid request body" {
				t.Errorf("message = %q, want %q", body.Message, "Invalid request body")
			}
		})
	}
}

func TestDeleteCategory(t *testing.T) {
	router, repo := setupRouter()
	repo.InsertCategory(domain.Category{ID: 1, Name: "Huur", Icon: "🏠"})

	w := doRequest(router, http.MethodDelete, "/categories/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body MessageBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode delete response: %v", err)
	}
	if body.Message != "Category deleted successfully" {
		t.Errorf("message = %q, want %q", body.Message, "Category deleted successfully")
	}

	// Deleting again is a 404 with the not-found message.
	w = doRequest(router, http.MethodDelete, "/categories/1", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode not-found response: %v", err)
	}
	if body.Message != "category with id 1 not found" {
		t.Errorf("message = %q, want %q", body.Message, "category with id 1 not found")
	}
}

func TestDeleteCategoryInvalidID(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "non-numeric id", target: "/categories/abc"},
		{name: "zero id", target: "/categories/0"},
		{name: "negative id", target: "/categories/-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupRouter()

			w := doRequest(router, http.MethodDelete, tt.target, "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}

			var body MessageBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if body.Message != "Invalid category ID format" {
				t.Errorf("message = %q, want %q", body.Message, "Invalid category ID format")
			}
		})
	}
}

func TestCreateCategoryReusesFreedMaxID(t *testing.T) {
	router, _ := setupRouter()

	for _, body := range []string{
		`{"name":"Boodschappen","icon":"🛒"}`,
		`{"name":"Huur","icon":"🏠"}`,
		`{"name":"Vervoer","icon":"🚗"}`,
	} {
		if w := doRequest(router, http.MethodPost, "/categories", body); w.Code != http.StatusCreated {
			t.Fatalf("seed create failed: status %d", w.Code)
		}
	}

	if w := doRequest(router, http.MethodDelete, "/categories/3", ""); w.Code != http.StatusOK {
		t.Fatalf("delete failed: status %d", w.Code)
	}

	w := doRequest(router, http.MethodPost, "/categories", `{"name":"Sparen","icon":"🏦"}`)
	var created domain.Category
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID != 3 {
		t.Errorf("id after freeing max = %d, want 3", created.ID)
	}
}

func TestConcurrentCreateRequests(t *testing.T) {
	router, repo := setupRouter()

	const workers = 20
	var wg sync.WaitGroup
	ids := make(chan int, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := doRequest(router, http.MethodPost, "/categories", `{"name":"Sparen","icon":"🏦"}`)
			if w.Code != http.StatusCreated {
				t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
				return
			}
			var created domain.Category
			if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
				t.Errorf("decode create response: %v", err)
				return
			}
			ids <- created.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, workers)
	for id := range ids {
		if seen[id] {
			t.Fatalf("id %d assigned twice", id)
		}
		seen[id] = true
	}
	if len(seen) != workers {
		t.Fatalf("got %d distinct ids, want %d", len(seen), workers)
	}
	if repo.Len() != workers {
		t.Fatalf("store holds %d categories, want %d", repo.Len(), workers)
	}
}
