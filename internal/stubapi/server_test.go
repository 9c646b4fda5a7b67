package stubapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv := New(Config{JWTSecret: "test-secret"})
	if _, err := srv.SeedUser("Admin", "admin@eshop.local", "admin123", domain.RoleAdmin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, req)
	return rec
}

func adminToken(t *testing.T, srv *Server) string {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/auth/login", "",
		`{"email":"admin@eshop.local","password":"admin123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	var res authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return res.Token
}

func TestLogin_WrongCredentials(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/auth/login", "",
		`{"email":"admin@eshop.local","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "invalid credentials") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)

	body := `{"fullName":"Bob","email":"bob@example.com","password":"secret123"}`
	if rec := doJSON(t, srv, http.MethodPost, "/auth/register", "", body); rec.Code != http.StatusCreated {
		t.Fatalf("first register: %d %s", rec.Code, rec.Body.String())
	}
	if rec := doJSON(t, srv, http.MethodPost, "/auth/register", "", body); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCheckStatus_RequiresToken(t *testing.T) {
	srv := newTestServer(t)

	if rec := doJSON(t, srv, http.MethodGet, "/auth/check-status", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := doJSON(t, srv, http.MethodGet, "/auth/check-status", "garbage", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}
}

func TestCreateProduct_RequiresAdmin(t *testing.T) {
	srv := newTestServer(t)
	body := `{"title":"Cap","price":10,"stock":5,"slug":"cap","gender":"men","description":"A cap"}`

	if rec := doJSON(t, srv, http.MethodPost, "/products", "", body); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 unauthenticated, got %d", rec.Code)
	}

	reg := doJSON(t, srv, http.MethodPost, "/auth/register", "",
		`{"fullName":"Bob","email":"bob@example.com","password":"secret123"}`)
	var res authResponse
	if err := json.Unmarshal(reg.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode register: %v", err)
	}
	if rec := doJSON(t, srv, http.MethodPost, "/products", res.Token, body); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"price":10,"stock":5,"slug":"cap","gender":"men","description":"d"}`},
		{"slug with space", `{"title":"Cap","price":10,"stock":5,"slug":"a cap","gender":"men","description":"d"}`},
		{"bad gender", `{"title":"Cap","price":10,"stock":5,"slug":"cap","gender":"robot","description":"d"}`},
		{"bad size", `{"title":"Cap","price":10,"stock":5,"slug":"cap","gender":"men","description":"d","sizes":["XXS"]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/products", token, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateProduct_AssignsOwnerAndID(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/products", token,
		`{"title":"Cap","price":10,"stock":5,"slug":"cap","gender":"men","description":"A cap","sizes":["M","L"],"tags":["headwear"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var p domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected an assigned id")
	}
	if p.User == nil || p.User.Email != "admin@eshop.local" {
		t.Fatalf("expected the creator as owner, got %+v", p.User)
	}
	if p.Images == nil || len(p.Images) != 0 {
		t.Fatalf("expected an empty images array, got %v", p.Images)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	srv := newTestServer(t)

	if rec := doJSON(t, srv, http.MethodGet, "/products/nope", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetProduct_BySlugAndID(t *testing.T) {
	srv := newTestServer(t)
	seeded := srv.SeedProduct(domain.Product{Title: "Shirt", Slug: "shirt", Gender: domain.GenderMen})

	for _, idSlug := range []string{seeded.ID, "shirt"} {
		rec := doJSON(t, srv, http.MethodGet, "/products/"+idSlug, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("get %q: %d", idSlug, rec.Code)
		}
		var p domain.Product
		if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if p.ID != seeded.ID {
			t.Fatalf("expected %q, got %q", seeded.ID, p.ID)
		}
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	rec := doJSON(t, srv, http.MethodPatch, "/products/missing", token,
		`{"title":"X","price":1,"stock":1,"slug":"x","gender":"men","description":"d"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateProduct_DuplicateSlug(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	srv.SeedProduct(domain.Product{Title: "A", Slug: "taken", Gender: domain.GenderMen})
	other := srv.SeedProduct(domain.Product{Title: "B", Slug: "free", Gender: domain.GenderMen})

	rec := doJSON(t, srv, http.MethodPatch, "/products/"+other.ID, token,
		`{"title":"B","price":1,"stock":1,"slug":"taken","gender":"men","description":"d"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate slug, got %d: %s", rec.Code, rec.Body.String())
	}

	// Keeping its own slug is not a collision.
	rec = doJSON(t, srv, http.MethodPatch, "/products/"+other.ID, token,
		`{"title":"B2","price":1,"stock":1,"slug":"free","gender":"men","description":"d"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for own slug, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListProducts_GenderFilter(t *testing.T) {
	srv := newTestServer(t)
	srv.SeedProduct(domain.Product{Title: "A", Slug: "a", Gender: domain.GenderMen})
	srv.SeedProduct(domain.Product{Title: "B", Slug: "b", Gender: domain.GenderWomen})
	srv.SeedProduct(domain.Product{Title: "C", Slug: "c", Gender: domain.GenderMen})

	rec := doJSON(t, srv, http.MethodGet, "/products?gender=men", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: %d", rec.Code)
	}
	var res productsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Count != 2 || len(res.Products) != 2 {
		t.Fatalf("expected 2 men's products, got count=%d len=%d", res.Count, len(res.Products))
	}

	if rec := doJSON(t, srv, http.MethodGet, "/products?gender=robot", "", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown gender, got %d", rec.Code)
	}
}
