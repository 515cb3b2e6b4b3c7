package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	product "github.com/borealis-store/borealis-backend/internal/products"
	"github.com/borealis-store/borealis-backend/pkg/db/dbtest"
)

func newProductRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := product.NewService(product.NewRepository(conn))
	if err != nil {
		t.Fatalf("new product service: %v", err)
	}

	r := chi.NewRouter()
	r.Get("/api/products", ProductsList(svc, nil))
	r.Get("/api/products/search", ProductsSearch(svc, nil))
	r.Get("/api/products/{id}", ProductGet(svc, nil))
	r.Get("/api/categories", ProductCategories(svc, nil))
	r.Post("/api/products", AdminCreateProduct(svc, nil))
	r.Put("/api/products/{id}", AdminUpdateProduct(svc, nil))
	r.Delete("/api/products/{id}", AdminDeleteProduct(svc, nil))
	return r, conn
}

func TestProductSearchTreatsMetacharactersLiterally(t *testing.T) {
	router, conn := newProductRouter(t)
	dbtest.SeedProduct(t, conn, "a.b* lamp", "$10.00", 1)
	dbtest.SeedProduct(t, conn, "axbb lamp", "$10.00", 1)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, newRequest(http.MethodGet, "/api/products/search?q=a.b*", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var list []product.ProductDTO
	decodeData(t, resp, &list)
	if len(list) != 1 || list[0].Name != "a.b* lamp" {
		t.Fatalf("expected only the literal match, got %+v", list)
	}
}

func TestProductSearchRejectsOverlongQuery(t *testing.T) {
	router, conn := newProductRouter(t)
	dbtest.SeedProduct(t, conn, strings.Repeat("a", 100)+"X", "$10.00", 1)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, newRequest(http.MethodGet, "/api/products/search?q="+strings.Repeat("a", 100)+"Y", ""))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductGetMalformedIDIsNotFound(t *testing.T) {
	router, _ := newProductRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, newRequest(http.MethodGet, "/api/products/not-a-uuid", ""))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestProductGetReturnsProduct(t *testing.T) {
	router, conn := newProductRouter(t)
	seeded := dbtest.SeedProduct(t, conn, "Nomad Journal", "$55.00", 10)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, newRequest(http.MethodGet, "/api/products/"+seeded.ID.String(), ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var dto product.ProductDTO
	decodeData(t, resp, &dto)
	if dto.ID != seeded.ID || dto.CountInStock != 10 {
		t.Fatalf("unexpected product %+v", dto)
	}
}

func TestAdminCreateProductRequiresFields(t *testing.T) {
	router, _ := newProductRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, newRequest(http.MethodPost, "/api/products", `{"name":"Terra Vase"}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, newRequest(http.MethodPost, "/api/products", `{"name":"Terra Vase","price":"75","countInStock":0,"category":"Decor"}`))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", resp.Code, resp.Body.String())
	}
	var created product.CreatedResponse
	decodeData(t, resp, &created)
	if created.Message != productCreatedMessage || created.NewProduct == nil {
		t.Fatalf("unexpected create response %+v", created)
	}
}

func TestAdminUpdateAndDeleteProduct(t *testing.T) {
	router, conn := newProductRouter(t)
	seeded := dbtest.SeedProduct(t, conn, "Edison Lamp", "$120.00", 2)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, newRequest(http.MethodPut, "/api/products/"+seeded.ID.String(), `{"countInStock":5}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, newRequest(http.MethodDelete, "/api/products/"+seeded.ID.String(), ""))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, newRequest(http.MethodDelete, "/api/products/"+uuid.NewString(), ""))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, newRequest(http.MethodDelete, "/api/products/bogus", ""))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
