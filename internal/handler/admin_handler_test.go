package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/fixpoints/fixpoints-api/internal/dto"
	"github.com/fixpoints/fixpoints-api/internal/entity"
	"github.com/fixpoints/fixpoints-api/internal/service"
)

func newAdminHandler(services *stubServicesRepo, reviews *stubReviewsRepo) *AdminHandler {
	catalog := service.NewCatalogService(services, newStubCategories(), nil)
	return NewAdminHandler(catalog, service.NewReviewService(reviews, services))
}

func TestAdminHandler_ImportServices(t *testing.T) {
	e := newTestEcho()

	t.Run("missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/services/import", nil)
		rec := httptest.NewRecorder()
		_ = newAdminHandler(newStubServices(), &stubReviewsRepo{}).ImportServices(e.NewContext(req, rec))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing columns", func(t *testing.T) {
		req, rec := multipartRequest(t, "file", "services.csv", "name,city\nPneu,Praha\n")
		_ = newAdminHandler(newStubServices(), &stubReviewsRepo{}).ImportServices(e.NewContext(req, rec))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); msg != "missing required columns: description, category, address, state" {
			t.Fatalf("unexpected message %q", msg)
		}
	})

	t.Run("success", func(t *testing.T) {
		csv := "name,description,category,address,city,state\n" +
			"Pneu Novák,Přezouvání pneumatik celoročně,pneuservis,Vinohradská 12,Praha,Praha\n" +
			"Odtah Rychlík,Nonstop odtahová služba,odtah,Polní 5,Ostrava,Moravskoslezský\n"
		req, rec := multipartRequest(t, "file", "services.csv", csv)
		repo := newStubServices()
		_ = newAdminHandler(repo, &stubReviewsRepo{}).ImportServices(e.NewContext(req, rec))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var result dto.ImportResult
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if result != (dto.ImportResult{Inserted: 1, Skipped: 1, Total: 2}) {
			t.Fatalf("unexpected result: %+v", result)
		}
		if len(repo.batch) != 1 || repo.batch[0].Name != "Pneu Novák" {
			t.Fatalf("unexpected batch: %+v", repo.batch)
		}
	})
}

func TestAdminHandler_VerifyService(t *testing.T) {
	e := newTestEcho()
	id := uuid.New()
	repo := newStubServices(entity.Service{ID: id})
	handler := newAdminHandler(repo, &stubReviewsRepo{})

	call := func(target string, payload any) int {
		req, rec := jsonRequest(t, http.MethodPatch, "/api/admin/services/"+target+"/verify", payload)
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(target)
		_ = handler.VerifyService(c)
		return rec.Code
	}

	if code := call(id.String(), map[string]any{}); code != http.StatusBadRequest {
		t.Fatalf("expected 400 without verified flag, got %d", code)
	}
	if code := call(id.String(), map[string]any{"verified": true}); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !repo.items[id].IsVerified {
		t.Fatalf("expected service to be verified")
	}
	if code := call(uuid.NewString(), map[string]any{"verified": false}); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestAdminHandler_SetReviewVisibility(t *testing.T) {
	e := newTestEcho()
	reviewID := uuid.New()
	reviews := &stubReviewsRepo{items: []entity.Review{{ID: reviewID, Rating: 1, Content: "Nevhodný obsah recenze"}}}
	handler := newAdminHandler(newStubServices(), reviews)

	req, rec := jsonRequest(t, http.MethodPatch, "/api/admin/reviews/"+reviewID.String()+"/visibility", map[string]bool{"hidden": true})
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(reviewID.String())
	_ = handler.SetReviewVisibility(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !reviews.items[0].IsHidden {
		t.Fatalf("expected review to be hidden")
	}
}
