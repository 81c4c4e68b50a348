package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fixpoints/fixpoints-api/internal/dto"
	"github.com/fixpoints/fixpoints-api/internal/entity"
	"github.com/fixpoints/fixpoints-api/internal/middleware"
	"github.com/fixpoints/fixpoints-api/internal/places"
	"github.com/fixpoints/fixpoints-api/internal/repository"
)

var (
	aliceID = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	bobID   = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002")
	tyresID = uuid.MustParse("cccccccc-0000-0000-0000-000000000003")
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

func jsonRequest(t *testing.T, method, target string, payload any) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var body *bytes.Reader
	switch p := payload.(type) {
	case nil:
		body = bytes.NewReader(nil)
	case string:
		body = bytes.NewReader([]byte(p))
	default:
		raw, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func multipartRequest(t *testing.T, field, filename, content string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/services/import", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req, httptest.NewRecorder()
}

func authenticate(c echo.Context, id uuid.UUID, role string) {
	c.Set(middleware.ContextKeyUserID, id.String())
	c.Set(middleware.ContextKeyUserRole, role)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return payload.Error
}

type stubUsersRepo struct {
	findByEmail func(ctx context.Context, email string) (*entity.User, error)
	findByID    func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	create      func(ctx context.Context, user repository.NewUser) (*entity.User, error)
	list        func(ctx context.Context) ([]entity.User, error)
	update      func(ctx context.Context, id uuid.UUID, name, role *string) (*entity.User, error)
	delete      func(ctx context.Context, id uuid.UUID) error
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if s.findByEmail != nil {
		return s.findByEmail(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) Create(ctx context.Context, user repository.NewUser) (*entity.User, error) {
	if s.create != nil {
		return s.create(ctx, user)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) List(ctx context.Context) ([]entity.User, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) Update(ctx context.Context, id uuid.UUID, name, role *string) (*entity.User, error) {
	if s.update != nil {
		return s.update(ctx, id, name, role)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return errors.New("not implemented")
}

type stubCategoriesRepo struct {
	items []entity.Category
}

func newStubCategories() *stubCategoriesRepo {
	return &stubCategoriesRepo{items: []entity.Category{
		{ID: tyresID, Name: "Pneuservis", Slug: "pneuservis", IsActive: true},
	}}
}

func (s *stubCategoriesRepo) ListActive(ctx context.Context) ([]entity.Category, error) {
	return s.items, nil
}

func (s *stubCategoriesRepo) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	for i := range s.items {
		if s.items[i].Slug == slug {
			return &s.items[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubCategoriesRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

type stubServicesRepo struct {
	items   map[uuid.UUID]entity.Service
	batch   []entity.Service
	listErr error
}

func newStubServices(services ...entity.Service) *stubServicesRepo {
	s := &stubServicesRepo{items: make(map[uuid.UUID]entity.Service)}
	for _, svc := range services {
		s.items[svc.ID] = svc
	}
	return s
}

func (s *stubServicesRepo) List(ctx context.Context, filter dto.ServiceFilter) ([]entity.Service, int64, error) {
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	out := make([]entity.Service, 0, len(s.items))
	for _, svc := range s.items {
		out = append(out, svc)
	}
	return out, int64(len(out)), nil
}

func (s *stubServicesRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	svc, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &svc, nil
}

func (s *stubServicesRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := s.items[id]
	return ok, nil
}

func (s *stubServicesRepo) Create(ctx context.Context, svc *entity.Service) error {
	svc.ID = uuid.New()
	s.items[svc.ID] = *svc
	return nil
}

func (s *stubServicesRepo) CreateBatch(ctx context.Context, services []entity.Service) (int, error) {
	s.batch = append(s.batch, services...)
	return len(services), nil
}

func (s *stubServicesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *stubServicesRepo) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	svc, ok := s.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	svc.IsVerified = verified
	s.items[id] = svc
	return nil
}

type stubReviewsRepo struct {
	items []entity.Review
}

func (s *stubReviewsRepo) ListByService(ctx context.Context, serviceID uuid.UUID) ([]entity.Review, error) {
	out := make([]entity.Review, 0)
	for _, r := range s.items {
		if r.ServiceID == serviceID && !r.IsHidden {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubReviewsRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			r := s.items[i]
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubReviewsRepo) Create(ctx context.Context, review *entity.Review) error {
	for _, r := range s.items {
		if r.UserID == review.UserID && r.ServiceID == review.ServiceID {
			return repository.ErrDuplicate
		}
	}
	review.ID = uuid.New()
	s.items = append(s.items, *review)
	return nil
}

func (s *stubReviewsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *stubReviewsRepo) IncrementHelpful(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].HelpfulCount++
			r := s.items[i]
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubReviewsRepo) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].IsHidden = hidden
			return nil
		}
	}
	return repository.ErrNotFound
}

type stubFavoritesRepo struct {
	items []entity.Favorite
}

func (s *stubFavoritesRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Favorite, error) {
	out := make([]entity.Favorite, 0)
	for _, f := range s.items {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *stubFavoritesRepo) Create(ctx context.Context, favorite *entity.Favorite) error {
	for _, f := range s.items {
		if f.UserID == favorite.UserID && f.ServiceID == favorite.ServiceID {
			return repository.ErrDuplicate
		}
	}
	favorite.ID = uuid.New()
	s.items = append(s.items, *favorite)
	return nil
}

func (s *stubFavoritesRepo) Delete(ctx context.Context, userID, serviceID uuid.UUID) error {
	kept := s.items[:0]
	for _, f := range s.items {
		if f.UserID != userID || f.ServiceID != serviceID {
			kept = append(kept, f)
		}
	}
	s.items = kept
	return nil
}

type stubPlacesSource struct {
	listings []entity.Listing
	err      error
}

func (s *stubPlacesSource) Search(ctx context.Context, q places.Query) ([]entity.Listing, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.listings, nil
}
