package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fixpoints/fixpoints-api/internal/dto"
	"github.com/fixpoints/fixpoints-api/internal/entity"
	"github.com/fixpoints/fixpoints-api/internal/repository"
)

type mockUsersRepository struct {
	findByEmail func(ctx context.Context, email string) (*entity.User, error)
	findByID    func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	create      func(ctx context.Context, user repository.NewUser) (*entity.User, error)
	list        func(ctx context.Context) ([]entity.User, error)
	update      func(ctx context.Context, id uuid.UUID, name, role *string) (*entity.User, error)
	delete      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmail != nil {
		return m.findByEmail(ctx, email)
	}
	return nil, errors.New("findByEmail not implemented")
}

func (m *mockUsersRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, errors.New("FindByID not implemented")
}

func (m *mockUsersRepository) Create(ctx context.Context, user repository.NewUser) (*entity.User, error) {
	if m.create != nil {
		return m.create(ctx, user)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockUsersRepository) List(ctx context.Context) ([]entity.User, error) {
	if m.list != nil {
		return m.list(ctx)
	}
	return nil, errors.New("List not implemented")
}

func (m *mockUsersRepository) Update(ctx context.Context, id uuid.UUID, name, role *string) (*entity.User, error) {
	if m.update != nil {
		return m.update(ctx, id, name, role)
	}
	return nil, errors.New("Update not implemented")
}

func (m *mockUsersRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return errors.New("Delete not implemented")
}

type memCategories struct {
	items []entity.Category
}

func (m *memCategories) ListActive(ctx context.Context) ([]entity.Category, error) {
	out := make([]entity.Category, 0, len(m.items))
	for _, c := range m.items {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCategories) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	for i := range m.items {
		if m.items[i].Slug == slug {
			c := m.items[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memCategories) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			c := m.items[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

// memServices keeps services in memory and mimics the gorm repository.
type memServices struct {
	items      map[uuid.UUID]*entity.Service
	lastFilter dto.ServiceFilter
	listErr    error
}

func newMemServices(services ...entity.Service) *memServices {
	m := &memServices{items: make(map[uuid.UUID]*entity.Service)}
	for i := range services {
		svc := services[i]
		m.items[svc.ID] = &svc
	}
	return m
}

func (m *memServices) List(ctx context.Context, filter dto.ServiceFilter) ([]entity.Service, int64, error) {
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	out := make([]entity.Service, 0, len(m.items))
	for _, svc := range m.items {
		out = append(out, *svc)
	}
	return out, int64(len(out)), nil
}

func (m *memServices) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	svc, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *svc
	return &cp, nil
}

func (m *memServices) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.items[id]
	return ok, nil
}

func (m *memServices) Create(ctx context.Context, svc *entity.Service) error {
	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	cp := *svc
	m.items[svc.ID] = &cp
	return nil
}

func (m *memServices) CreateBatch(ctx context.Context, services []entity.Service) (int, error) {
	for i := range services {
		if err := m.Create(ctx, &services[i]); err != nil {
			return 0, err
		}
	}
	return len(services), nil
}

func (m *memServices) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memServices) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	svc, ok := m.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	svc.IsVerified = verified
	return nil
}

// memReviews enforces the one-review-per-user-and-service constraint.
type memReviews struct {
	items []entity.Review
	users map[uuid.UUID]entity.User
}

func (m *memReviews) ListByService(ctx context.Context, serviceID uuid.UUID) ([]entity.Review, error) {
	out := make([]entity.Review, 0)
	for i := len(m.items) - 1; i >= 0; i-- {
		r := m.items[i]
		if r.ServiceID == serviceID && !r.IsHidden {
			out = append(out, m.withUser(r))
		}
	}
	return out, nil
}

func (m *memReviews) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	for _, r := range m.items {
		if r.ID == id {
			withUser := m.withUser(r)
			return &withUser, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memReviews) Create(ctx context.Context, review *entity.Review) error {
	for _, r := range m.items {
		if r.UserID == review.UserID && r.ServiceID == review.ServiceID {
			return repository.ErrDuplicate
		}
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	m.items = append(m.items, *review)
	return nil
}

func (m *memReviews) Delete(ctx context.Context, id uuid.UUID) error {
	for i, r := range m.items {
		if r.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memReviews) IncrementHelpful(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].HelpfulCount++
			r := m.withUser(m.items[i])
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memReviews) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].IsHidden = hidden
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memReviews) withUser(r entity.Review) entity.Review {
	if u, ok := m.users[r.UserID]; ok {
		r.User = &u
	}
	return r
}

// memFavorites enforces the one-favorite-per-user-and-service constraint.
type memFavorites struct {
	items    []entity.Favorite
	services *memServices
}

func (m *memFavorites) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Favorite, error) {
	out := make([]entity.Favorite, 0)
	for i := len(m.items) - 1; i >= 0; i-- {
		f := m.items[i]
		if f.UserID != userID {
			continue
		}
		if m.services != nil {
			if svc, ok := m.services.items[f.ServiceID]; ok {
				cp := *svc
				f.Service = &cp
			}
		}
		out = append(out, f)
	}
	return out, nil
}

func (m *memFavorites) Create(ctx context.Context, favorite *entity.Favorite) error {
	for _, f := range m.items {
		if f.UserID == favorite.UserID && f.ServiceID == favorite.ServiceID {
			return repository.ErrDuplicate
		}
	}
	if favorite.ID == uuid.Nil {
		favorite.ID = uuid.New()
	}
	m.items = append(m.items, *favorite)
	return nil
}

func (m *memFavorites) Delete(ctx context.Context, userID, serviceID uuid.UUID) error {
	kept := m.items[:0]
	for _, f := range m.items {
		if f.UserID == userID && f.ServiceID == serviceID {
			continue
		}
		kept = append(kept, f)
	}
	m.items = kept
	return nil
}

func mustUUID(raw string) uuid.UUID {
	return uuid.MustParse(raw)
}

func stringPtr(value string) *string {
	return &value
}
