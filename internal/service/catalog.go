package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fixpoints/fixpoints-api/internal/dto"
	"github.com/fixpoints/fixpoints-api/internal/entity"
	"github.com/fixpoints/fixpoints-api/internal/rating"
	"github.com/fixpoints/fixpoints-api/internal/repository"
)

const (
	defaultServiceLimit = 10
	maxServiceLimit     = 100
	maxServicePage      = 100000
)

// CatalogService manages the services stored in FixPoints' own catalogue.
type CatalogService struct {
	services   repository.ServicesRepository
	categories repository.CategoriesRepository
	contacts   *ContactValidator
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(services repository.ServicesRepository, categories repository.CategoriesRepository, contacts *ContactValidator) *CatalogService {
	if contacts == nil {
		contacts = NewContactValidator(defaultPhoneRegion)
	}
	return &CatalogService{services: services, categories: categories, contacts: contacts}
}

// ListServices returns a page of services with their rating summaries.
func (s *CatalogService) ListServices(ctx context.Context, filter dto.ServiceFilter) (*dto.ServiceListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Page > maxServicePage {
		filter.Page = maxServicePage
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultServiceLimit
	}
	if filter.Limit > maxServiceLimit {
		filter.Limit = maxServiceLimit
	}

	services, total, err := s.services.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ServiceResponse, 0, len(services))
	for _, svc := range services {
		items = append(items, withSummary(svc))
	}

	return &dto.ServiceListResponse{
		Services:   items,
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// GetService returns a single service with category, images and rating summary.
func (s *CatalogService) GetService(ctx context.Context, id string) (*dto.ServiceResponse, error) {
	serviceID, err := parseID(id, "service id")
	if err != nil {
		return nil, err
	}
	svc, err := s.services.FindByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	resp := withSummary(*svc)
	return &resp, nil
}

// CreateService validates and stores a new service owned by the actor.
func (s *CatalogService) CreateService(ctx context.Context, actor Actor, req dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	svc, err := s.buildService(ctx, req, category.ID)
	if err != nil {
		return nil, err
	}
	if actor.UserID != uuid.Nil {
		owner := actor.UserID
		svc.OwnerID = &owner
	}

	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	svc.Category = category

	resp := withSummary(*svc)
	return &resp, nil
}

// DeleteService removes a service when the actor owns it or is an admin.
func (s *CatalogService) DeleteService(ctx context.Context, actor Actor, id string) error {
	serviceID, err := parseID(id, "service id")
	if err != nil {
		return err
	}
	svc, err := s.services.FindByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	if !actor.CanModify(svc.OwnerID) {
		return ErrForbidden
	}
	if err := s.services.Delete(ctx, serviceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	return nil
}

// SetVerified grants or revokes the verified badge.
func (s *CatalogService) SetVerified(ctx context.Context, id string, verified bool) error {
	serviceID, err := parseID(id, "service id")
	if err != nil {
		return err
	}
	if err := s.services.SetVerified(ctx, serviceID, verified); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	return nil
}

var requiredCSVHeaders = []string{"name", "description", "category", "address", "city", "state"}

// ImportServicesCSV ingests services from a CSV reader. Rows that fail
// validation are skipped and counted; a malformed header rejects the file.
func (s *CatalogService) ImportServicesCSV(ctx context.Context, r io.Reader) (dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return dto.ImportResult{}, invalid("csv file is empty")
		}
		return dto.ImportResult{}, fmt.Errorf("read csv header: %w", err)
	}

	indexMap, err := buildHeaderIndex(header)
	if err != nil {
		return dto.ImportResult{}, err
	}

	var (
		records    []entity.Service
		result     dto.ImportResult
		rowNum     = 1
		categories = make(map[string]*entity.Category)
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dto.ImportResult{}, invalid(fmt.Sprintf("malformed csv near row %d", rowNum+1))
		}
		rowNum++
		result.Total++

		field := func(name string) string {
			idx, ok := indexMap[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		ref := strings.ToLower(field("category"))
		category, ok := categories[ref]
		if !ok {
			category, err = s.resolveCategory(ctx, ref)
			if err != nil && !errors.Is(err, ErrCategoryNotFound) && !isValidation(err) {
				return dto.ImportResult{}, err
			}
			categories[ref] = category
		}
		if category == nil {
			log.Ctx(ctx).Debug().Int("row", rowNum).Str("category", ref).Msg("skipping csv row with unknown category")
			result.Skipped++
			continue
		}

		req := dto.CreateServiceRequest{
			Name:        field("name"),
			Description: field("description"),
			Category:    ref,
			Address:     field("address"),
			City:        field("city"),
			State:       field("state"),
			ZipCode:     normalizeString(field("zip_code")),
			Phone:       normalizeString(field("phone")),
			Email:       normalizeString(field("email")),
			Website:     normalizeString(field("website")),
		}
		svc, err := s.buildService(ctx, req, category.ID)
		if err != nil {
			if !isValidation(err) {
				return dto.ImportResult{}, err
			}
			log.Ctx(ctx).Debug().Int("row", rowNum).Err(err).Msg("skipping invalid csv row")
			result.Skipped++
			continue
		}
		records = append(records, *svc)
	}

	inserted, err := s.services.CreateBatch(ctx, records)
	if err != nil {
		return dto.ImportResult{}, err
	}
	result.Inserted = inserted
	return result, nil
}

func (s *CatalogService) resolveCategory(ctx context.Context, ref string) (*entity.Category, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, invalid("category is required")
	}

	var (
		category *entity.Category
		err      error
	)
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		category, err = s.categories.FindByID(ctx, id)
	} else {
		category, err = s.categories.FindBySlug(ctx, strings.ToLower(ref))
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) buildService(ctx context.Context, req dto.CreateServiceRequest, categoryID uuid.UUID) (*entity.Service, error) {
	svc := &entity.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		CategoryID:  categoryID,
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		State:       strings.TrimSpace(req.State),
		IsActive:    true,
	}

	checks := []struct {
		value, field string
		min, max     int
	}{
		{svc.Name, "name", 2, 50},
		{svc.Description, "description", 10, 0},
		{svc.Address, "address", 5, 0},
		{svc.City, "city", 2, 0},
		{svc.State, "state", 2, 0},
	}
	for _, c := range checks {
		if err := validateLength(c.value, c.field, c.min, c.max); err != nil {
			return nil, err
		}
	}

	if zip := trimmedPtr(req.ZipCode); zip != nil {
		normalized, err := s.contacts.ZipCode(*zip)
		if err != nil {
			return nil, err
		}
		svc.ZipCode = &normalized
	}
	if phone := trimmedPtr(req.Phone); phone != nil {
		normalized, err := s.contacts.Phone(*phone)
		if err != nil {
			return nil, err
		}
		svc.Phone = &normalized
	}
	if email := trimmedPtr(req.Email); email != nil {
		normalized, err := s.contacts.Email(ctx, *email)
		if err != nil {
			return nil, err
		}
		svc.Email = &normalized
	}
	if website := trimmedPtr(req.Website); website != nil {
		normalized, err := s.contacts.Website(*website)
		if err != nil {
			return nil, err
		}
		svc.Website = &normalized
	}
	if req.PriceRange != nil {
		pr := entity.PriceRange(strings.TrimSpace(*req.PriceRange))
		if !pr.Valid() {
			return nil, invalid("price_range must be one of $, $$, $$$, $$$$")
		}
		svc.PriceRange = &pr
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, invalid("latitude and longitude must be provided together")
	}
	if req.Latitude != nil {
		if *req.Latitude < -90 || *req.Latitude > 90 || *req.Longitude < -180 || *req.Longitude > 180 {
			return nil, invalid("coordinates out of range")
		}
		svc.Latitude = req.Latitude
		svc.Longitude = req.Longitude
	}
	svc.OpeningHours = req.OpeningHours

	return svc, nil
}

func withSummary(svc entity.Service) dto.ServiceResponse {
	summary := rating.Summarize(svc.Ratings())
	return dto.ServiceResponse{
		Service:       svc,
		AverageRating: summary.Average,
		TotalReviews:  summary.Count,
	}
}

func buildHeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))] = i
	}

	missing := make([]string, 0)
	for _, required := range requiredCSVHeaders {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, invalid(fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}
	return index, nil
}

func isValidation(err error) bool {
	var vErr ValidationError
	return errors.As(err, &vErr)
}
