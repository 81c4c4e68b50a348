package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fixpoints/fixpoints-api/internal/dto"
	"github.com/fixpoints/fixpoints-api/internal/service"
)

// ServiceHandler exposes the service catalogue.
type ServiceHandler struct {
	catalog *service.CatalogService
}

// NewServiceHandler constructs a ServiceHandler.
func NewServiceHandler(catalog *service.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// List handles GET /api/services.
func (h *ServiceHandler) List(c echo.Context) error {
	filter := dto.ServiceFilter{
		Category: strings.TrimSpace(c.QueryParam("category")),
		Search:   strings.TrimSpace(c.QueryParam("search")),
		Location: strings.TrimSpace(c.QueryParam("location")),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}

	resp, err := h.catalog.ListServices(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err, "failed to fetch services")
	}
	return Success(c, http.StatusOK, resp)
}

// Get handles GET /api/services/:id.
func (h *ServiceHandler) Get(c echo.Context) error {
	resp, err := h.catalog.GetService(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "failed to fetch service")
	}
	return Success(c, http.StatusOK, resp)
}

// Create handles POST /api/services.
func (h *ServiceHandler) Create(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	var req dto.CreateServiceRequest
	if err := bind(c, &req); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	resp, err := h.catalog.CreateService(c.Request().Context(), actor, req)
	if err != nil {
		return respondError(c, err, "failed to create service")
	}
	return Success(c, http.StatusCreated, resp)
}

// Delete handles DELETE /api/services/:id.
func (h *ServiceHandler) Delete(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.catalog.DeleteService(c.Request().Context(), actor, c.Param("id")); err != nil {
		return respondError(c, err, "failed to delete service")
	}
	return Success(c, http.StatusNoContent, nil)
}

// queryInt returns the integer value of a query parameter or 0.
func queryInt(c echo.Context, name string) int {
	value, err := strconv.Atoi(strings.TrimSpace(c.QueryParam(name)))
	if err != nil {
		return 0
	}
	return value
}
