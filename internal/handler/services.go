package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aipaas/console/internal/domain"
	"github.com/aipaas/console/internal/dto"
	"github.com/aipaas/console/internal/pkg/pagination"
	"github.com/aipaas/console/internal/service"
	"github.com/aipaas/console/internal/validator"
)

// ServicesHandler handles service catalog endpoints
type ServicesHandler struct {
	catalog *service.CatalogService
	logger  *zap.Logger
}

// NewServicesHandler creates a new services handler
func NewServicesHandler(catalog *service.CatalogService, logger *zap.Logger) *ServicesHandler {
	return &ServicesHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers service catalog routes
func (h *ServicesHandler) RegisterRoutes(router fiber.Router) {
	services := router.Group("/services")
	services.Post("/", h.CreateService)
	services.Get("/", h.ListServices)
	services.Get("/:serviceId", h.GetService)
	services.Get("/:serviceId/detail", h.GetServiceDetail)
	services.Put("/:serviceId", h.UpdateService)
	services.Delete("/:serviceId", h.DeleteService)
	services.Get("/:serviceId/workflows", h.ListWorkflows)
	services.Get("/:serviceId/datasets", h.ListDatasets)
	services.Get("/:serviceId/models", h.ListModels)
	services.Get("/:serviceId/prompts", h.ListPrompts)
	services.Get("/:serviceId/monitoring", h.ListMonitoring)
}

// CreateService handles POST /api/v1/services
func (h *ServicesHandler) CreateService(c *fiber.Ctx) error {
	var req dto.CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	if err := validator.Validate(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			return validationErrorResponse(c, errs)
		}
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	svc, err := h.catalog.Create(c.Context(), req.Input())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create service")
	}

	return c.Status(fiber.StatusCreated).JSON(svc)
}

// ListServices handles GET /api/v1/services
func (h *ServicesHandler) ListServices(c *fiber.Ctx) error {
	filter := domain.ServiceFilter{Search: c.Query("search")}

	list, err := h.catalog.List(c.Context(), filter, ParsePage(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list services")
	}

	return c.JSON(list)
}

// GetService handles GET /api/v1/services/:serviceId
func (h *ServicesHandler) GetService(c *fiber.Ctx) error {
	serviceID, err := parseServiceID(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid service ID")
	}

	svc, err := h.catalog.Get(c.Context(), serviceID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get service")
	}

	return c.JSON(svc)
}

// GetServiceDetail handles GET /api/v1/services/:serviceId/detail
func (h *ServicesHandler) GetServiceDetail(c *fiber.Ctx) error {
	serviceID, err := parseServiceID(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid service ID")
	}

	detail, err := h.catalog.GetDetail(c.Context(), serviceID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get service detail")
	}

	return c.JSON(detail)
}

// UpdateService handles PUT /api/v1/services/:serviceId
func (h *ServicesHandler) UpdateService(c *fiber.Ctx) error {
	serviceID, err := parseServiceID(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid service ID")
	}

	var req dto.UpdateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	if err := validator.Validate(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			return validationErrorResponse(c, errs)
		}
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	svc, err := h.catalog.Update(c.Context(), serviceID, req.Input())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update service")
	}

	return c.JSON(svc)
}

// DeleteService handles DELETE /api/v1/services/:serviceId
func (h *ServicesHandler) DeleteService(c *fiber.Ctx) error {
	serviceID, err := parseServiceID(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid service ID")
	}

	if err := h.catalog.Delete(c.Context(), serviceID); err != nil {
		return respondError(c, h.logger, err, "Failed to delete service")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListWorkflows handles GET /api/v1/services/:serviceId/workflows
func (h *ServicesHandler) ListWorkflows(c *fiber.Ctx) error {
	return listChildren(c, h, "Failed to list workflows",
		func(c *fiber.Ctx, serviceID uuid.UUID, page pagination.Page) (any, int64, error) {
			items, total, err := h.catalog.ListWorkflows(c.Context(), serviceID, page)
			return items, total, err
		})
}

// ListDatasets handles GET /api/v1/services/:serviceId/datasets
func (h *ServicesHandler) ListDatasets(c *fiber.Ctx) error {
	return listChildren(c, h, "Failed to list datasets",
		func(c *fiber.Ctx, serviceID uuid.UUID, page pagination.Page) (any, int64, error) {
			items, total, err := h.catalog.ListDatasets(c.Context(), serviceID, page)
			return items, total, err
		})
}

// ListModels handles GET /api/v1/services/:serviceId/models
func (h *ServicesHandler) ListModels(c *fiber.Ctx) error {
	return listChildren(c, h, "Failed to list models",
		func(c *fiber.Ctx, serviceID uuid.UUID, page pagination.Page) (any, int64, error) {
			items, total, err := h.catalog.ListModels(c.Context(), serviceID, page)
			return items, total, err
		})
}

// ListPrompts handles GET /api/v1/services/:serviceId/prompts
func (h *ServicesHandler) ListPrompts(c *fiber.Ctx) error {
	return listChildren(c, h, "Failed to list prompts",
		func(c *fiber.Ctx, serviceID uuid.UUID, page pagination.Page) (any, int64, error) {
			items, total, err := h.catalog.ListPrompts(c.Context(), serviceID, page)
			return items, total, err
		})
}

// ListMonitoring handles GET /api/v1/services/:serviceId/monitoring
func (h *ServicesHandler) ListMonitoring(c *fiber.Ctx) error {
	return listChildren(c, h, "Failed to list monitoring",
		func(c *fiber.Ctx, serviceID uuid.UUID, page pagination.Page) (any, int64, error) {
			items, total, err := h.catalog.ListMonitoring(c.Context(), serviceID, page)
			return items, total, err
		})
}

// ChildList is the response envelope for child collection pages.
type ChildList struct {
	Data  any   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

// listChildren is the shared shape of the five child collection endpoints:
// parse the parent ID, page the child rows, wrap them in the envelope.
func listChildren(c *fiber.Ctx, h *ServicesHandler, fallback string, list func(*fiber.Ctx, uuid.UUID, pagination.Page) (any, int64, error)) error {
	serviceID, err := parseServiceID(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid service ID")
	}

	page := ParsePage(c)
	items, total, err := list(c, serviceID, page)
	if err != nil {
		return respondError(c, h.logger, err, fallback)
	}

	return c.JSON(ChildList{
		Data:  items,
		Total: total,
		Page:  page.Page,
		Size:  page.Size,
	})
}

func parseServiceID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("serviceId"))
}
