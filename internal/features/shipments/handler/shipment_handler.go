package handler

import (
	"strconv"

	"clearance-tracker/internal/features/shipments/domain"
	"clearance-tracker/internal/features/shipments/ports"

	"github.com/gofiber/fiber/v2"
)

const defaultPageSize = 20

// ShipmentHandler handles the admin HTTP endpoints for shipments.
type ShipmentHandler struct {
	service ports.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{
		service: service,
	}
}

// Register mounts the admin routes on r, which is expected to be auth-guarded.
func (h *ShipmentHandler) Register(r fiber.Router) {
	g := r.Group("/shipments")
	g.Post("/", h.CreateShipment)
	g.Get("/", h.ListShipments)
	g.Get("/:id", h.GetShipment)
	g.Patch("/:id", h.UpdateShipment)
	g.Delete("/:id", h.DeleteShipment)

	g.Post("/:id/progress", h.AppendEvent)
	g.Patch("/:id/progress/:index", h.EditEvent)
	g.Delete("/:id/progress/:index", h.RemoveEvent)
	g.Post("/:id/progress/:index/toggle", h.ToggleCompleted)
}

// CreateShipment godoc
// @Summary Create a shipment
// @Description Books a shipment with the standard seed timeline. A tracking code is generated unless one is supplied.
// @Tags shipments
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body domain.Draft true "Shipment draft"
// @Success 201 {object} domain.Shipment
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/shipments [post]
func (h *ShipmentHandler) CreateShipment(c *fiber.Ctx) error {
	var draft domain.Draft
	if err := c.BodyParser(&draft); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}

	shipment, err := h.service.Create(c.UserContext(), draft)
	if err != nil {
		return respondDomainError(c, err)
	}

	c.Location("/admin/shipments/" + shipment.ID)
	return c.Status(fiber.StatusCreated).JSON(shipment)
}

// ListShipments godoc
// @Summary List shipments
// @Description Returns one page of shipments, newest first.
// @Tags shipments
// @Produce json
// @Security BasicAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param page_size query int false "Items per page, max 100" default(20)
// @Success 200 {object} domain.Page
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/shipments [get]
func (h *ShipmentHandler) ListShipments(c *fiber.Ctx) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "page must be an integer")
	}
	size, err := queryInt(c, "page_size", defaultPageSize)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "page_size must be an integer")
	}

	params, err := domain.NewPageParams(page, size)
	if err != nil {
		return respondDomainError(c, err)
	}

	result, err := h.service.List(c.UserContext(), params)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(result)
}

// GetShipment godoc
// @Summary Get a shipment
// @Tags shipments
// @Produce json
// @Security BasicAuth
// @Param id path string true "Shipment ID"
// @Success 200 {object} domain.Shipment
// @Failure 404 {object} ErrorResponse
// @Router /admin/shipments/{id} [get]
func (h *ShipmentHandler) GetShipment(c *fiber.Ctx) error {
	shipment, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(shipment)
}

// UpdateShipment godoc
// @Summary Update a shipment
// @Description Merges the given fields. Identity, creation time and the timeline cannot be changed here.
// @Tags shipments
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path string true "Shipment ID"
// @Param request body domain.Patch true "Fields to change"
// @Success 200 {object} domain.Shipment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /admin/shipments/{id} [patch]
func (h *ShipmentHandler) UpdateShipment(c *fiber.Ctx) error {
	var patch domain.Patch
	if err := c.BodyParser(&patch); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}

	shipment, err := h.service.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(shipment)
}

// DeleteShipment godoc
// @Summary Delete a shipment
// @Tags shipments
// @Security BasicAuth
// @Param id path string true "Shipment ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /admin/shipments/{id} [delete]
func (h *ShipmentHandler) DeleteShipment(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AppendEvent godoc
// @Summary Append a progress event
// @Description Adds a milestone at the end of the timeline and re-derives status and current location.
// @Tags progress
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path string true "Shipment ID"
// @Param request body domain.EventInput true "Event"
// @Success 200 {object} domain.Shipment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/shipments/{id}/progress [post]
func (h *ShipmentHandler) AppendEvent(c *fiber.Ctx) error {
	var in domain.EventInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}

	shipment, err := h.service.AppendEvent(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(shipment)
}

// EditEvent godoc
// @Summary Edit a progress event
// @Tags progress
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path string true "Shipment ID"
// @Param index path int true "Event index (0-based)"
// @Param request body domain.EventPatch true "Fields to change"
// @Success 200 {object} domain.Shipment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/shipments/{id}/progress/{index} [patch]
func (h *ShipmentHandler) EditEvent(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "index must be an integer")
	}

	var patch domain.EventPatch
	if err := c.BodyParser(&patch); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}

	shipment, err := h.service.EditEvent(c.UserContext(), c.Params("id"), index, patch)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(shipment)
}

// RemoveEvent godoc
// @Summary Remove a progress event
// @Tags progress
// @Produce json
// @Security BasicAuth
// @Param id path string true "Shipment ID"
// @Param index path int true "Event index (0-based)"
// @Success 200 {object} domain.Shipment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/shipments/{id}/progress/{index} [delete]
func (h *ShipmentHandler) RemoveEvent(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "index must be an integer")
	}

	shipment, err := h.service.RemoveEvent(c.UserContext(), c.Params("id"), index)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(shipment)
}

// ToggleCompleted godoc
// @Summary Toggle the completed flag of a progress event
// @Tags progress
// @Produce json
// @Security BasicAuth
// @Param id path string true "Shipment ID"
// @Param index path int true "Event index (0-based)"
// @Success 200 {object} domain.Shipment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/shipments/{id}/progress/{index}/toggle [post]
func (h *ShipmentHandler) ToggleCompleted(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "index must be an integer")
	}

	shipment, err := h.service.ToggleCompleted(c.UserContext(), c.Params("id"), index)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(shipment)
}

// queryInt reads an integer query parameter, returning def when it is absent.
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
