package handler

import (
	"time"

	"clearance-tracker/internal/features/shipments/domain"
	"clearance-tracker/internal/features/shipments/ports"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// TrackingView is the public projection of a shipment. It carries no internal id.
type TrackingView struct {
	TrackingID        string                 `json:"tracking_id"`
	ServiceType       domain.ServiceType     `json:"service_type"`
	Origin            string                 `json:"origin"`
	Destination       string                 `json:"destination"`
	TypeOfShipment    string                 `json:"type_of_shipment"`
	Weight            float64                `json:"weight"`
	Product           string                 `json:"product"`
	PaymentMethod     string                 `json:"payment_method"`
	ReceiverDetails   domain.ReceiverDetails `json:"receiver_details"`
	ShipmentValue     decimal.Decimal        `json:"shipment_value"`
	Currency          string                 `json:"currency"`
	EstimatedDelivery *time.Time             `json:"estimated_delivery,omitempty"`
	CurrentLocation   string                 `json:"current_location"`
	CustomsStatus     domain.CustomsStatus   `json:"customs_status"`
	Status            domain.Status          `json:"status"`
	Progress          []domain.ProgressEvent `json:"progress"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// NewTrackingView projects s for the public tracking page.
func NewTrackingView(s *domain.Shipment) TrackingView {
	return TrackingView{
		TrackingID:        s.TrackingID,
		ServiceType:       s.ServiceType,
		Origin:            s.Origin,
		Destination:       s.Destination,
		TypeOfShipment:    s.TypeOfShipment,
		Weight:            s.Weight,
		Product:           s.Product,
		PaymentMethod:     s.PaymentMethod,
		ReceiverDetails:   s.ReceiverDetails,
		ShipmentValue:     s.ShipmentValue,
		Currency:          s.Currency,
		EstimatedDelivery: s.EstimatedDelivery,
		CurrentLocation:   s.CurrentLocation,
		CustomsStatus:     s.CustomsStatus,
		Status:            s.Status,
		Progress:          s.Progress,
		UpdatedAt:         s.UpdatedAt,
	}
}

// TrackingHandler serves the public tracking lookup.
type TrackingHandler struct {
	service ports.ShipmentService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(service ports.ShipmentService) *TrackingHandler {
	return &TrackingHandler{
		service: service,
	}
}

// Register mounts the public tracking route on r.
func (h *TrackingHandler) Register(r fiber.Router) {
	r.Get("/shipments/track/:trackingId", h.TrackShipment)
}

// TrackShipment godoc
// @Summary Track a shipment
// @Description Looks a shipment up by its public tracking code and returns its full timeline.
// @Tags tracking
// @Produce json
// @Param trackingId path string true "Tracking code, e.g. SCS-20251102-330"
// @Success 200 {object} TrackingView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shipments/track/{trackingId} [get]
func (h *TrackingHandler) TrackShipment(c *fiber.Ctx) error {
	trackingID := c.Params("trackingId")
	if trackingID == "" {
		return respondError(c, fiber.StatusBadRequest, "tracking id is required")
	}

	shipment, err := h.service.Track(c.UserContext(), trackingID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(NewTrackingView(shipment))
}
