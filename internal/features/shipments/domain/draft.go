package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is applied when a draft does not name a currency.
const DefaultCurrency = "USD"

// Draft is the operator input used to book a new shipment.
// TrackingID, CurrentLocation and Status are optional overrides.
type Draft struct {
	TrackingID        string          `json:"tracking_id,omitempty"`
	ServiceType       ServiceType     `json:"service_type"`
	Origin            string          `json:"origin"`
	Destination       string          `json:"destination"`
	TypeOfShipment    string          `json:"type_of_shipment"`
	Weight            float64         `json:"weight"`
	Product           string          `json:"product"`
	PaymentMethod     string          `json:"payment_method"`
	ReceiverDetails   ReceiverDetails `json:"receiver_details"`
	ShipmentValue     decimal.Decimal `json:"shipment_value"`
	Currency          string          `json:"currency,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
	CurrentLocation   string          `json:"current_location,omitempty"`
	CustomsStatus     CustomsStatus   `json:"customs_status"`
	Status            Status          `json:"status,omitempty"`
}

// NewShipment builds a shipment from d with the standard seed timeline.
// The result is not validated; call ValidateShipment before persisting it.
func NewShipment(d Draft, id, trackingID string, now time.Time) *Shipment {
	now = now.UTC()
	s := &Shipment{
		ID:                id,
		TrackingID:        trackingID,
		ServiceType:       d.ServiceType,
		Origin:            strings.TrimSpace(d.Origin),
		Destination:       strings.TrimSpace(d.Destination),
		TypeOfShipment:    strings.TrimSpace(d.TypeOfShipment),
		Weight:            d.Weight,
		Product:           strings.TrimSpace(d.Product),
		PaymentMethod:     strings.TrimSpace(d.PaymentMethod),
		ReceiverDetails:   d.ReceiverDetails.normalized(),
		ShipmentValue:     d.ShipmentValue,
		Currency:          strings.ToUpper(strings.TrimSpace(d.Currency)),
		EstimatedDelivery: copyTime(d.EstimatedDelivery),
		CustomsStatus:     d.CustomsStatus,
		Status:            StatusInTransit,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if s.ServiceType == "" {
		s.ServiceType = ServiceTypeStandard
	}
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
	if s.CustomsStatus == "" {
		s.CustomsStatus = CustomsStatusOnHold
	}

	s.Progress = SeedTimeline(s.Origin, s.Destination, s.CustomsStatus, now)
	s.CurrentLocation = s.Origin

	if loc := strings.TrimSpace(d.CurrentLocation); loc != "" {
		s.CurrentLocation = loc
	}
	if d.Status != "" {
		s.Status = d.Status
	}
	return s
}

// SeedTimeline returns the milestones every new shipment starts with.
// Customs clearance is pre-completed only when the shipment is already cleared.
func SeedTimeline(origin, destination string, customs CustomsStatus, now time.Time) []ProgressEvent {
	stamp := func() *time.Time {
		t := now
		return &t
	}

	customsEvent := ProgressEvent{
		Title:       "Customs Clearance",
		Description: "Awaiting customs inspection and duty assessment.",
		Location:    destination,
	}
	if customs == CustomsStatusCleared {
		customsEvent.Description = "Shipment cleared by customs."
		customsEvent.Timestamp = stamp()
		customsEvent.Completed = true
	}

	return []ProgressEvent{
		{
			Title:       "Package Received",
			Description: "Shipment received at origin facility.",
			Location:    origin,
			Timestamp:   stamp(),
			Completed:   true,
		},
		{
			Title:       "In Transit",
			Description: "Shipment departed origin facility.",
			Location:    origin,
			Timestamp:   stamp(),
			Completed:   true,
		},
		customsEvent,
		{
			Title:       "Out for Delivery",
			Description: "Shipment will be handed to the local courier.",
			Location:    destination,
		},
		{
			Title:       "Delivered",
			Description: "Shipment delivered to receiver.",
			Location:    destination,
		},
	}
}

// Patch carries a partial update of a shipment's own fields.
// Nil fields are left untouched. Identity, creation time and the timeline
// cannot be changed through a patch.
type Patch struct {
	ServiceType       *ServiceType     `json:"service_type,omitempty"`
	Origin            *string          `json:"origin,omitempty"`
	Destination       *string          `json:"destination,omitempty"`
	TypeOfShipment    *string          `json:"type_of_shipment,omitempty"`
	Weight            *float64         `json:"weight,omitempty"`
	Product           *string          `json:"product,omitempty"`
	PaymentMethod     *string          `json:"payment_method,omitempty"`
	ReceiverDetails   *ReceiverDetails `json:"receiver_details,omitempty"`
	ShipmentValue     *decimal.Decimal `json:"shipment_value,omitempty"`
	Currency          *string          `json:"currency,omitempty"`
	EstimatedDelivery *time.Time       `json:"estimated_delivery,omitempty"`
	CurrentLocation   *string          `json:"current_location,omitempty"`
	CustomsStatus     *CustomsStatus   `json:"customs_status,omitempty"`
	// Status forces the overall status until the next timeline change re-derives it.
	Status *Status `json:"status,omitempty"`
}

// Apply merges the non-nil fields of p into s.
func (p Patch) Apply(s *Shipment) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}

	if p.ServiceType != nil {
		s.ServiceType = *p.ServiceType
	}
	setString(&s.Origin, p.Origin)
	setString(&s.Destination, p.Destination)
	setString(&s.TypeOfShipment, p.TypeOfShipment)
	if p.Weight != nil {
		s.Weight = *p.Weight
	}
	setString(&s.Product, p.Product)
	setString(&s.PaymentMethod, p.PaymentMethod)
	if p.ReceiverDetails != nil {
		s.ReceiverDetails = p.ReceiverDetails.normalized()
	}
	if p.ShipmentValue != nil {
		s.ShipmentValue = *p.ShipmentValue
	}
	if p.Currency != nil {
		s.Currency = strings.ToUpper(strings.TrimSpace(*p.Currency))
	}
	if p.EstimatedDelivery != nil {
		s.EstimatedDelivery = copyTime(p.EstimatedDelivery)
	}
	setString(&s.CurrentLocation, p.CurrentLocation)
	if p.CustomsStatus != nil {
		s.CustomsStatus = *p.CustomsStatus
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
}

func (r ReceiverDetails) normalized() ReceiverDetails {
	return ReceiverDetails{
		Name:          strings.TrimSpace(r.Name),
		AddressLine1:  strings.TrimSpace(r.AddressLine1),
		AddressLine2:  strings.TrimSpace(r.AddressLine2),
		City:          strings.TrimSpace(r.City),
		StateProvince: strings.TrimSpace(r.StateProvince),
		ZipCode:       strings.TrimSpace(r.ZipCode),
		Country:       strings.TrimSpace(r.Country),
		Phone:         strings.TrimSpace(r.Phone),
		Email:         strings.TrimSpace(r.Email),
	}
}
