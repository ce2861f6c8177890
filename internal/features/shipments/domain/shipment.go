package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType is the commercial service level a shipment was booked under.
type ServiceType string

const (
	ServiceTypeStandard ServiceType = "Standard"
	ServiceTypeExpress  ServiceType = "Express"
	ServiceTypePremium  ServiceType = "Premium"
)

// IsValid reports whether t is one of the known service levels.
func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceTypeStandard, ServiceTypeExpress, ServiceTypePremium:
		return true
	}
	return false
}

// CustomsStatus is the clearance flag set explicitly by an operator.
// It is never derived from the progress timeline.
type CustomsStatus string

const (
	CustomsStatusCleared CustomsStatus = "Cleared"
	CustomsStatusOnHold  CustomsStatus = "On Hold"
)

// IsValid reports whether c is a known customs state.
func (c CustomsStatus) IsValid() bool {
	return c == CustomsStatusCleared || c == CustomsStatusOnHold
}

// Status is the overall delivery state of a shipment.
type Status string

const (
	// StatusInTransit indicates the shipment is moving through the network.
	StatusInTransit Status = "In Transit"
	// StatusOutForDelivery indicates the shipment is on the last-mile vehicle.
	StatusOutForDelivery Status = "Out for Delivery"
	// StatusDelivered indicates the receiver has the shipment.
	StatusDelivered Status = "Delivered"
	// StatusException indicates an operator flagged a problem with the shipment.
	StatusException Status = "Exception"
)

// IsValid reports whether s is a known shipment status.
func (s Status) IsValid() bool {
	switch s {
	case StatusInTransit, StatusOutForDelivery, StatusDelivered, StatusException:
		return true
	}
	return false
}

// ReceiverDetails holds the consignee's address and contact data.
type ReceiverDetails struct {
	Name          string `json:"name" validate:"required"`
	AddressLine1  string `json:"address_line1" validate:"required"`
	AddressLine2  string `json:"address_line2,omitempty"`
	City          string `json:"city" validate:"required"`
	StateProvince string `json:"state_province,omitempty"`
	ZipCode       string `json:"zip_code" validate:"required"`
	Country       string `json:"country" validate:"required"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
}

// ProgressEvent is one milestone in a shipment's timeline.
// A nil Timestamp marks a milestone that has not happened yet. Completed is
// tracked separately so an operator can tick off a milestone without a time.
type ProgressEvent struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Location    string     `json:"location" validate:"required"`
	Timestamp   *time.Time `json:"timestamp"`
	Completed   bool       `json:"completed"`
}

// Shipment is one physical consignment together with its progress timeline.
type Shipment struct {
	// ID is the internal identifier. It is never shown on the public tracking page.
	ID string `json:"id" validate:"required"`
	// TrackingID is the public code handed to customers.
	TrackingID string `json:"tracking_id" validate:"required,tracking_id"`

	ServiceType    ServiceType `json:"service_type" validate:"service_type"`
	Origin         string      `json:"origin" validate:"required"`
	Destination    string      `json:"destination" validate:"required"`
	TypeOfShipment string      `json:"type_of_shipment"`
	// Weight is expressed in kilograms.
	Weight        float64 `json:"weight" validate:"gt=0"`
	Product       string  `json:"product" validate:"required"`
	PaymentMethod string  `json:"payment_method"`

	ReceiverDetails ReceiverDetails `json:"receiver_details"`

	ShipmentValue     decimal.Decimal `json:"shipment_value" validate:"-"`
	Currency          string          `json:"currency" validate:"required,iso4217"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`

	// CurrentLocation follows the location of the last progress event.
	CurrentLocation string        `json:"current_location"`
	CustomsStatus   CustomsStatus `json:"customs_status" validate:"customs_status"`
	// Status is derived from the timeline unless an operator overrides it.
	Status   Status          `json:"status" validate:"shipment_status"`
	Progress []ProgressEvent `json:"progress" validate:"min=1,dive"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// Version increments on every persisted change.
	Version int64 `json:"version"`
}

// LastEvent returns the most recent progress event, or nil for an empty timeline.
func (s *Shipment) LastEvent() *ProgressEvent {
	if len(s.Progress) == 0 {
		return nil
	}
	return &s.Progress[len(s.Progress)-1]
}

// Clone returns a deep copy of s that shares no mutable state with it.
func (s *Shipment) Clone() *Shipment {
	c := *s
	c.EstimatedDelivery = copyTime(s.EstimatedDelivery)
	c.Progress = make([]ProgressEvent, len(s.Progress))
	for i, ev := range s.Progress {
		ev.Timestamp = copyTime(ev.Timestamp)
		c.Progress[i] = ev
	}
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
