package ports

import (
	"context"

	"clearance-tracker/internal/features/shipments/domain"
)

// MutateFunc changes a shipment in place. Returning an error aborts the
// update and nothing is stored. It may run more than once when the record
// changes underneath it, so it must not have side effects.
type MutateFunc func(s *domain.Shipment) error

// ShipmentRepository defines the secondary port for shipment storage.
type ShipmentRepository interface {
	// Create stores a new shipment. It fails with domain.ErrConflict when the
	// tracking id or the internal id is already taken.
	Create(ctx context.Context, s *domain.Shipment) error
	GetByID(ctx context.Context, id string) (*domain.Shipment, error)
	GetByTrackingID(ctx context.Context, trackingID string) (*domain.Shipment, error)
	// List returns one page of shipments, newest first.
	List(ctx context.Context, p domain.PageParams) (*domain.Page, error)
	// Update applies fn to the current record and stores the result atomically.
	Update(ctx context.Context, id string, fn MutateFunc) (*domain.Shipment, error)
	// Delete removes a shipment together with its tracking index entry.
	// It returns the removed record.
	Delete(ctx context.Context, id string) (*domain.Shipment, error)
	Ping(ctx context.Context) error
}

// ShipmentService defines the primary port for shipment operations.
type ShipmentService interface {
	Create(ctx context.Context, d domain.Draft) (*domain.Shipment, error)
	GetByID(ctx context.Context, id string) (*domain.Shipment, error)
	// Track resolves a public tracking code.
	Track(ctx context.Context, trackingID string) (*domain.Shipment, error)
	List(ctx context.Context, p domain.PageParams) (*domain.Page, error)
	Update(ctx context.Context, id string, p domain.Patch) (*domain.Shipment, error)
	Delete(ctx context.Context, id string) error

	AppendEvent(ctx context.Context, id string, in domain.EventInput) (*domain.Shipment, error)
	EditEvent(ctx context.Context, id string, index int, p domain.EventPatch) (*domain.Shipment, error)
	RemoveEvent(ctx context.Context, id string, index int) (*domain.Shipment, error)
	ToggleCompleted(ctx context.Context, id string, index int) (*domain.Shipment, error)
}
