package port

import (
	"context"

	"entregas/internal/domain"
)

// DeliveryRepository defines the contract for delivery persistence.
//
// ExistsByKey is the dedup pre-check; the entregas table's uniqueness
// constraint on chavenfe remains the final authority. CreateFromInvoice
// inserts the delivery row and its line items as one transaction and
// returns domain.ErrDuplicateInvoiceKey when the constraint fires, so a
// lost dedup race surfaces as a duplicate outcome rather than an error.
type DeliveryRepository interface {
	ExistsByKey(ctx context.Context, invoiceKey string) (bool, error)
	CreateFromInvoice(ctx context.Context, d *domain.Delivery, items []domain.DeliveryItem) (int64, error)
	Create(ctx context.Context, d *domain.Delivery) error
	List(ctx context.Context) ([]domain.Delivery, error)
	ListItems(ctx context.Context, deliveryID int64) ([]domain.DeliveryItem, error)
}

// OperatorRepository defines the contract for back-office user persistence.
type OperatorRepository interface {
	Create(ctx context.Context, op *domain.Operator) error
	GetByID(ctx context.Context, id int64) (*domain.Operator, error)
	GetByUsername(ctx context.Context, username string) (*domain.Operator, error)
	List(ctx context.Context) ([]domain.Operator, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*domain.Operator, error)
}

// CompanyRepository defines the contract for company persistence.
type CompanyRepository interface {
	Create(ctx context.Context, co *domain.Company) error
	List(ctx context.Context) ([]domain.Company, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*domain.Company, error)
}

// DriverRepository defines the contract for driver persistence.
type DriverRepository interface {
	Create(ctx context.Context, dr *domain.Driver) error
	List(ctx context.Context) ([]domain.Driver, error)
}
