package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"entregas/internal/domain"
	"entregas/internal/port"
)

// DeliveryCreateInput is the DTO for manual delivery creation, mirroring
// the columns the dispatch frontend submits.
type DeliveryCreateInput struct {
	CompanyID      *int64              `json:"codemp"`
	LoadOrder      *string             `json:"ordemcarga"`
	InvoiceNumber  *string             `json:"numnota"`
	RecipientTaxID *string             `json:"cgccpf"`
	Street         *string             `json:"endereco"`
	StreetNumber   *string             `json:"numend"`
	City           *string             `json:"cidade"`
	State          *string             `json:"estado"`
	InvoiceKey     string              `json:"chavenfe" binding:"required"`
	TotalValue     decimal.NullDecimal `json:"vlrnota"`
	RecipientName  *string             `json:"nomeparc"`
	CorporateName  *string             `json:"razaosocial"`
	Neighborhood   *string             `json:"nomebairro"`
	Phone          *string             `json:"telefone"`
	LoadSequence   *int                `json:"seqcarga"`
	DocType        *string             `json:"tipodoc"`
	DriverID       *int64              `json:"codmotorista"`
	Status         *string             `json:"status"`
	Signed         *string             `json:"assinado"`
	DeliveryDate   *time.Time          `json:"data_entrega"`
	CreatedBy      *int64              `json:"codusuinclusao"`
}

// DeliveryService manages delivery records outside the import pipeline.
type DeliveryService interface {
	Create(ctx context.Context, in DeliveryCreateInput) (*domain.Delivery, error)
	List(ctx context.Context) ([]domain.Delivery, error)
	ListItems(ctx context.Context, deliveryID int64) ([]domain.DeliveryItem, error)
}

type deliveryService struct {
	deliveries port.DeliveryRepository
}

// NewDeliveryService creates a new DeliveryService implementation.
func NewDeliveryService(deliveries port.DeliveryRepository) DeliveryService {
	return &deliveryService{deliveries: deliveries}
}

func (s *deliveryService) Create(ctx context.Context, in DeliveryCreateInput) (*domain.Delivery, error) {
	d := &domain.Delivery{
		CompanyID:      in.CompanyID,
		LoadOrder:      in.LoadOrder,
		InvoiceNumber:  in.InvoiceNumber,
		RecipientTaxID: in.RecipientTaxID,
		Street:         in.Street,
		StreetNumber:   in.StreetNumber,
		City:           in.City,
		State:          in.State,
		InvoiceKey:     in.InvoiceKey,
		TotalValue:     in.TotalValue,
		RecipientName:  in.RecipientName,
		CorporateName:  in.CorporateName,
		Neighborhood:   in.Neighborhood,
		Phone:          in.Phone,
		LoadSequence:   in.LoadSequence,
		DocType:        in.DocType,
		DriverID:       in.DriverID,
		Status:         in.Status,
		Signed:         in.Signed,
		DeliveryDate:   in.DeliveryDate,
		CreatedBy:      in.CreatedBy,
	}
	if err := s.deliveries.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *deliveryService) List(ctx context.Context) ([]domain.Delivery, error) {
	return s.deliveries.List(ctx)
}

func (s *deliveryService) ListItems(ctx context.Context, deliveryID int64) ([]domain.DeliveryItem, error) {
	return s.deliveries.ListItems(ctx, deliveryID)
}
