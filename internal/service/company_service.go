package service

import (
	"context"

	"entregas/internal/domain"
	"entregas/internal/port"
)

// cnpjLength is the fixed length of the national company tax id.
const cnpjLength = 14

// CompanyCreateInput is the DTO for company creation.
type CompanyCreateInput struct {
	CNPJ           string   `json:"cnpj" binding:"required"`
	CorporateName  string   `json:"razaosocial" binding:"required"`
	TradeName      *string  `json:"nomefantasia"`
	StateTaxID     *string  `json:"inscricaoestadual"`
	ContactEmail   *string  `json:"emailcontato"`
	FinancialEmail *string  `json:"emailfinanceiro"`
	PostalCode     *string  `json:"cep"`
	Street         *string  `json:"endereco"`
	StreetNumber   *string  `json:"numero"`
	Neighborhood   *string  `json:"bairro"`
	City           *string  `json:"cidade"`
	State          *string  `json:"estado"`
	Complement     *string  `json:"complemento"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

// CompanyUpdateInput is the DTO for partial company updates.
type CompanyUpdateInput struct {
	CNPJ           *string  `json:"cnpj"`
	CorporateName  *string  `json:"razaosocial"`
	TradeName      *string  `json:"nomefantasia"`
	StateTaxID     *string  `json:"inscricaoestadual"`
	ContactEmail   *string  `json:"emailcontato"`
	FinancialEmail *string  `json:"emailfinanceiro"`
	PostalCode     *string  `json:"cep"`
	Street         *string  `json:"endereco"`
	StreetNumber   *string  `json:"numero"`
	Neighborhood   *string  `json:"bairro"`
	City           *string  `json:"cidade"`
	State          *string  `json:"estado"`
	Complement     *string  `json:"complemento"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

// CompanyService manages registered companies.
type CompanyService interface {
	Create(ctx context.Context, in CompanyCreateInput) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
	Update(ctx context.Context, id int64, in CompanyUpdateInput) (*domain.Company, error)
}

type companyService struct {
	companies port.CompanyRepository
}

// NewCompanyService creates a new CompanyService implementation.
func NewCompanyService(companies port.CompanyRepository) CompanyService {
	return &companyService{companies: companies}
}

func (s *companyService) Create(ctx context.Context, in CompanyCreateInput) (*domain.Company, error) {
	if len(in.CNPJ) != cnpjLength {
		return nil, domain.ErrInvalidCNPJ
	}

	co := &domain.Company{
		CNPJ:           in.CNPJ,
		CorporateName:  in.CorporateName,
		TradeName:      in.TradeName,
		StateTaxID:     in.StateTaxID,
		ContactEmail:   in.ContactEmail,
		FinancialEmail: in.FinancialEmail,
		PostalCode:     in.PostalCode,
		Street:         in.Street,
		StreetNumber:   in.StreetNumber,
		Neighborhood:   in.Neighborhood,
		City:           in.City,
		State:          in.State,
		Complement:     in.Complement,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		Active:         "S",
	}
	if err := s.companies.Create(ctx, co); err != nil {
		return nil, err
	}
	return co, nil
}

func (s *companyService) List(ctx context.Context) ([]domain.Company, error) {
	return s.companies.List(ctx)
}

func (s *companyService) Update(ctx context.Context, id int64, in CompanyUpdateInput) (*domain.Company, error) {
	if in.CNPJ != nil && len(*in.CNPJ) != cnpjLength {
		return nil, domain.ErrInvalidCNPJ
	}

	fields := map[string]any{}
	put := func(col string, v any) { fields[col] = v }
	if in.CNPJ != nil {
		put("cnpj", *in.CNPJ)
	}
	if in.CorporateName != nil {
		put("razaosocial", *in.CorporateName)
	}
	if in.TradeName != nil {
		put("nomefantasia", *in.TradeName)
	}
	if in.StateTaxID != nil {
		put("inscricaoestadual", *in.StateTaxID)
	}
	if in.ContactEmail != nil {
		put("emailcontato", *in.ContactEmail)
	}
	if in.FinancialEmail != nil {
		put("emailfinanceiro", *in.FinancialEmail)
	}
	if in.PostalCode != nil {
		put("cep", *in.PostalCode)
	}
	if in.Street != nil {
		put("endereco", *in.Street)
	}
	if in.StreetNumber != nil {
		put("numero", *in.StreetNumber)
	}
	if in.Neighborhood != nil {
		put("bairro", *in.Neighborhood)
	}
	if in.City != nil {
		put("cidade", *in.City)
	}
	if in.State != nil {
		put("estado", *in.State)
	}
	if in.Complement != nil {
		put("complemento", *in.Complement)
	}
	if in.Latitude != nil {
		put("latitude", *in.Latitude)
	}
	if in.Longitude != nil {
		put("longitude", *in.Longitude)
	}
	return s.companies.Update(ctx, id, fields)
}
