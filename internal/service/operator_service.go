package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"entregas/internal/domain"
	"entregas/internal/port"
)

// OperatorCreateInput is the DTO for operator creation.
type OperatorCreateInput struct {
	CompanyID int64   `json:"codemp" binding:"required"`
	Username  string  `json:"nomeusu" binding:"required"`
	Password  string  `json:"senha" binding:"required"`
	Email     *string `json:"email"`
	Active    string  `json:"ativo"`
	FullName  *string `json:"nomecomp"`
}

// OperatorUpdateInput is the DTO for partial operator updates. Only fields
// present in the request body are applied.
type OperatorUpdateInput struct {
	CompanyID *int64  `json:"codemp"`
	Username  *string `json:"nomeusu"`
	Password  *string `json:"senha"`
	Email     *string `json:"email"`
	Active    *string `json:"ativo"`
	FullName  *string `json:"nomecomp"`
	DeletedAt *string `json:"dhexclusao"`
}

// OperatorService manages back-office users.
type OperatorService interface {
	Create(ctx context.Context, in OperatorCreateInput) (*domain.Operator, error)
	GetByID(ctx context.Context, id int64) (*domain.Operator, error)
	List(ctx context.Context) ([]domain.Operator, error)
	Update(ctx context.Context, id int64, in OperatorUpdateInput) (*domain.Operator, error)
}

type operatorService struct {
	operators port.OperatorRepository
}

// NewOperatorService creates a new OperatorService implementation.
func NewOperatorService(operators port.OperatorRepository) OperatorService {
	return &operatorService{operators: operators}
}

func (s *operatorService) Create(ctx context.Context, in OperatorCreateInput) (*domain.Operator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	active := in.Active
	if active == "" {
		active = "S"
	}

	op := &domain.Operator{
		CompanyID:    in.CompanyID,
		Username:     in.Username,
		PasswordHash: string(hash),
		Email:        in.Email,
		Active:       active,
		FullName:     in.FullName,
	}
	if err := s.operators.Create(ctx, op); err != nil {
		return nil, err
	}
	return op, nil
}

func (s *operatorService) GetByID(ctx context.Context, id int64) (*domain.Operator, error) {
	return s.operators.GetByID(ctx, id)
}

func (s *operatorService) List(ctx context.Context) ([]domain.Operator, error) {
	return s.operators.List(ctx)
}

func (s *operatorService) Update(ctx context.Context, id int64, in OperatorUpdateInput) (*domain.Operator, error) {
	fields := map[string]any{}
	if in.CompanyID != nil {
		fields["codemp"] = *in.CompanyID
	}
	if in.Username != nil {
		fields["nomeusu"] = *in.Username
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		fields["senha"] = string(hash)
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.Active != nil {
		fields["ativo"] = *in.Active
	}
	if in.FullName != nil {
		fields["nomecomp"] = *in.FullName
	}
	if in.DeletedAt != nil {
		fields["dhexclusao"] = *in.DeletedAt
	}
	return s.operators.Update(ctx, id, fields)
}
