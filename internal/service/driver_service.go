package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"entregas/internal/domain"
	"entregas/internal/port"
)

// DriverCreateInput is the DTO for driver creation.
type DriverCreateInput struct {
	CompanyID   int64   `json:"codemp" binding:"required"`
	Username    string  `json:"nomeusu" binding:"required"`
	Password    string  `json:"senha" binding:"required"`
	Phone       *string `json:"telefone"`
	Email       *string `json:"email"`
	Active      string  `json:"ativo"`
	FullName    *string `json:"nomecomp"`
	AppDriverID *string `json:"codappmotorista"`
}

// DriverService manages delivery drivers.
type DriverService interface {
	Create(ctx context.Context, in DriverCreateInput) (*domain.Driver, error)
	List(ctx context.Context) ([]domain.Driver, error)
}

type driverService struct {
	drivers port.DriverRepository
}

// NewDriverService creates a new DriverService implementation.
func NewDriverService(drivers port.DriverRepository) DriverService {
	return &driverService{drivers: drivers}
}

func (s *driverService) Create(ctx context.Context, in DriverCreateInput) (*domain.Driver, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	active := in.Active
	if active == "" {
		active = "S"
	}
	dr := &domain.Driver{
		CompanyID:   in.CompanyID,
		Username:    in.Username,
		Password:    string(hash),
		Phone:       in.Phone,
		Email:       in.Email,
		Active:      active,
		FullName:    in.FullName,
		AppDriverID: in.AppDriverID,
	}
	if err := s.drivers.Create(ctx, dr); err != nil {
		return nil, err
	}
	return dr, nil
}

func (s *driverService) List(ctx context.Context) ([]domain.Driver, error) {
	return s.drivers.List(ctx)
}
