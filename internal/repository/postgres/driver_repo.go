package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"entregas/internal/domain"
	"entregas/internal/port"
)

type driverRepo struct {
	db *sqlx.DB
}

// NewDriverRepo creates a new PostgreSQL-backed DriverRepository.
func NewDriverRepo(db *sqlx.DB) port.DriverRepository {
	return &driverRepo{db: db}
}

func (r *driverRepo) Create(ctx context.Context, dr *domain.Driver) error {
	dr.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO motoristas (codemp, nomeusu, senha, telefone, email, ativo, nomecomp, codappmotorista, dhinclusao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING codmotorista`,
		dr.CompanyID, dr.Username, dr.Password, dr.Phone, dr.Email, dr.Active,
		dr.FullName, dr.AppDriverID, dr.CreatedAt,
	).Scan(&dr.ID)
	if err != nil {
		return fmt.Errorf("driverRepo.Create: %w", err)
	}
	return nil
}

func (r *driverRepo) List(ctx context.Context) ([]domain.Driver, error) {
	var out []domain.Driver
	err := r.db.SelectContext(ctx, &out, `
		SELECT codmotorista, codemp, codappmotorista, nomeusu, senha, telefone,
		       email, ativo, nomecomp, dhinclusao, dhexclusao
		FROM motoristas
		WHERE dhexclusao IS NULL
		ORDER BY nomeusu`)
	if err != nil {
		return nil, fmt.Errorf("driverRepo.List: %w", err)
	}
	return out, nil
}
