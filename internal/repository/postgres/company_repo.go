package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"entregas/internal/domain"
	"entregas/internal/port"
)

const companyColumns = `codemp, cnpj, razaosocial, nomefantasia, inscricaoestadual,
	emailcontato, emailfinanceiro, cep, endereco, numero, bairro, cidade, estado,
	complemento, latitude, longitude, ativo, dhinclusao, dhexclusao`

type companyRepo struct {
	db *sqlx.DB
}

// NewCompanyRepo creates a new PostgreSQL-backed CompanyRepository.
func NewCompanyRepo(db *sqlx.DB) port.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, co *domain.Company) error {
	co.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO empresas (cnpj, razaosocial, nomefantasia, inscricaoestadual,
			emailcontato, emailfinanceiro, cep, endereco, numero, bairro, cidade,
			estado, complemento, latitude, longitude, dhinclusao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING codemp`,
		co.CNPJ, co.CorporateName, co.TradeName, co.StateTaxID, co.ContactEmail,
		co.FinancialEmail, co.PostalCode, co.Street, co.StreetNumber, co.Neighborhood,
		co.City, co.State, co.Complement, co.Latitude, co.Longitude, co.CreatedAt,
	).Scan(&co.ID)
	if err != nil {
		return fmt.Errorf("companyRepo.Create: %w", err)
	}
	return nil
}

func (r *companyRepo) List(ctx context.Context) ([]domain.Company, error) {
	var out []domain.Company
	err := r.db.SelectContext(ctx, &out,
		"SELECT "+companyColumns+" FROM empresas WHERE dhexclusao IS NULL ORDER BY razaosocial")
	if err != nil {
		return nil, fmt.Errorf("companyRepo.List: %w", err)
	}
	return out, nil
}

func (r *companyRepo) Update(ctx context.Context, id int64, fields map[string]any) (*domain.Company, error) {
	set, args := buildSet(fields)
	if len(set) == 0 {
		return nil, domain.ErrNoUpdatableFields
	}
	args = append(args, id)

	var co domain.Company
	query := fmt.Sprintf("UPDATE empresas SET %s WHERE codemp = $%d RETURNING %s",
		strings.Join(set, ", "), len(args), companyColumns)
	err := r.db.GetContext(ctx, &co, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("companyRepo.Update: %w", err)
	}
	return &co, nil
}
