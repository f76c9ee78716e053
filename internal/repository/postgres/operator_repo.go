package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"entregas/internal/domain"
	"entregas/internal/port"
)

const operatorColumns = "codusu, codemp, nomeusu, senha, email, ativo, nomecomp, dhinclusao, dhexclusao"

type operatorRepo struct {
	db *sqlx.DB
}

// NewOperatorRepo creates a new PostgreSQL-backed OperatorRepository.
func NewOperatorRepo(db *sqlx.DB) port.OperatorRepository {
	return &operatorRepo{db: db}
}

func (r *operatorRepo) Create(ctx context.Context, op *domain.Operator) error {
	op.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO usuarios (codemp, nomeusu, senha, email, ativo, nomecomp, dhinclusao)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING codusu`,
		op.CompanyID, op.Username, op.PasswordHash, op.Email, op.Active, op.FullName, op.CreatedAt,
	).Scan(&op.ID)
	if err != nil {
		return fmt.Errorf("operatorRepo.Create: %w", err)
	}
	return nil
}

func (r *operatorRepo) GetByID(ctx context.Context, id int64) (*domain.Operator, error) {
	var op domain.Operator
	err := r.db.GetContext(ctx, &op,
		"SELECT "+operatorColumns+" FROM usuarios WHERE codusu = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("operatorRepo.GetByID: %w", err)
	}
	return &op, nil
}

func (r *operatorRepo) GetByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	var op domain.Operator
	err := r.db.GetContext(ctx, &op,
		"SELECT "+operatorColumns+" FROM usuarios WHERE nomeusu = $1 AND dhexclusao IS NULL", username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("operatorRepo.GetByUsername: %w", err)
	}
	return &op, nil
}

func (r *operatorRepo) List(ctx context.Context) ([]domain.Operator, error) {
	var out []domain.Operator
	err := r.db.SelectContext(ctx, &out,
		"SELECT "+operatorColumns+" FROM usuarios WHERE dhexclusao IS NULL ORDER BY codusu")
	if err != nil {
		return nil, fmt.Errorf("operatorRepo.List: %w", err)
	}
	return out, nil
}

// Update applies a partial update: only the columns present in fields are
// touched. Column names are whitelisted by the service layer.
func (r *operatorRepo) Update(ctx context.Context, id int64, fields map[string]any) (*domain.Operator, error) {
	set, args := buildSet(fields)
	if len(set) == 0 {
		return nil, domain.ErrNoUpdatableFields
	}
	args = append(args, id)

	var op domain.Operator
	query := fmt.Sprintf("UPDATE usuarios SET %s WHERE codusu = $%d RETURNING %s",
		strings.Join(set, ", "), len(args), operatorColumns)
	err := r.db.GetContext(ctx, &op, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("operatorRepo.Update: %w", err)
	}
	return &op, nil
}

// buildSet turns a column→value map into ordered SET clauses and args.
// Iteration order of the clauses is stable for deterministic queries.
func buildSet(fields map[string]any) ([]string, []any) {
	cols := make([]string, 0, len(fields))
	for col := range fields {
		cols = append(cols, col)
	}
	// map order is random; sort for stable statements
	sort.Strings(cols)

	set := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for i, col := range cols {
		set = append(set, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, fields[col])
	}
	return set, args
}
