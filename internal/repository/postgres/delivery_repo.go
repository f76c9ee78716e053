package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"entregas/internal/domain"
	"entregas/internal/port"
)

type deliveryRepo struct {
	db *sqlx.DB
}

// NewDeliveryRepo creates a new PostgreSQL-backed DeliveryRepository.
func NewDeliveryRepo(db *sqlx.DB) port.DeliveryRepository {
	return &deliveryRepo{db: db}
}

func (r *deliveryRepo) ExistsByKey(ctx context.Context, invoiceKey string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM entregas WHERE chavenfe = $1)", invoiceKey)
	if err != nil {
		return false, fmt.Errorf("deliveryRepo.ExistsByKey: %w", err)
	}
	return exists, nil
}

// CreateFromInvoice inserts the delivery row and, when present, all of its
// line items in one batched statement, inside a single transaction. The
// line-items table references the generated delivery id, so a failed item
// insert rolls back the delivery row as well.
func (r *deliveryRepo) CreateFromInvoice(ctx context.Context, d *domain.Delivery, items []domain.DeliveryItem) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("deliveryRepo.CreateFromInvoice begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowxContext(ctx, `INSERT INTO entregas (
			numnota, cgccpf, endereco, numend, cidade, estado,
			chavenfe, vlrnota, nomeparc, razaosocial, nomebairro, telefone
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		d.InvoiceNumber, d.RecipientTaxID, d.Street, d.StreetNumber, d.City, d.State,
		d.InvoiceKey, d.TotalValue, d.RecipientName, d.CorporateName, d.Neighborhood, d.Phone,
	).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "chavenfe") {
			return 0, domain.ErrDuplicateInvoiceKey
		}
		return 0, fmt.Errorf("deliveryRepo.CreateFromInvoice insert: %w", err)
	}

	if len(items) > 0 {
		if err := insertItems(ctx, tx, id, items); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("deliveryRepo.CreateFromInvoice commit: %w", err)
	}
	return id, nil
}

func insertItems(ctx context.Context, tx *sqlx.Tx, deliveryID int64, items []domain.DeliveryItem) error {
	cols := []string{
		"id_entrega", "n_item", "c_prod", "x_prod", "ncm", "cest", "cfop", "u_com",
		"q_com", "v_un_com", "v_prod", "cean", "cean_trib", "u_trib", "q_trib",
		"v_un_trib", "v_frete", "v_desc", "v_outro", "ind_tot",
	}

	placeholders := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*len(cols))
	for i, it := range items {
		base := i * len(cols)
		ph := make([]string, len(cols))
		for k := range cols {
			ph[k] = fmt.Sprintf("$%d", base+k+1)
		}
		placeholders = append(placeholders, "("+strings.Join(ph, ",")+")")
		args = append(args,
			deliveryID, it.Seq, it.ProductCode, it.Description, it.NCM, it.CEST, it.CFOP, it.Unit,
			it.Quantity, it.UnitPrice, it.Total, it.EAN, it.EANTax, it.UnitTax, it.QuantityTax,
			it.UnitPriceTax, it.Freight, it.Discount, it.OtherCharges, it.TotalizerFlag,
		)
	}

	query := fmt.Sprintf("INSERT INTO entregas_itens (%s) VALUES %s",
		strings.Join(cols, ","), strings.Join(placeholders, ","))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deliveryRepo.CreateFromInvoice items: %w", err)
	}
	return nil
}

func (r *deliveryRepo) Create(ctx context.Context, d *domain.Delivery) error {
	d.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowxContext(ctx, `INSERT INTO entregas (
			codemp, ordemcarga, numnota, cgccpf, endereco, numend, cidade, estado,
			chavenfe, vlrnota, nomeparc, razaosocial, nomebairro, telefone,
			seqcarga, tipodoc, codmotorista, status, assinado, data_entrega,
			dhinclusao, codusuinclusao
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id`,
		d.CompanyID, d.LoadOrder, d.InvoiceNumber, d.RecipientTaxID, d.Street, d.StreetNumber,
		d.City, d.State, d.InvoiceKey, d.TotalValue, d.RecipientName, d.CorporateName,
		d.Neighborhood, d.Phone, d.LoadSequence, d.DocType, d.DriverID, d.Status,
		d.Signed, d.DeliveryDate, d.CreatedAt, d.CreatedBy,
	).Scan(&d.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "chavenfe") {
			return domain.ErrDuplicateInvoiceKey
		}
		return fmt.Errorf("deliveryRepo.Create: %w", err)
	}
	return nil
}

func (r *deliveryRepo) List(ctx context.Context) ([]domain.Delivery, error) {
	var out []domain.Delivery
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, codemp, ordemcarga, numnota, cgccpf, endereco, numend, cidade,
		       estado, chavenfe, vlrnota, nomeparc, razaosocial, nomebairro,
		       telefone, seqcarga, tipodoc, codmotorista, status, assinado,
		       data_entrega, dhinclusao, codusuinclusao
		FROM entregas
		ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("deliveryRepo.List: %w", err)
	}
	return out, nil
}

func (r *deliveryRepo) ListItems(ctx context.Context, deliveryID int64) ([]domain.DeliveryItem, error) {
	var out []domain.DeliveryItem
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, id_entrega, n_item, c_prod, x_prod, ncm, cest, cfop, u_com,
		       q_com, v_un_com, v_prod, cean, cean_trib, u_trib, q_trib,
		       v_un_trib, v_frete, v_desc, v_outro, ind_tot
		FROM entregas_itens
		WHERE id_entrega = $1
		ORDER BY n_item`, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("deliveryRepo.ListItems: %w", err)
	}
	return out, nil
}
