// Package export renders delivery data as spreadsheet workbooks for
// back-office download.
package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"entregas/internal/domain"
)

const sheetName = "Entregas"

var headers = []string{
	"ID", "Nota", "Chave NFe", "CNPJ/CPF", "Destinatário", "Razão Social",
	"Endereço", "Número", "Bairro", "Cidade", "UF", "Telefone",
	"Valor", "Status", "Motorista", "Data Entrega", "Incluído em",
}

// DeliveriesWorkbook builds an XLSX workbook with one row per delivery.
// The caller owns the returned file and must Close it.
func DeliveriesWorkbook(deliveries []domain.Delivery) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("export: renaming sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("export: writing header: %w", err)
	}

	for i, d := range deliveries {
		row := []any{
			d.ID,
			strVal(d.InvoiceNumber),
			d.InvoiceKey,
			strVal(d.RecipientTaxID),
			strVal(d.RecipientName),
			strVal(d.CorporateName),
			strVal(d.Street),
			strVal(d.StreetNumber),
			strVal(d.Neighborhood),
			strVal(d.City),
			strVal(d.State),
			strVal(d.Phone),
			amountVal(d.TotalValue),
			strVal(d.Status),
			idVal(d.DriverID),
			dateVal(d.DeliveryDate),
			d.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("export: writing row %d: %w", i+2, err)
		}
	}

	return f, nil
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func idVal(id *int64) any {
	if id == nil {
		return ""
	}
	return *id
}

func amountVal(d decimal.NullDecimal) any {
	if !d.Valid {
		return ""
	}
	v, _ := d.Decimal.Float64()
	return v
}

func dateVal(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
