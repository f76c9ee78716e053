package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"entregas/internal/config"
	"entregas/internal/domain"
	"entregas/internal/nfe"
	"entregas/internal/port"
)

// ImportService ingests ZIP archives of NFe documents.
type ImportService interface {
	ImportArchive(ctx context.Context, archive []byte) (*domain.ImportResult, error)
}

type importService struct {
	deliveries port.DeliveryRepository
	archives   port.ArchiveStore
	cfg        *config.ImportConfig
}

// NewImportService creates a new ImportService implementation. archives may
// be a noop store when retention is not configured.
func NewImportService(
	deliveries port.DeliveryRepository,
	archives port.ArchiveStore,
	cfg *config.ImportConfig,
) ImportService {
	return &importService{
		deliveries: deliveries,
		archives:   archives,
		cfg:        cfg,
	}
}

// outcomeKind classifies the result of processing one archive entry.
type outcomeKind int

const (
	outcomeImported outcomeKind = iota
	outcomeDuplicate
	outcomeFailed
)

// entryOutcome is the immutable per-entry result folded into the aggregate.
type entryOutcome struct {
	kind outcomeKind
	err  error
}

// ImportArchive opens the archive and processes each XML entry
// independently: decode, normalize, dedup-check, persist. One malformed
// invoice never aborts the batch; the only terminal failures are a missing
// payload and an unreadable archive.
func (s *importService) ImportArchive(ctx context.Context, archive []byte) (*domain.ImportResult, error) {
	if len(archive) == 0 {
		return nil, domain.ErrNoFile
	}

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArchive, err)
	}

	result := &domain.ImportResult{Errors: []domain.ImportError{}}

	for _, entry := range zr.File {
		result.TotalFiles++

		if entry.FileInfo().IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name), ".xml") {
			continue
		}
		result.TotalXML++

		switch out := s.processEntry(ctx, entry); out.kind {
		case outcomeImported:
			result.Imported++
		case outcomeDuplicate:
			result.Duplicates++
		case outcomeFailed:
			result.Errors = append(result.Errors, domain.ImportError{
				File:  entry.Name,
				Error: out.err.Error(),
			})
		}
	}

	s.retainArchive(ctx, archive)

	return result, nil
}

// processEntry runs the full pipeline for one entry and returns its
// outcome. Every error is entry-local.
func (s *importService) processEntry(ctx context.Context, entry *zip.File) entryOutcome {
	failed := func(err error) entryOutcome { return entryOutcome{kind: outcomeFailed, err: err} }

	rc, err := entry.Open()
	if err != nil {
		return failed(fmt.Errorf("opening entry: %w", err))
	}
	data, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		return failed(fmt.Errorf("reading entry: %w", err))
	}

	doc, err := nfe.Decode(data)
	if err != nil {
		return failed(err)
	}
	inv, err := nfe.ParseInvoice(doc)
	if err != nil {
		return failed(err)
	}

	exists, err := s.deliveries.ExistsByKey(ctx, inv.Key)
	if err != nil {
		return failed(err)
	}
	if exists {
		return entryOutcome{kind: outcomeDuplicate}
	}

	delivery := deliveryFromInvoice(inv)
	var items []domain.DeliveryItem
	if s.cfg.LineItems {
		items = itemsFromInvoice(inv)
	}

	if _, err := s.deliveries.CreateFromInvoice(ctx, delivery, items); err != nil {
		// A concurrent submission can win the race between the dedup
		// check and the insert; the uniqueness constraint reports it
		// and the entry counts as a duplicate, not an error.
		if errors.Is(err, domain.ErrDuplicateInvoiceKey) {
			return entryOutcome{kind: outcomeDuplicate}
		}
		return failed(err)
	}
	return entryOutcome{kind: outcomeImported}
}

// retainArchive stores the submitted archive for auditing. Best-effort:
// failures are logged and never affect the batch result.
func (s *importService) retainArchive(ctx context.Context, archive []byte) {
	if s.archives == nil {
		return
	}
	key := fmt.Sprintf("imports/%s.zip", uuid.New())
	if err := s.archives.Store(ctx, key, archive); err != nil {
		log.Printf("importService: failed to retain archive %s: %v", key, err)
	}
}

func deliveryFromInvoice(inv *nfe.Invoice) *domain.Delivery {
	return &domain.Delivery{
		InvoiceNumber:  nilIfEmpty(inv.Number),
		RecipientTaxID: nilIfEmpty(inv.RecipientTaxID),
		Street:         nilIfEmpty(inv.Street),
		StreetNumber:   nilIfEmpty(inv.StreetNumber),
		City:           nilIfEmpty(inv.City),
		State:          nilIfEmpty(inv.State),
		InvoiceKey:     inv.Key,
		TotalValue:     inv.Total,
		RecipientName:  nilIfEmpty(inv.RecipientName),
		CorporateName:  nilIfEmpty(inv.RecipientName),
		Neighborhood:   nilIfEmpty(inv.Neighborhood),
		Phone:          nilIfEmpty(inv.Phone),
	}
}

func itemsFromInvoice(inv *nfe.Invoice) []domain.DeliveryItem {
	items := make([]domain.DeliveryItem, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, domain.DeliveryItem{
			Seq:           it.Seq,
			ProductCode:   nilIfEmpty(it.ProductCode),
			Description:   nilIfEmpty(it.Description),
			NCM:           nilIfEmpty(it.NCM),
			CEST:          nilIfEmpty(it.CEST),
			CFOP:          nilIfEmpty(it.CFOP),
			Unit:          nilIfEmpty(it.Unit),
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			Total:         it.Total,
			EAN:           nilIfEmpty(it.EAN),
			EANTax:        nilIfEmpty(it.EANTax),
			UnitTax:       nilIfEmpty(it.UnitTax),
			QuantityTax:   it.QuantityTax,
			UnitPriceTax:  it.UnitPriceTax,
			Freight:       it.Freight,
			Discount:      it.Discount,
			OtherCharges:  it.OtherCharges,
			TotalizerFlag: nilIfEmpty(it.TotalizerFlag),
		})
	}
	return items
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
