package nfe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"entregas/internal/domain"
)

// InvoiceKeyLength is the fixed length of the NFe access key after the
// "NFe" prefix is stripped from the infNFe Id.
const InvoiceKeyLength = 44

// keyPrefix is the fixed tag prepended to the access key in the Id field.
const keyPrefix = "NFe"

// Invoice is the canonical record extracted from one decoded NFe document.
// Every field other than Key is optional; invoices vary in which blocks
// they include.
type Invoice struct {
	Key            string
	IssuedAt       string
	Number         string
	Series         string
	IssuerTaxID    string
	IssuerName     string
	RecipientTaxID string
	RecipientName  string
	Street         string
	StreetNumber   string
	City           string
	State          string
	Neighborhood   string
	Phone          string
	Total          decimal.NullDecimal
	Items          []InvoiceItem
}

// InvoiceItem is one det entry of the invoice.
type InvoiceItem struct {
	Seq           *int
	ProductCode   string
	Description   string
	NCM           string
	CEST          string
	CFOP          string
	Unit          string
	Quantity      decimal.NullDecimal
	UnitPrice     decimal.NullDecimal
	Total         decimal.NullDecimal
	EAN           string
	EANTax        string
	UnitTax       string
	QuantityTax   decimal.NullDecimal
	UnitPriceTax  decimal.NullDecimal
	Freight       decimal.NullDecimal
	Discount      decimal.NullDecimal
	OtherCharges  decimal.NullDecimal
	TotalizerFlag string
}

// ParseInvoice walks a decoded document and produces exactly one Invoice.
// The invoice root is located under the process envelope (nfeProc > NFe)
// or at the top level (bare NFe). The only fatal condition is a missing
// root or an access key that is not exactly 44 characters; everything
// else defaults to empty or null.
func ParseInvoice(doc *Document) (*Invoice, error) {
	root := doc.Root()

	var nfeEl *Element
	switch root.Name() {
	case "nfeProc":
		nfeEl = root.Child("NFe")
	case "NFe":
		nfeEl = root
	default:
		// Some emitters wrap the envelope one level deeper.
		if proc := root.Child("nfeProc"); proc != nil {
			nfeEl = proc.Child("NFe")
		} else {
			nfeEl = root.Child("NFe")
		}
	}

	inf := nfeEl.Child("infNFe")
	if inf == nil {
		return nil, fmt.Errorf("%w: infNFe element not found", domain.ErrInvalidInvoice)
	}

	key := strings.TrimPrefix(inf.Field("Id"), keyPrefix)
	if len(key) != InvoiceKeyLength {
		return nil, fmt.Errorf("%w: access key %q has %d characters, want %d",
			domain.ErrInvalidInvoice, key, len(key), InvoiceKeyLength)
	}

	ide := inf.Child("ide")
	emit := inf.Child("emit")
	dest := inf.Child("dest")
	addr := dest.Child("enderDest")
	totals := inf.Child("total").Child("ICMSTot")

	issuedAt := ide.ChildText("dhEmi")
	if issuedAt == "" {
		// Older layout carries a date-only emission field.
		issuedAt = ide.ChildText("dEmi")
	}

	recipientTaxID := dest.ChildText("CNPJ")
	if recipientTaxID == "" {
		recipientTaxID = dest.ChildText("CPF")
	}

	inv := &Invoice{
		Key:            key,
		IssuedAt:       issuedAt,
		Number:         ide.ChildText("nNF"),
		Series:         ide.ChildText("serie"),
		IssuerTaxID:    emit.ChildText("CNPJ"),
		IssuerName:     emit.ChildText("xNome"),
		RecipientTaxID: recipientTaxID,
		RecipientName:  dest.ChildText("xNome"),
		Street:         addr.ChildText("xLgr"),
		StreetNumber:   addr.ChildText("nro"),
		City:           addr.ChildText("xMun"),
		State:          addr.ChildText("UF"),
		Neighborhood:   addr.ChildText("xBairro"),
		Phone:          dest.ChildText("fone"),
		Total:          parseAmount(totals.ChildText("vNF")),
	}

	for _, det := range inf.Children("det") {
		inv.Items = append(inv.Items, parseItem(det))
	}

	return inv, nil
}

func parseItem(det *Element) InvoiceItem {
	prod := det.Child("prod")

	return InvoiceItem{
		Seq:           parseSeq(det.Field("nItem")),
		ProductCode:   prod.ChildText("cProd"),
		Description:   prod.ChildText("xProd"),
		NCM:           prod.ChildText("NCM"),
		CEST:          prod.ChildText("CEST"),
		CFOP:          prod.ChildText("CFOP"),
		Unit:          prod.ChildText("uCom"),
		Quantity:      parseAmount(prod.ChildText("qCom")),
		UnitPrice:     parseAmount(prod.ChildText("vUnCom")),
		Total:         parseAmount(prod.ChildText("vProd")),
		EAN:           prod.ChildText("cEAN"),
		EANTax:        prod.ChildText("cEANTrib"),
		UnitTax:       prod.ChildText("uTrib"),
		QuantityTax:   parseAmount(prod.ChildText("qTrib")),
		UnitPriceTax:  parseAmount(prod.ChildText("vUnTrib")),
		Freight:       parseAmount(prod.ChildText("vFrete")),
		Discount:      parseAmount(prod.ChildText("vDesc")),
		OtherCharges:  parseAmount(prod.ChildText("vOutro")),
		TotalizerFlag: prod.ChildText("indTot"),
	}
}

func parseSeq(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

// parseAmount turns a monetary or quantity string into a nullable decimal.
// A comma decimal separator is normalized to a period. Empty, missing and
// non-numeric values yield null rather than an error; the pipeline is
// permissive on amounts and strict only on the access key.
func parseAmount(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
