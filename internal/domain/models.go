package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operator represents a back-office user (usuarios table).
type Operator struct {
	ID           int64      `db:"codusu" json:"codusu"`
	CompanyID    int64      `db:"codemp" json:"codemp"`
	Username     string     `db:"nomeusu" json:"nomeusu"`
	PasswordHash string     `db:"senha" json:"-"`
	Email        *string    `db:"email" json:"email"`
	Active       string     `db:"ativo" json:"ativo"`
	FullName     *string    `db:"nomecomp" json:"nomecomp"`
	CreatedAt    time.Time  `db:"dhinclusao" json:"dhinclusao"`
	DeletedAt    *time.Time `db:"dhexclusao" json:"dhexclusao,omitempty"`
}

// Company represents a registered company (empresas table).
// CNPJ is the 14-character national company tax id.
type Company struct {
	ID             int64      `db:"codemp" json:"codemp"`
	CNPJ           string     `db:"cnpj" json:"cnpj"`
	CorporateName  string     `db:"razaosocial" json:"razaosocial"`
	TradeName      *string    `db:"nomefantasia" json:"nomefantasia"`
	StateTaxID     *string    `db:"inscricaoestadual" json:"inscricaoestadual"`
	ContactEmail   *string    `db:"emailcontato" json:"emailcontato"`
	FinancialEmail *string    `db:"emailfinanceiro" json:"emailfinanceiro"`
	PostalCode     *string    `db:"cep" json:"cep"`
	Street         *string    `db:"endereco" json:"endereco"`
	StreetNumber   *string    `db:"numero" json:"numero"`
	Neighborhood   *string    `db:"bairro" json:"bairro"`
	City           *string    `db:"cidade" json:"cidade"`
	State          *string    `db:"estado" json:"estado"`
	Complement     *string    `db:"complemento" json:"complemento"`
	Latitude       *float64   `db:"latitude" json:"latitude"`
	Longitude      *float64   `db:"longitude" json:"longitude"`
	Active         string     `db:"ativo" json:"ativo"`
	CreatedAt      time.Time  `db:"dhinclusao" json:"dhinclusao"`
	DeletedAt      *time.Time `db:"dhexclusao" json:"dhexclusao,omitempty"`
}

// Driver represents a delivery driver (motoristas table).
type Driver struct {
	ID          int64      `db:"codmotorista" json:"codmotorista"`
	CompanyID   int64      `db:"codemp" json:"codemp"`
	AppDriverID *string    `db:"codappmotorista" json:"codappmotorista"`
	Username    string     `db:"nomeusu" json:"nomeusu"`
	Password    string     `db:"senha" json:"-"`
	Phone       *string    `db:"telefone" json:"telefone"`
	Email       *string    `db:"email" json:"email"`
	Active      string     `db:"ativo" json:"ativo"`
	FullName    *string    `db:"nomecomp" json:"nomecomp"`
	CreatedAt   time.Time  `db:"dhinclusao" json:"dhinclusao"`
	DeletedAt   *time.Time `db:"dhexclusao" json:"dhexclusao,omitempty"`
}

// Delivery is the canonical record extracted from one NFe document
// (entregas table). InvoiceKey is the 44-character business key and is
// unique across all persisted deliveries.
type Delivery struct {
	ID             int64               `db:"id" json:"id"`
	CompanyID      *int64              `db:"codemp" json:"codemp"`
	LoadOrder      *string             `db:"ordemcarga" json:"ordemcarga"`
	InvoiceNumber  *string             `db:"numnota" json:"numnota"`
	RecipientTaxID *string             `db:"cgccpf" json:"cgccpf"`
	Street         *string             `db:"endereco" json:"endereco"`
	StreetNumber   *string             `db:"numend" json:"numend"`
	City           *string             `db:"cidade" json:"cidade"`
	State          *string             `db:"estado" json:"estado"`
	InvoiceKey     string              `db:"chavenfe" json:"chavenfe"`
	TotalValue     decimal.NullDecimal `db:"vlrnota" json:"vlrnota"`
	RecipientName  *string             `db:"nomeparc" json:"nomeparc"`
	CorporateName  *string             `db:"razaosocial" json:"razaosocial"`
	Neighborhood   *string             `db:"nomebairro" json:"nomebairro"`
	Phone          *string             `db:"telefone" json:"telefone"`
	LoadSequence   *int                `db:"seqcarga" json:"seqcarga"`
	DocType        *string             `db:"tipodoc" json:"tipodoc"`
	DriverID       *int64              `db:"codmotorista" json:"codmotorista"`
	Status         *string             `db:"status" json:"status"`
	Signed         *string             `db:"assinado" json:"assinado"`
	DeliveryDate   *time.Time          `db:"data_entrega" json:"data_entrega"`
	CreatedAt      time.Time           `db:"dhinclusao" json:"dhinclusao"`
	CreatedBy      *int64              `db:"codusuinclusao" json:"codusuinclusao"`
}

// DeliveryItem is one invoice line owned by a Delivery (entregas_itens
// table). Amounts that arrive empty or non-numeric stay null.
type DeliveryItem struct {
	ID            int64               `db:"id" json:"id"`
	DeliveryID    int64               `db:"id_entrega" json:"id_entrega"`
	Seq           *int                `db:"n_item" json:"n_item"`
	ProductCode   *string             `db:"c_prod" json:"c_prod"`
	Description   *string             `db:"x_prod" json:"x_prod"`
	NCM           *string             `db:"ncm" json:"ncm"`
	CEST          *string             `db:"cest" json:"cest"`
	CFOP          *string             `db:"cfop" json:"cfop"`
	Unit          *string             `db:"u_com" json:"u_com"`
	Quantity      decimal.NullDecimal `db:"q_com" json:"q_com"`
	UnitPrice     decimal.NullDecimal `db:"v_un_com" json:"v_un_com"`
	Total         decimal.NullDecimal `db:"v_prod" json:"v_prod"`
	EAN           *string             `db:"cean" json:"cean"`
	EANTax        *string             `db:"cean_trib" json:"cean_trib"`
	UnitTax       *string             `db:"u_trib" json:"u_trib"`
	QuantityTax   decimal.NullDecimal `db:"q_trib" json:"q_trib"`
	UnitPriceTax  decimal.NullDecimal `db:"v_un_trib" json:"v_un_trib"`
	Freight       decimal.NullDecimal `db:"v_frete" json:"v_frete"`
	Discount      decimal.NullDecimal `db:"v_desc" json:"v_desc"`
	OtherCharges  decimal.NullDecimal `db:"v_outro" json:"v_outro"`
	TotalizerFlag *string             `db:"ind_tot" json:"ind_tot"`
}

// ImportError identifies one archive entry that failed to import.
type ImportError struct {
	File  string `json:"arquivo"`
	Error string `json:"erro"`
}

// ImportResult is the aggregate outcome of one archive submission. The
// JSON field names follow the contract consumed by the frontend.
type ImportResult struct {
	TotalFiles int           `json:"totalArquivos"`
	TotalXML   int           `json:"totalXml"`
	Imported   int           `json:"importados"`
	Duplicates int           `json:"duplicados"`
	Errors     []ImportError `json:"erros"`
}
