package nfe

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entregas/internal/domain"
)

const testKey = "35200814200166000187550010000000046550000046"

func sampleNFe(key string, dets ...string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe>
    <infNFe Id="NFe%s" versao="4.00">
      <ide>
        <nNF>4655</nNF>
        <serie>1</serie>
        <dhEmi>2020-08-14T10:32:11-03:00</dhEmi>
      </ide>
      <emit>
        <CNPJ>14200166000187</CNPJ>
        <xNome>Distribuidora Boa Vista LTDA</xNome>
      </emit>
      <dest>
        <CNPJ>07526557000100</CNPJ>
        <xNome>Mercado Central ME</xNome>
        <enderDest>
          <xLgr>Rua das Laranjeiras</xLgr>
          <nro>1020</nro>
          <xBairro>Centro</xBairro>
          <xMun>Campinas</xMun>
          <UF>SP</UF>
        </enderDest>
        <fone>1932220000</fone>
      </dest>
      %s
      <total>
        <ICMSTot>
          <vNF>1530,75</vNF>
        </ICMSTot>
      </total>
    </infNFe>
  </NFe>
</nfeProc>`, key, strings.Join(dets, "\n"))
}

func detBlock(n int, qty string) string {
	return fmt.Sprintf(`<det nItem="%d">
		<prod>
			<cProd>P%03d</cProd>
			<xProd>Caixa de suco</xProd>
			<NCM>20098990</NCM>
			<CFOP>5102</CFOP>
			<uCom>CX</uCom>
			<qCom>%s</qCom>
			<vUnCom>10,5</vUnCom>
			<vProd>126,00</vProd>
			<indTot>1</indTot>
		</prod>
	</det>`, n, n, qty)
}

func mustParse(t *testing.T, xml string) *Invoice {
	t.Helper()
	doc, err := Decode([]byte(xml))
	require.NoError(t, err)
	inv, err := ParseInvoice(doc)
	require.NoError(t, err)
	return inv
}

func TestParseInvoice_FullDocument(t *testing.T) {
	inv := mustParse(t, sampleNFe(testKey, detBlock(1, "12")))

	assert.Equal(t, testKey, inv.Key)
	assert.Equal(t, "4655", inv.Number)
	assert.Equal(t, "1", inv.Series)
	assert.Equal(t, "2020-08-14T10:32:11-03:00", inv.IssuedAt)
	assert.Equal(t, "14200166000187", inv.IssuerTaxID)
	assert.Equal(t, "Distribuidora Boa Vista LTDA", inv.IssuerName)
	assert.Equal(t, "07526557000100", inv.RecipientTaxID)
	assert.Equal(t, "Mercado Central ME", inv.RecipientName)
	assert.Equal(t, "Rua das Laranjeiras", inv.Street)
	assert.Equal(t, "1020", inv.StreetNumber)
	assert.Equal(t, "Centro", inv.Neighborhood)
	assert.Equal(t, "Campinas", inv.City)
	assert.Equal(t, "SP", inv.State)
	assert.Equal(t, "1932220000", inv.Phone)

	require.True(t, inv.Total.Valid)
	assert.True(t, inv.Total.Decimal.Equal(decimal.RequireFromString("1530.75")))
}

func TestParseInvoice_BareNFeRoot(t *testing.T) {
	xml := `<NFe><infNFe Id="NFe` + testKey + `"><ide><nNF>9</nNF></ide></infNFe></NFe>`
	inv := mustParse(t, xml)

	assert.Equal(t, testKey, inv.Key)
	assert.Equal(t, "9", inv.Number)
	// Optional blocks absent: empty values, null total, no error.
	assert.Empty(t, inv.RecipientName)
	assert.Empty(t, inv.City)
	assert.False(t, inv.Total.Valid)
	assert.Empty(t, inv.Items)
}

func TestParseInvoice_IdAsChildElement(t *testing.T) {
	xml := `<NFe><infNFe><Id>NFe` + testKey + `</Id></infNFe></NFe>`
	inv := mustParse(t, xml)
	assert.Equal(t, testKey, inv.Key)
}

func TestParseInvoice_LegacyEmissionDate(t *testing.T) {
	xml := `<NFe><infNFe Id="NFe` + testKey + `"><ide><dEmi>2019-03-02</dEmi></ide></infNFe></NFe>`
	inv := mustParse(t, xml)
	assert.Equal(t, "2019-03-02", inv.IssuedAt)
}

func TestParseInvoice_RecipientCPFFallback(t *testing.T) {
	xml := `<NFe><infNFe Id="NFe` + testKey + `"><dest><CPF>12345678901</CPF></dest></infNFe></NFe>`
	inv := mustParse(t, xml)
	assert.Equal(t, "12345678901", inv.RecipientTaxID)
}

func TestParseInvoice_KeyValidation(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"short key", testKey[:40]},
		{"long key", testKey + "00"},
		{"empty key", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Decode([]byte(sampleNFe(tc.key)))
			require.NoError(t, err)
			_, err = ParseInvoice(doc)
			assert.ErrorIs(t, err, domain.ErrInvalidInvoice)
		})
	}
}

func TestParseInvoice_MissingInfNFe(t *testing.T) {
	doc, err := Decode([]byte(`<nfeProc><NFe><other/></NFe></nfeProc>`))
	require.NoError(t, err)
	_, err = ParseInvoice(doc)
	assert.ErrorIs(t, err, domain.ErrInvalidInvoice)

	doc, err = Decode([]byte(`<somethingElse/>`))
	require.NoError(t, err)
	_, err = ParseInvoice(doc)
	assert.ErrorIs(t, err, domain.ErrInvalidInvoice)
}

func TestParseInvoice_SingleAndMultipleItems(t *testing.T) {
	one := mustParse(t, sampleNFe(testKey, detBlock(1, "12")))
	require.Len(t, one.Items, 1)
	require.NotNil(t, one.Items[0].Seq)
	assert.Equal(t, 1, *one.Items[0].Seq)

	three := mustParse(t, sampleNFe(testKey, detBlock(1, "1"), detBlock(2, "2"), detBlock(3, "3")))
	require.Len(t, three.Items, 3)
	assert.Equal(t, "P002", three.Items[1].ProductCode)
	require.NotNil(t, three.Items[2].Seq)
	assert.Equal(t, 3, *three.Items[2].Seq)
}

func TestParseInvoice_ItemFields(t *testing.T) {
	inv := mustParse(t, sampleNFe(testKey, detBlock(1, "12,5")))
	it := inv.Items[0]

	assert.Equal(t, "Caixa de suco", it.Description)
	assert.Equal(t, "20098990", it.NCM)
	assert.Equal(t, "5102", it.CFOP)
	assert.Equal(t, "CX", it.Unit)
	assert.Equal(t, "1", it.TotalizerFlag)

	require.True(t, it.Quantity.Valid)
	assert.True(t, it.Quantity.Decimal.Equal(decimal.RequireFromString("12.5")))
	require.True(t, it.UnitPrice.Valid)
	assert.True(t, it.UnitPrice.Decimal.Equal(decimal.RequireFromString("10.5")))

	// Fields the document does not carry stay null.
	assert.False(t, it.Freight.Valid)
	assert.False(t, it.Discount.Valid)
}

func TestParseInvoice_EmptyQuantityIsNull(t *testing.T) {
	inv := mustParse(t, sampleNFe(testKey, detBlock(1, "")))
	assert.False(t, inv.Items[0].Quantity.Valid)
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		valid bool
	}{
		{"12,5", "12.5", true},
		{"1530.75", "1530.75", true},
		{"0", "0", true},
		{"  7,25 ", "7.25", true},
		{"", "", false},
		{"   ", "", false},
		{"abc", "", false},
		{"1,2,3", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := parseAmount(tc.in)
			assert.Equal(t, tc.valid, got.Valid)
			if tc.valid {
				assert.True(t, got.Decimal.Equal(decimal.RequireFromString(tc.want)))
			}
		})
	}
}
