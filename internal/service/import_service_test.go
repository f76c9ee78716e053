package service_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"entregas/internal/config"
	"entregas/internal/domain"
	"entregas/internal/service"
	"entregas/mocks"
)

const (
	validKey  = "35200714200166000187550010000000046550000046"
	secondKey = "35200714200166000187550010000000051550000051"
)

func nfeXML(key string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe>
    <infNFe Id="NFe` + key + `" versao="4.00">
      <ide>
        <nNF>46</nNF>
        <serie>1</serie>
        <dhEmi>2020-07-10T09:30:00-03:00</dhEmi>
      </ide>
      <emit>
        <CNPJ>14200166000187</CNPJ>
        <xNome>Distribuidora Modelo LTDA</xNome>
      </emit>
      <dest>
        <CNPJ>07526557000100</CNPJ>
        <xNome>Mercado Central</xNome>
        <enderDest>
          <xLgr>Rua das Flores</xLgr>
          <nro>120</nro>
          <xBairro>Centro</xBairro>
          <xMun>Sao Paulo</xMun>
          <UF>SP</UF>
        </enderDest>
        <fone>1133224455</fone>
      </dest>
      <det nItem="1">
        <prod>
          <cProd>001</cProd>
          <xProd>Caixa de parafusos</xProd>
          <uCom>UN</uCom>
          <qCom>10.0000</qCom>
          <vUnCom>12.5000000000</vUnCom>
          <vProd>125.00</vProd>
        </prod>
      </det>
      <total>
        <ICMSTot>
          <vNF>125.00</vNF>
        </ICMSTot>
      </total>
    </infNFe>
  </NFe>
</nfeProc>`
}

// buildZip assembles an in-memory archive from name/content pairs. A name
// ending in "/" produces a directory entry.
func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		if name[len(name)-1] == '/' {
			_, err := zw.Create(name)
			require.NoError(t, err)
			continue
		}
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func setupImportService(lineItems bool) (service.ImportService, *mocks.MockDeliveryRepo, *mocks.MockArchiveStore) {
	repo := new(mocks.MockDeliveryRepo)
	store := new(mocks.MockArchiveStore)
	cfg := &config.ImportConfig{MaxUploadMB: 50, LineItems: lineItems}
	svc := service.NewImportService(repo, store, cfg)
	return svc, repo, store
}

func TestImportService_ImportArchive_Success(t *testing.T) {
	svc, repo, store := setupImportService(true)

	repo.On("ExistsByKey", mock.Anything, validKey).Return(false, nil)
	repo.On("CreateFromInvoice", mock.Anything, mock.AnythingOfType("*domain.Delivery"), mock.Anything).
		Return(int64(1), nil)
	store.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	archive := buildZip(t, map[string]string{"nota.xml": nfeXML(validKey)})

	result, err := svc.ImportArchive(context.Background(), archive)

	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalFiles)
	assert.Equal(t, 1, result.TotalXML)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Duplicates)
	assert.Empty(t, result.Errors)
	repo.AssertExpectations(t)
}

func TestImportService_ImportArchive_MixedEntries(t *testing.T) {
	svc, repo, store := setupImportService(true)

	repo.On("ExistsByKey", mock.Anything, validKey).Return(false, nil)
	repo.On("CreateFromInvoice", mock.Anything, mock.AnythingOfType("*domain.Delivery"), mock.Anything).
		Return(int64(1), nil)
	store.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	shortKey := validKey[:40]
	archive := buildZip(t, map[string]string{
		"ok.xml":      nfeXML(validKey),
		"broken.xml":  nfeXML(shortKey),
		"leia-me.txt": "not an invoice",
	})

	result, err := svc.ImportArchive(context.Background(), archive)

	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalFiles)
	assert.Equal(t, 2, result.TotalXML)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Duplicates)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "broken.xml", result.Errors[0].File)
	assert.NotEmpty(t, result.Errors[0].Error)
}

func TestImportService_ImportArchive_Duplicate(t *testing.T) {
	svc, repo, store := setupImportService(true)

	repo.On("ExistsByKey", mock.Anything, validKey).Return(true, nil)
	store.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	archive := buildZip(t, map[string]string{"nota.xml": nfeXML(validKey)})

	result, err := svc.ImportArchive(context.Background(), archive)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Duplicates)
	assert.Empty(t, result.Errors)
	repo.AssertNotCalled(t, "CreateFromInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func TestImportService_ImportArchive_DuplicateRace(t *testing.T) {
	svc, repo, store := setupImportService(true)

	// The dedup check passes but the insert loses to a concurrent writer.
	repo.On("ExistsByKey", mock.Anything, validKey).Return(false, nil)
	repo.On("CreateFromInvoice", mock.Anything, mock.AnythingOfType("*domain.Delivery"), mock.Anything).
		Return(int64(0), domain.ErrDuplicateInvoiceKey)
	store.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	archive := buildZip(t, map[string]string{"nota.xml": nfeXML(validKey)})

	result, err := svc.ImportArchive(context.Background(), archive)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Duplicates)
	assert.Empty(t, result.Errors)
}

func TestImportService_ImportArchive_Resubmission(t *testing.T) {
	svc, repo, store := setupImportService(true)

	repo.On("ExistsByKey", mock.Anything, validKey).Return(false, nil).Once()
	repo.On("ExistsByKey", mock.Anything, validKey).Return(true, nil).Once()
	repo.On("CreateFromInvoice", mock.Anything, mock.AnythingOfType("*domain.Delivery"), mock.Anything).
		Return(int64(7), nil).Once()
	store.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	archive := buildZip(t, map[string]string{"nota.xml": nfeXML(validKey)})

	first, err := svc.ImportArchive(context.Background(), archive)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Imported)
	assert.Equal(t, 0, first.Duplicates)

	second, err := svc.ImportArchive(context.Background(), archive)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 1, second.Duplicates)
	assert.Empty(t, second.Errors)
}

func TestImportService_ImportArchive_DirectoriesSkipped(t *testing.T) {
	svc, repo, store := setupImportService(true)

	repo.On("ExistsByKey", mock.Anything, validKey).Return(false, nil)
	repo.On("CreateFromInvoice", mock.Anything, mock.AnythingOfType("*domain.Delivery"), mock.Anything).
		Return(int64(1), nil)
	store.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	archive := buildZip(t, map[string]string{
		"notas/":         "",
		"notas/nota.XML": nfeXML(validKey),
	})

	result, err := svc.ImportArchive(context.Background(), archive)

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalFiles)
	assert.Equal(t, 1, result.TotalXML)
	assert.Equal(t, 1, result.Imported)
}

func TestImportService_ImportArchive_EmptyPayload(t *testing.T) {
	svc, _, _ := setupImportService(true)

	result, err := svc.ImportArchive(context.Background(), nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNoFile)
}

func TestImportService_ImportArchive_NotAZip(t *testing.T) {
	svc, _, _ := setupImportService(true)

	result, err := svc.ImportArchive(context.Background(), []byte("certainly not a zip"))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidArchive)
}

func TestImportService_ImportArchive_RepoErrorIsEntryLocal(t *testing.T) {
	svc, repo, store := setupImportService(true)

	repo.On("ExistsByKey", mock.Anything, validKey).Return(false, errors.New("connection reset"))
	repo.On("ExistsByKey", mock.Anything, secondKey).Return(false, nil)
	repo.On("CreateFromInvoice", mock.Anything, mock.AnythingOfType("*domain.Delivery"), mock.Anything).
		Return(int64(2), nil)
	store.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	archive := buildZip(t, map[string]string{
		"a.xml": nfeXML(validKey),
		"b.xml": nfeXML(secondKey),
	})

	result, err := svc.ImportArchive(context.Background(), archive)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "a.xml", result.Errors[0].File)
}

func TestImportService_ImportArchive_LineItemsDisabled(t *testing.T) {
	svc, repo, store := setupImportService(false)

	repo.On("ExistsByKey", mock.Anything, validKey).Return(false, nil)
	repo.On("CreateFromInvoice", mock.Anything, mock.AnythingOfType("*domain.Delivery"),
		mock.MatchedBy(func(items []domain.DeliveryItem) bool { return items == nil })).
		Return(int64(1), nil)
	store.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	archive := buildZip(t, map[string]string{"nota.xml": nfeXML(validKey)})

	result, err := svc.ImportArchive(context.Background(), archive)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	repo.AssertExpectations(t)
}

func TestImportService_ImportArchive_RetentionFailureIgnored(t *testing.T) {
	svc, repo, store := setupImportService(true)

	repo.On("ExistsByKey", mock.Anything, validKey).Return(false, nil)
	repo.On("CreateFromInvoice", mock.Anything, mock.AnythingOfType("*domain.Delivery"), mock.Anything).
		Return(int64(1), nil)
	store.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket unavailable"))

	archive := buildZip(t, map[string]string{"nota.xml": nfeXML(validKey)})

	result, err := svc.ImportArchive(context.Background(), archive)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	store.AssertExpectations(t)
}

func TestImportService_ImportArchive_DeliveryMapping(t *testing.T) {
	svc, repo, store := setupImportService(true)

	var got *domain.Delivery
	var gotItems []domain.DeliveryItem
	repo.On("ExistsByKey", mock.Anything, validKey).Return(false, nil)
	repo.On("CreateFromInvoice", mock.Anything, mock.AnythingOfType("*domain.Delivery"), mock.Anything).
		Run(func(args mock.Arguments) {
			got = args.Get(1).(*domain.Delivery)
			gotItems = args.Get(2).([]domain.DeliveryItem)
		}).
		Return(int64(1), nil)
	store.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	archive := buildZip(t, map[string]string{"nota.xml": nfeXML(validKey)})

	_, err := svc.ImportArchive(context.Background(), archive)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, validKey, got.InvoiceKey)
	require.NotNil(t, got.InvoiceNumber)
	assert.Equal(t, "46", *got.InvoiceNumber)
	require.NotNil(t, got.RecipientTaxID)
	assert.Equal(t, "07526557000100", *got.RecipientTaxID)
	require.NotNil(t, got.City)
	assert.Equal(t, "Sao Paulo", *got.City)
	require.True(t, got.TotalValue.Valid)
	assert.Equal(t, "125", got.TotalValue.Decimal.String())

	require.Len(t, gotItems, 1)
	require.NotNil(t, gotItems[0].Seq)
	assert.Equal(t, 1, *gotItems[0].Seq)
	require.NotNil(t, gotItems[0].Description)
	assert.Equal(t, "Caixa de parafusos", *gotItems[0].Description)
}
