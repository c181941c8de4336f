package dialog

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"barkod_bot/excel"
	"barkod_bot/storage"
)

// buildXLSX собирает файл импорта из строк каталога
func buildXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(excel.ProductHeaders))
	for i, h := range excel.ProductHeaders {
		header[i] = h
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func (e *testEnv) sendDocument(userID int64, name string, data []byte) Reply {
	return e.manager.Handle(context.Background(), userID,
		Event{Document: &Document{Name: name, Data: data}})
}

func TestImportReconcilesRows(t *testing.T) {
	env := newTestEnv(t)
	addProduct(t, env, storage.Product{Name: "Cola", Barcode: 123})
	addProduct(t, env, storage.Product{Name: "Fanta", Barcode: 124})
	env.setState(t, adminID, StateImportExport)

	data := buildXLSX(t, [][]any{
		// существующий баркод: обновляются только вес и цены
		{"", "Renamed", "", "123", "", "", "", "", "", "", "", "", "", "2", "10", "444000"},
		// новый баркод: вставка описательных полей
		{"", "Shampun", "A-1", "555", "Gigiena", "Local", "3", "5000", "7000", "0", "CleanCo", "12 oy", "dona", "1.5", "4", "270000"},
		// кривой баркод: строка пропускается
		{"", "Bad", "", "abc", "", "", "", "", "", "", "", "", "", "", "", ""},
		// кривая числовая ячейка у нового баркода: вставка всё равно проходит
		{"", "Kraska", "", "777", "", "", "", "", "", "", "", "", "", "xx", "", ""},
		// кривая ячейка у существующего: применяются только валидные
		{"", "", "", "124", "", "", "", "", "", "", "", "", "", "xx", "10", ""},
	})

	reply := env.sendDocument(adminID, "import.xlsx", data)

	text := firstText(reply)
	assert.Contains(t, text, "Yangi: 2")
	assert.Contains(t, text, "Yangilangan: 2")
	assert.Contains(t, text, "O'tkazib yuborilgan: 1")
	assert.Equal(t, StateImportExport, env.state(t, adminID))

	existing, err := env.catalog.ByBarcode(context.Background(), 123)
	require.NoError(t, err)
	require.NotNil(t, existing)
	// Имя существующего товара импорт не трогает
	assert.Equal(t, "Cola", existing.Name)
	require.NotNil(t, existing.Weight)
	assert.Equal(t, 2.0, *existing.Weight)
	require.NotNil(t, existing.FinalPrice)
	assert.Equal(t, 444000.0, *existing.FinalPrice)

	// Кривой вес сочтён пустым, цена применилась
	partial, err := env.catalog.ByBarcode(context.Background(), 124)
	require.NoError(t, err)
	require.NotNil(t, partial)
	assert.Nil(t, partial.Weight)
	require.NotNil(t, partial.Price)
	assert.Equal(t, 10.0, *partial.Price)

	// Вес и цены новой карточки остаются пустыми до панели баркодов
	inserted, err := env.catalog.ByBarcode(context.Background(), 555)
	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Equal(t, "Shampun", inserted.Name)
	assert.Equal(t, int64(5000), inserted.CenaPostavki)
	assert.Nil(t, inserted.Weight)
	assert.Nil(t, inserted.Price)
	assert.Nil(t, inserted.FinalPrice)

	badCell, err := env.catalog.ByBarcode(context.Background(), 777)
	require.NoError(t, err)
	require.NotNil(t, badCell)
	assert.Equal(t, "Kraska", badCell.Name)
	assert.Nil(t, badCell.Weight)

	// Строка с кривым баркодом записей не породила
	all, err := env.catalog.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestImportRejectsBrokenFile(t *testing.T) {
	env := newTestEnv(t)
	env.setState(t, adminID, StateImportExport)

	reply := env.sendDocument(adminID, "import.xlsx", []byte("not an xlsx"))

	assert.Contains(t, firstText(reply), "XLSX formatida emas")
	assert.Equal(t, StateImportExport, env.state(t, adminID))
}

func TestImportHeaderOnlyFile(t *testing.T) {
	env := newTestEnv(t)
	env.setState(t, adminID, StateImportExport)

	reply := env.sendDocument(adminID, "import.xlsx", buildXLSX(t, nil))

	assert.Contains(t, firstText(reply), "qatorlari topilmadi")
}

func TestExportSendsCatalogFile(t *testing.T) {
	env := newTestEnv(t)
	addProduct(t, env, weighted("Cola", 123, 1))
	env.setState(t, adminID, StateImportExport)

	reply := env.send(adminID, "XLSX export")

	var file *File
	for _, m := range reply.Messages {
		if m.File != nil {
			file = m.File
		}
	}
	require.NotNil(t, file)
	assert.Equal(t, "products_export.xlsx", file.Name)

	// Выгруженный файл читается обратно и содержит товар
	rows, err := excel.DecodeRows(file.Data)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Cola", rows[1][1])
	assert.Equal(t, "123", rows[1][3])
}

func TestExportEmptyCatalog(t *testing.T) {
	env := newTestEnv(t)
	env.setState(t, adminID, StateImportExport)

	reply := env.send(adminID, "XLSX export")

	assert.Contains(t, firstText(reply), "bo'sh")
	assert.Equal(t, StateImportExport, env.state(t, adminID))
}
