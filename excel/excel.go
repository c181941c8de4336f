// Package excel — кодирование каталога и корзинки в XLSX и разбор
// присланных операторами файлов.
package excel

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"barkod_bot/storage"
)

const sheetName = "Sheet1"

// ProductHeaders — порядок колонок выгрузки каталога. Импорт ожидает
// те же колонки в том же порядке.
var ProductHeaders = []string{
	"id", "name", "artikul", "barcode", "category", "postavshik",
	"stock", "cena_postavki", "cena_prodaji", "skidka", "brend",
	"srok", "edinitsa_izmereniya", "weight", "price", "final_price",
}

// BasketHeaders — колонки выгрузки корзинки
var BasketHeaders = []string{
	"id", "name", "artikul", "barcode", "weight", "price",
	"price_postavki", "shtuk",
}

// EncodeProducts выгружает каталог в XLSX
func EncodeProducts(products []storage.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeRow(f, 1, toAny(ProductHeaders)); err != nil {
		return nil, err
	}
	for i, p := range products {
		row := []any{
			p.ID, p.Name, p.Artikul, p.Barcode, p.Category, p.Postavshik,
			p.Stock, p.CenaPostavki, p.CenaProdaji, p.Skidka, p.Brend,
			p.Srok, p.Edinitsa, floatCell(p.Weight), floatCell(p.Price),
			floatCell(p.FinalPrice),
		}
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("запись xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBasket выгружает корзинку в XLSX
func EncodeBasket(items []storage.BasketItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeRow(f, 1, toAny(BasketHeaders)); err != nil {
		return nil, err
	}
	for i, it := range items {
		row := []any{
			it.ID, it.Name, it.Artikul, it.Barcode, it.Weight,
			it.Price, it.PricePostavki, it.Shtuk,
		}
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("запись xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeRows читает первый лист присланного файла. Каждая строка
// дотягивается или обрезается до len(ProductHeaders) ячеек, чтобы
// импорт не зависел от хвостовых пустых колонок.
func DecodeRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("открытие xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("чтение листа %q: %w", sheet, err)
	}

	want := len(ProductHeaders)
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) > want {
			row = row[:want]
		}
		for len(row) < want {
			row = append(row, "")
		}
		out = append(out, row)
	}
	return out, nil
}

func writeRow(f *excelize.File, rowIdx int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("строка %d: %w", rowIdx, err)
	}
	return nil
}

func toAny(headers []string) []any {
	out := make([]any, len(headers))
	for i, h := range headers {
		out[i] = h
	}
	return out
}

// floatCell — nullable-значения выгружаются пустой ячейкой
func floatCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

// ParseFloatCell — числовая ячейка импорта. Пустая или нечисловая
// ячейка означает отсутствие значения.
func ParseFloatCell(cell string) *float64 {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return &v
}
