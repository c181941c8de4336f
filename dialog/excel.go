package dialog

import (
	"context"
	"fmt"
	"strings"

	"barkod_bot/excel"
	"barkod_bot/security"
	"barkod_bot/storage"
)

// handleImportExport — меню XLSX: выгрузка каталога и сверка
// присланного файла с базой
func (m *Manager) handleImportExport(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	if !m.isAdmin(s.UserID) {
		return m.denyNonAdmin()
	}

	if ev.Document != nil {
		return m.importProducts(ctx, s, ev.Document)
	}

	switch strings.TrimSpace(ev.Text) {
	case btnXLSXImport:
		return keyboardMsg(
			"XLSX faylni yuboring. Birinchi qator sarlavha bo'lishi kerak:\n"+
				strings.Join(excel.ProductHeaders, ", "),
			importExportKeyboard()), StateImportExport, nil

	case btnXLSXExport:
		products, err := m.catalog.All(ctx)
		if err != nil {
			return Reply{}, s.State, err
		}
		if len(products) == 0 {
			return keyboardMsg("Baza bo'sh, eksport qilinadigan narsa yo'q.",
				importExportKeyboard()), StateImportExport, nil
		}
		data, err := excel.EncodeProducts(products)
		if err != nil {
			return Reply{}, s.State, err
		}
		reply := Reply{Messages: []Message{
			{File: &File{Name: "products_export.xlsx", Data: data}},
			{Text: "Baza eksport qilindi.", Keyboard: importExportKeyboard()},
		}}
		return reply, StateImportExport, nil

	case btnBack:
		return keyboardMsg("Admin menyusiga qaytildi.", adminMenuKeyboard()), StateAdminMenu, nil

	default:
		return keyboardMsg("Noma'lum buyruq.", importExportKeyboard()), StateImportExport, nil
	}
}

// importProducts сверяет строки файла с базой: существующий баркод
// получает обновление веса и цен, новый — вставку. Пропускается только
// строка с кривым баркодом; кривая числовая ячейка считается пустой.
func (m *Manager) importProducts(ctx context.Context, s *Session, doc *Document) (Reply, State, error) {
	rows, err := excel.DecodeRows(doc.Data)
	if err != nil {
		m.log.WithError(err).Warn("⚠️ Присланный файл не разобрался как XLSX")
		return keyboardMsg("Fayl XLSX formatida emas yoki buzilgan.",
			importExportKeyboard()), StateImportExport, nil
	}
	if len(rows) < 2 {
		return keyboardMsg("Faylda ma'lumot qatorlari topilmadi.",
			importExportKeyboard()), StateImportExport, nil
	}

	var inserted, updated, skipped int
	for _, row := range rows[1:] {
		barcode, err := parseBarcode(strings.TrimSpace(row[3]))
		if err != nil {
			skipped++
			continue
		}

		weight := excel.ParseFloatCell(strings.TrimSpace(row[13]))
		price := excel.ParseFloatCell(strings.TrimSpace(row[14]))
		finalPrice := excel.ParseFloatCell(strings.TrimSpace(row[15]))

		existing, err := m.catalog.ByBarcode(ctx, barcode)
		if err != nil {
			return Reply{}, s.State, err
		}

		if existing != nil {
			if weight == nil && price == nil && finalPrice == nil {
				skipped++
				continue
			}
			if err := m.catalog.UpdateWeightPrice(ctx, barcode, weight, price, finalPrice); err != nil {
				return Reply{}, s.State, err
			}
			updated++
			continue
		}

		// Вес и цены новой карточки заполняются позже через панель баркодов
		p := storage.Product{
			Name:         security.SanitizeText(strings.TrimSpace(row[1])),
			Artikul:      security.SanitizeText(strings.TrimSpace(row[2])),
			Barcode:      barcode,
			Category:     security.SanitizeText(strings.TrimSpace(row[4])),
			Postavshik:   security.SanitizeText(strings.TrimSpace(row[5])),
			Stock:        lenientFloat(row[6]),
			CenaPostavki: lenientInt(row[7]),
			CenaProdaji:  lenientInt(row[8]),
			Skidka:       lenientFloat(row[9]),
			Brend:        security.SanitizeText(strings.TrimSpace(row[10])),
			Srok:         security.SanitizeText(strings.TrimSpace(row[11])),
			Edinitsa:     security.SanitizeText(strings.TrimSpace(row[12])),
		}
		if err := m.catalog.Add(ctx, p); err != nil {
			return Reply{}, s.State, err
		}
		inserted++
	}

	summary := fmt.Sprintf(
		"Import yakunlandi:\n  Yangi: %d\n  Yangilangan: %d\n  O'tkazib yuborilgan: %d",
		inserted, updated, skipped)
	return keyboardMsg(summary, importExportKeyboard()), StateImportExport, nil
}
