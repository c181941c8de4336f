package dialog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"barkod_bot/pricing"
	"barkod_bot/security"
	"barkod_bot/storage"
)

// handleAdminMenu — ветки админки: обновление, удаление, XLSX, корзинка
func (m *Manager) handleAdminMenu(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	if !m.isAdmin(s.UserID) {
		return m.denyNonAdmin()
	}

	switch strings.TrimSpace(ev.Text) {
	case btnUpdateProduct:
		return textMsg("Yangilash uchun barkod kiriting:"), StateUpdateBarcode, nil

	case btnDeleteProduct:
		return textMsg("O'chirish uchun barkod kiriting:"), StateDeleteProduct, nil

	case btnImportExport:
		return keyboardMsg("XLSX import/export menyusi:", importExportKeyboard()), StateImportExport, nil

	case btnBasket:
		return keyboardMsg("Korzinka menyusi:", basketMenuKeyboard()), StateBasketMenu, nil

	case btnBack:
		return keyboardMsg("Asosiy menyuga qaytdik.", mainMenuKeyboard(true)), StateMainMenu, nil

	default:
		return keyboardMsg("Noma'lum buyruq.", adminMenuKeyboard()), StateAdminMenu, nil
	}
}

// handleUpdateBarcode — первый шаг обновления. Если товара нет в каталоге,
// пробуем внешний справочник и, при попадании, сохраняем карточку у себя.
func (m *Manager) handleUpdateBarcode(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	if !m.isAdmin(s.UserID) {
		return m.denyNonAdmin()
	}

	text := strings.TrimSpace(ev.Text)
	barcode, err := parseBarcode(text)
	if err != nil {
		return textMsg("Barkod faqat raqam bo'lishi kerak!"), StateUpdateBarcode, nil
	}

	product, err := m.catalog.ByBarcode(ctx, barcode)
	if err != nil {
		return Reply{}, s.State, err
	}

	var found Reply
	if product == nil {
		enriched, err := m.lookupAndInsert(ctx, barcode)
		if err != nil {
			return Reply{}, s.State, err
		}
		if enriched == nil {
			return keyboardMsg("Mahsulot OpenFDA da topilmadi. /cancel yoki Orqaga.",
				adminMenuKeyboard()), StateAdminMenu, nil
		}
		product = enriched
		found = textMsg(fmt.Sprintf(
			"OpenFDA orqali mahsulot topildi va lokal bazaga qo'shildi: %s\n"+
				"Yangi nomni kiriting (bo'sh qoldirsangiz o'zgarmaydi):", product.Name))
	} else {
		found = textMsg(fmt.Sprintf(
			"Mahsulot topildi: %s\nYangi nomni kiriting (bo'sh qoldirsangiz o'zgarmaydi):",
			product.Name))
	}

	s.SetInt(keyUpdProductID, product.ID)
	s.SetInt(keyUpdBarcode, product.Barcode)
	return found, StateUpdateName, nil
}

// lookupAndInsert спрашивает внешний справочник и кладёт найденную
// карточку в каталог. Возвращает (nil, nil) при промахе или если
// справочник выключен.
func (m *Manager) lookupAndInsert(ctx context.Context, barcode int64) (*storage.Product, error) {
	if m.lookup == nil {
		return nil, nil
	}
	enriched, err := m.lookup.Lookup(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if enriched == nil {
		return nil, nil
	}
	enriched.Barcode = barcode
	if err := m.catalog.Add(ctx, *enriched); err != nil {
		return nil, err
	}
	// Перечитываем, чтобы получить сгенерированный id
	return m.catalog.ByBarcode(ctx, barcode)
}

// handleUpdateName — необязательная смена названия
func (m *Manager) handleUpdateName(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	text := strings.TrimSpace(ev.Text)
	if text != "" && text != "-" {
		s.Set(keyUpdName, security.SanitizeText(text))
	} else {
		s.Delete(keyUpdName)
	}
	return textMsg("Yangi og'irlikni (float) kiriting (bo'sh bo'lsa o'zgarmaydi):"), StateUpdateWeight, nil
}

// handleUpdateWeight — необязательный новый вес
func (m *Manager) handleUpdateWeight(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	text := strings.TrimSpace(ev.Text)
	if text != "" && text != "-" {
		weight, err := strconv.ParseFloat(text, 64)
		if err != nil || weight <= 0 {
			return textMsg("Og'irlik faqat raqam bo'lishi kerak!"), StateUpdateWeight, nil
		}
		s.SetFloat(keyUpdWeight, weight)
	} else {
		s.Delete(keyUpdWeight)
	}
	return textMsg("Yangi narx (USD) kiriting (bo'sh bo'lsa o'zgarmaydi):"), StateUpdatePrice, nil
}

// handleUpdatePrice — финал обновления: пересчёт final_price и запись
func (m *Manager) handleUpdatePrice(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	text := strings.TrimSpace(ev.Text)
	var newPrice *float64
	if text != "" && text != "-" {
		price, err := strconv.ParseFloat(text, 64)
		if err != nil || price < 0 {
			return textMsg("Narx faqat raqam bo'lishi kerak!"), StateUpdatePrice, nil
		}
		newPrice = &price
	}

	barcode := s.GetInt(keyUpdBarcode, 0)
	product, err := m.catalog.ByBarcode(ctx, barcode)
	if err != nil {
		return Reply{}, s.State, err
	}
	if product == nil {
		return keyboardMsg("Xatolik: mahsulot topilmadi.", adminMenuKeyboard()), StateAdminMenu, nil
	}

	if newName := s.Get(keyUpdName, ""); newName != "" {
		if err := m.catalog.UpdateName(ctx, s.GetInt(keyUpdProductID, product.ID), newName); err != nil {
			return Reply{}, s.State, err
		}
	}

	// Не заданные на этом проходе значения берём из карточки
	finalWeight := s.GetFloat(keyUpdWeight, 0)
	if !s.Has(keyUpdWeight) && product.Weight != nil {
		finalWeight = *product.Weight
	}
	finalPriceUSD := 0.0
	if newPrice != nil {
		finalPriceUSD = *newPrice
	} else if product.Price != nil {
		finalPriceUSD = *product.Price
	}

	rate, err := m.rates.Rate(ctx)
	if err != nil {
		return Reply{}, s.State, err
	}
	finalPrice := pricing.FinalPrice(finalPriceUSD, finalWeight, rate)

	if err := m.catalog.UpdateWeightPrice(ctx, barcode, &finalWeight, &finalPriceUSD, &finalPrice); err != nil {
		return Reply{}, s.State, err
	}

	return keyboardMsg("Mahsulot muvaffaqiyatli yangilandi.", adminMenuKeyboard()), StateAdminMenu, nil
}

// handleDeleteProduct — удаление по баркоду; отсутствие товара
// сообщается, но ошибкой не считается
func (m *Manager) handleDeleteProduct(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	if !m.isAdmin(s.UserID) {
		return m.denyNonAdmin()
	}

	text := strings.TrimSpace(ev.Text)
	if text == btnBack {
		return keyboardMsg("Admin menyusiga qaytildi.", adminMenuKeyboard()), StateAdminMenu, nil
	}

	barcode, err := parseBarcode(text)
	if err != nil {
		return textMsg("Barkod faqat raqam bo'lishi kerak!"), StateDeleteProduct, nil
	}

	product, err := m.catalog.ByBarcode(ctx, barcode)
	if err != nil {
		return Reply{}, s.State, err
	}
	if product == nil {
		return keyboardMsg("Mahsulot topilmadi.", adminMenuKeyboard()), StateAdminMenu, nil
	}

	if err := m.catalog.Delete(ctx, barcode); err != nil {
		return Reply{}, s.State, err
	}
	return keyboardMsg("Mahsulot o'chirildi.", adminMenuKeyboard()), StateAdminMenu, nil
}
