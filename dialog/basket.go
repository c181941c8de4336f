package dialog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"barkod_bot/excel"
	"barkod_bot/pricing"
	"barkod_bot/storage"
)

// handleBasketMenu — меню корзинки (только для админа)
func (m *Manager) handleBasketMenu(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	if !m.isAdmin(s.UserID) {
		return m.denyNonAdmin()
	}

	switch strings.TrimSpace(ev.Text) {
	case btnAddProduct:
		return textMsg("Barkod kiriting:"), StateBasketAdd, nil

	case btnBasketItems:
		reply, err := m.renderBasketItems(ctx)
		if err != nil {
			return Reply{}, s.State, err
		}
		return reply, StateBasketView, nil

	case btnBasketExport:
		reply, err := m.exportBasket(ctx)
		if err != nil {
			return Reply{}, s.State, err
		}
		return reply, StateBasketMenu, nil

	case btnBack:
		return keyboardMsg("Admin menyusiga qaytish.", adminMenuKeyboard()), StateAdminMenu, nil

	default:
		return keyboardMsg("Noma'lum buyruq.", basketMenuKeyboard()), StateBasketMenu, nil
	}
}

// handleBasketAdd — баркод для добавления в корзинку. Товар без веса
// в корзинку не попадает, дубликат по баркоду отклоняется сразу,
// без запроса цены.
func (m *Manager) handleBasketAdd(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	if !m.isAdmin(s.UserID) {
		return m.denyNonAdmin()
	}

	text := strings.TrimSpace(ev.Text)
	if text == btnBack {
		return keyboardMsg("Korzinka menyusi:", basketMenuKeyboard()), StateBasketMenu, nil
	}

	barcode, err := parseBarcode(text)
	if err != nil {
		return textMsg("Barkod faqat raqam bo'lishi kerak yoki /cancel:"), StateBasketAdd, nil
	}

	product, err := m.catalog.ByBarcode(ctx, barcode)
	if err != nil {
		return Reply{}, s.State, err
	}

	var prefix []Message
	if product == nil {
		prefix = append(prefix, Message{Text: "Mahsulot lokal bazada topilmadi. OpenFDA orqali qidirilyapti..."})
		product, err = m.lookupAndInsert(ctx, barcode)
		if err != nil {
			return Reply{}, s.State, err
		}
		if product == nil {
			return Reply{Messages: append(prefix, Message{Text: "Mahsulot topilmadi."})},
				StateBasketAdd, nil
		}
	}

	if !product.HasWeight() {
		return Reply{Messages: append(prefix,
			Message{Text: "Bu mahsulotda og'irlik ko'rsatilmagan. Qoshish mumkin emas."})},
			StateBasketAdd, nil
	}

	existing, err := m.basket.ByBarcode(ctx, barcode)
	if err != nil {
		return Reply{}, s.State, err
	}
	if existing != nil {
		reply := Reply{Messages: append(prefix,
			Message{Text: "Bu mahsulot allaqachon korzinkada bor."},
			Message{Text: "Korzinka menyusiga qaytamiz.", Keyboard: basketMenuKeyboard()},
		)}
		return reply, StateBasketMenu, nil
	}

	s.Set(keyBasketName, product.Name)
	s.Set(keyBasketArtikul, product.Artikul)
	s.SetInt(keyBasketBarcode, barcode)
	s.SetFloat(keyBasketWeight, *product.Weight)

	found := fmt.Sprintf(
		"Mahsulot topildi:\n  Nomi: %s\n  Artikul: %s\n  Weight: %v\n\nNarx (USD) kiriting:",
		product.Name, product.Artikul, *product.Weight)
	return Reply{Messages: append(prefix, Message{Text: found})}, StateBasketPrice, nil
}

// handleBasketPrice — цена в долларах, расчёт сумовых цен и вставка
// позиции с количеством 1
func (m *Manager) handleBasketPrice(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	if !m.isAdmin(s.UserID) {
		return m.denyNonAdmin()
	}

	priceUSD, err := strconv.ParseFloat(strings.TrimSpace(ev.Text), 64)
	if err != nil || priceUSD < 0 {
		return textMsg("Narx (USD)ni to'g'ri kiriting:"), StateBasketPrice, nil
	}

	weight := s.GetFloat(keyBasketWeight, 0)
	rate, err := m.rates.Rate(ctx)
	if err != nil {
		return Reply{}, s.State, err
	}
	priceSom := pricing.ToLocal(priceUSD, rate)
	pricePostavki := pricing.LandedCost(priceUSD, weight, rate)

	item := storage.BasketItem{
		Name:          s.Get(keyBasketName, ""),
		Artikul:       s.Get(keyBasketArtikul, ""),
		Barcode:       s.GetInt(keyBasketBarcode, 0),
		Weight:        weight,
		Price:         priceSom,
		PricePostavki: pricePostavki,
		Shtuk:         1,
	}
	if err := m.basket.Upsert(ctx, item); err != nil {
		return Reply{}, s.State, err
	}

	s.SetInt(keyBasketShtuk, 1)
	s.SetFloat(keyBasketPrice, priceSom)
	s.SetFloat(keyBasketPostavki, pricePostavki)

	msg := fmt.Sprintf(
		"Mahsulot qo'shildi:\n  Nomi: %s\n  Artikul: %s\n  Barkod: %d\n"+
			"  Weight: %v\n  Price(so'm): %.2f\n  Price_postavki(so'm): %.2f\n  Shtuk: 1\n",
		item.Name, item.Artikul, item.Barcode, item.Weight, item.Price, item.PricePostavki)
	return inlineMsg(msg, basketAdjustInline(1)), StateBasketInline, nil
}

// handleBasketInline — кнопки "+/-/Keyingi" сразу после добавления
func (m *Manager) handleBasketInline(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	if !m.isAdmin(s.UserID) {
		return Reply{}.withNotice("Siz admin emassiz!", true), StateBasketMenu, nil
	}

	data := ev.Callback
	switch {
	case data == cbNext:
		reply := Reply{Messages: []Message{
			editMsg("Mahsulot qo'shildi."),
			{Text: "Yana mahsulot qo'shish uchun 'Maxsulot qo'shish' tugmasini bosing.",
				Keyboard: basketMenuKeyboard()},
		}}
		return reply.withNotice("", false), StateBasketMenu, nil

	case data == cbPlus || data == cbMinus:
		item, err := m.basket.ByBarcode(ctx, s.GetInt(keyBasketBarcode, 0))
		if err != nil {
			return Reply{}, s.State, err
		}
		if item == nil {
			return Reply{}.withNotice("Mahsulot topilmadi.", true), StateBasketMenu, nil
		}

		// Новое количество считается от свежей строки, черновик
		// сессии источником не является
		shtuk := item.Shtuk
		if data == cbPlus {
			shtuk++
		} else {
			if shtuk <= 1 {
				// Ниже единицы не опускаемся: удаление — отдельная кнопка
				return Reply{}.withNotice("Shtuk kam bo'lmaydi.", true), StateBasketInline, nil
			}
			shtuk--
		}

		if err := m.basket.SetShtuk(ctx, item.ID, shtuk); err != nil {
			return Reply{}, s.State, err
		}

		// Экран строится по свежей строке, а не по черновику
		fresh, err := m.basket.ByID(ctx, item.ID)
		if err != nil {
			return Reply{}, s.State, err
		}
		if fresh == nil {
			return Reply{}.withNotice("Mahsulot topilmadi.", true), StateBasketMenu, nil
		}

		msg := fmt.Sprintf(
			"Mahsulot qo'shildi:\n  Nomi: %s\n  Artikul: %s\n  Barkod: %d\n"+
				"  Weight: %v\n  Price(so'm): %.2f\n  Price_postavki(so'm): %.2f\n  Shtuk: %d\n",
			fresh.Name, fresh.Artikul, fresh.Barcode, fresh.Weight,
			fresh.Price, fresh.PricePostavki, fresh.Shtuk)
		reply := Reply{Messages: []Message{
			{Text: msg, Inline: basketAdjustInline(fresh.Shtuk), Edit: true},
		}}
		return reply.withNotice("Shtuk yangilandi.", false), StateBasketInline, nil

	default:
		return Reply{}.withNotice("Noma'lum buyruq!", true), StateBasketInline, nil
	}
}

// handleBasketView — список корзинки: правка количества по кнопкам
// позиций, экспорт и выход
func (m *Manager) handleBasketView(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	if !m.isAdmin(s.UserID) {
		return m.denyNonAdmin()
	}

	if ev.IsCallback() {
		return m.adjustBasketItem(ctx, s, ev.Callback)
	}

	switch strings.TrimSpace(ev.Text) {
	case btnExportBasket:
		reply, err := m.exportBasket(ctx)
		if err != nil {
			return Reply{}, s.State, err
		}
		return reply, StateBasketMenu, nil

	case btnBack:
		return keyboardMsg("Korzinka menyusiga qaytdik.", basketMenuKeyboard()), StateBasketMenu, nil

	default:
		return keyboardMsg("Noma'lum buyruq.", basketMenuKeyboard()), StateBasketMenu, nil
	}
}

// adjustBasketItem — inc_<id>/dec_<id>/remove_<id> из списка корзинки
func (m *Manager) adjustBasketItem(ctx context.Context, s *Session, data string) (Reply, State, error) {
	action, idStr, ok := strings.Cut(data, "_")
	if !ok {
		return Reply{}.withNotice("Noma'lum buyruq!", true), StateBasketView, nil
	}
	itemID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return Reply{}.withNotice("Noma'lum buyruq!", true), StateBasketView, nil
	}

	item, err := m.basket.ByID(ctx, itemID)
	if err != nil {
		return Reply{}, s.State, err
	}
	if item == nil {
		return Reply{}.withNotice("Item topilmadi.", true), StateBasketMenu, nil
	}

	var notice string
	switch action {
	case "inc":
		if err := m.basket.SetShtuk(ctx, itemID, item.Shtuk+1); err != nil {
			return Reply{}, s.State, err
		}
		notice = "Korzinkadagi mahsulot soni oshirildi."

	case "dec":
		if item.Shtuk <= 1 {
			// Количество не падает ниже единицы
			return Reply{}.withNotice("Shtuk kam bo'lmaydi.", true), StateBasketView, nil
		}
		if err := m.basket.SetShtuk(ctx, itemID, item.Shtuk-1); err != nil {
			return Reply{}, s.State, err
		}
		notice = "Korzinkadagi mahsulot soni kamaytirildi."

	case "remove":
		if err := m.basket.Remove(ctx, itemID); err != nil {
			return Reply{}, s.State, err
		}
		return Reply{Messages: []Message{editMsg("Mahsulot korzinkadan o'chirildi.")}}.
			withNotice("", false), StateBasketView, nil

	default:
		return Reply{}.withNotice("Noma'lum buyruq!", true), StateBasketView, nil
	}

	// Перечитываем строку и перерисовываем карточку позиции
	fresh, err := m.basket.ByID(ctx, itemID)
	if err != nil {
		return Reply{}, s.State, err
	}
	if fresh == nil {
		return Reply{Messages: []Message{editMsg("Item topilmadi.")}}.
			withNotice("", false), StateBasketMenu, nil
	}

	msg := basketItemText(*fresh)
	reply := Reply{Messages: []Message{
		{Text: msg, Inline: basketItemInline(fresh.ID, fresh.Shtuk), Edit: true},
	}}
	return reply.withNotice(notice, false), StateBasketView, nil
}

// renderBasketItems — каждая позиция отдельным сообщением со своими
// кнопками, затем клавиатура действий
func (m *Manager) renderBasketItems(ctx context.Context) (Reply, error) {
	items, err := m.basket.Items(ctx)
	if err != nil {
		return Reply{}, err
	}
	if len(items) == 0 {
		return keyboardMsg("Korzinka bo'sh.", basketMenuKeyboard()), nil
	}

	var msgs []Message
	for _, it := range items {
		msgs = append(msgs, Message{
			Text:   basketItemText(it),
			Inline: basketItemInline(it.ID, it.Shtuk),
		})
	}
	msgs = append(msgs, Message{Text: "Boshqa amallar:", Keyboard: basketViewKeyboard()})
	return Reply{Messages: msgs}, nil
}

func basketItemText(it storage.BasketItem) string {
	return fmt.Sprintf(
		"#%d: %s\n   Artikul: %s\n   Barkod: %d\n   Weight: %v\n"+
			"   Price: %.2f\n   Postavki: %.2f\n   Shtuk: %d\n",
		it.ID, it.Name, it.Artikul, it.Barcode, it.Weight,
		it.Price, it.PricePostavki, it.Shtuk)
}

// exportBasket выгружает корзинку в XLSX и очищает её
func (m *Manager) exportBasket(ctx context.Context) (Reply, error) {
	items, err := m.basket.Items(ctx)
	if err != nil {
		return Reply{}, err
	}
	if len(items) == 0 {
		return textMsg("Korzinka bo'sh, hech narsa yo'q."), nil
	}

	data, err := excel.EncodeBasket(items)
	if err != nil {
		return Reply{}, err
	}
	if err := m.basket.Clear(ctx); err != nil {
		return Reply{}, err
	}

	reply := Reply{Messages: []Message{
		{File: &File{Name: "korzinka_export.xlsx", Data: data}},
		{Text: "Korzinka tozalandi va eksport qilindi."},
	}}
	return reply, nil
}
