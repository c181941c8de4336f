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

// ---------- Панель баркодов: поиск -> вес -> цена -> final_price ----------

// handleBarcodeInput ищет товар по баркоду. Если вес ещё не задан,
// сначала спрашиваем вес, иначе сразу цену.
func (m *Manager) handleBarcodeInput(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	text := strings.TrimSpace(ev.Text)
	if text == btnBack {
		return keyboardMsg("Asosiy menyuga qaytildi.",
			mainMenuKeyboard(m.isAdmin(s.UserID))), StateMainMenu, nil
	}

	barcode, err := parseBarcode(text)
	if err != nil {
		return keyboardMsg("Barkod faqat raqam bo'lishi kerak yoki Orqaga bosing:",
			backKeyboard()), StateBarcodeInput, nil
	}

	product, err := m.catalog.ByBarcode(ctx, barcode)
	if err != nil {
		return Reply{}, s.State, err
	}
	if product == nil {
		// В этом сценарии внешний справочник не используется
		return keyboardMsg("Bunday barkod topilmadi. Qayta kiritish yoki Orqaga bosing.",
			backKeyboard()), StateBarcodeInput, nil
	}

	s.SetInt(keyBarcode, barcode)
	s.Set(keyProductName, product.Name)

	if product.Weight == nil {
		return keyboardMsg(
			fmt.Sprintf("Mahsulot topildi: %s\nOg'irlikni (weight) kiriting (masalan, 1.0 yoki 0.5):", product.Name),
			backKeyboard()), StateWeightInput, nil
	}
	return keyboardMsg(
		fmt.Sprintf("Mahsulot topildi: %s\nNarxni (USD) kiriting yoki Orqaga bosing:", product.Name),
		backKeyboard()), StatePriceInput, nil
}

// handleWeightInput принимает вес, строго больше нуля
func (m *Manager) handleWeightInput(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	text := strings.TrimSpace(ev.Text)
	if text == btnBack {
		return keyboardMsg("Asosiy menyuga qaytildi.",
			mainMenuKeyboard(m.isAdmin(s.UserID))), StateMainMenu, nil
	}

	weight, err := strconv.ParseFloat(text, 64)
	if err != nil || weight <= 0 {
		return keyboardMsg("Iltimos, to'g'ri og'irlik kiriting yoki Orqaga bosing:",
			backKeyboard()), StateWeightInput, nil
	}

	s.SetFloat(keyWeight, weight)
	return keyboardMsg("Narxni (USD) kiriting yoki Orqaga bosing:",
		backKeyboard()), StatePriceInput, nil
}

// handlePriceInput принимает цену в долларах, считает final_price
// и сохраняет вес/цену в каталог
func (m *Manager) handlePriceInput(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	isAdmin := m.isAdmin(s.UserID)
	text := strings.TrimSpace(ev.Text)
	if text == btnBack {
		return keyboardMsg("Asosiy menyuga qaytildi.", mainMenuKeyboard(isAdmin)), StateMainMenu, nil
	}

	priceUSD, err := strconv.ParseFloat(text, 64)
	if err != nil || priceUSD < 0 {
		return keyboardMsg("Iltimos, to'g'ri narx kiriting yoki Orqaga bosing:",
			backKeyboard()), StatePriceInput, nil
	}

	if !s.Has(keyBarcode) {
		return keyboardMsg("Xatolik: mahsulot barkodi topilmadi. Iltimos, qidiruvni qaytadan boshlang.",
			mainMenuKeyboard(isAdmin)), StateMainMenu, nil
	}
	barcode := s.GetInt(keyBarcode, 0)

	// Вес берём из черновика; если шаг веса был пропущен —
	// перечитываем товар, чтобы не работать с устаревшим значением
	weight := s.GetFloat(keyWeight, 0)
	if !s.Has(keyWeight) {
		product, err := m.catalog.ByBarcode(ctx, barcode)
		if err != nil {
			return Reply{}, s.State, err
		}
		if product != nil && product.Weight != nil {
			weight = *product.Weight
		}
	}

	rate, err := m.rates.Rate(ctx)
	if err != nil {
		return Reply{}, s.State, err
	}
	finalPrice := pricing.FinalPrice(priceUSD, weight, rate)

	if err := m.catalog.UpdateWeightPrice(ctx, barcode, &weight, &priceUSD, &finalPrice); err != nil {
		return Reply{}, s.State, err
	}

	summary := fmt.Sprintf(
		"Nomi: %s\nBarkod: %d\nPrice (USD): %v\nWeight: %v\nFinal(so'm): %v\n",
		s.Get(keyProductName, ""), barcode, priceUSD, weight, finalPrice)

	reply := textMsg(summary).
		append(Message{Text: "Davom etish yoki orqaga qaytish?", Inline: priceDoneInline()})
	return reply, StatePriceDone, nil
}

// handlePriceDone — кнопки после записи цены
func (m *Manager) handlePriceDone(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	isAdmin := m.isAdmin(s.UserID)

	switch ev.Callback {
	case cbAddMore:
		return Reply{Messages: []Message{editMsg("Yana barkod kiriting:")}}.
			withNotice("", false), StateBarcodeInput, nil

	case cbBack:
		reply := Reply{Messages: []Message{
			editMsg("Asosiy menyuga qaytildi."),
			{Text: "Asosiy menyu:", Keyboard: mainMenuKeyboard(isAdmin)},
		}}
		return reply.withNotice("", false), StateMainMenu, nil

	default:
		reply := Reply{Messages: []Message{
			editMsg("Noma'lum tugma bosildi."),
			{Text: "Asosiy menyu:", Keyboard: mainMenuKeyboard(isAdmin)},
		}}
		return reply.withNotice("", false), StateMainMenu, nil
	}
}

// ---------- Анкета нового товара: одиннадцать полей по одному ----------
//
// Числовые поля разбираются снисходительно: кривой ввод превращается
// в ноль, анкета никогда не зацикливается на одном вопросе.

func (m *Manager) handleAddName(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	s.Set(keyNewName, security.SanitizeText(ev.Text))
	return textMsg("Artikul kiriting (masalan, A-100 yoki 12345):"), StateAddArtikul, nil
}

func (m *Manager) handleAddArtikul(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	s.Set(keyNewArtikul, security.SanitizeText(ev.Text))
	return textMsg("Kategoriya kiriting (category):"), StateAddCategory, nil
}

func (m *Manager) handleAddCategory(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	s.Set(keyNewCategory, security.SanitizeText(ev.Text))
	return textMsg("Postavshik kiriting (masalan, 'Samsung' yoki 'Local'):"), StateAddPostavshik, nil
}

func (m *Manager) handleAddPostavshik(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	s.Set(keyNewPostavshik, security.SanitizeText(ev.Text))
	return textMsg("Stock (float) kiriting (masalan, 10 yoki 2.5):"), StateAddStock, nil
}

func (m *Manager) handleAddStock(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	s.SetFloat(keyNewStock, lenientFloat(ev.Text))
	return textMsg("Cena postavki (raqam) kiriting:"), StateAddCenaPostavki, nil
}

func (m *Manager) handleAddCenaPostavki(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	s.SetInt(keyNewCenaPostavki, lenientInt(ev.Text))
	return textMsg("Cena prodaji (raqam) kiriting:"), StateAddCenaProdaji, nil
}

func (m *Manager) handleAddCenaProdaji(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	s.SetInt(keyNewCenaProdaji, lenientInt(ev.Text))
	return textMsg("Skidka (float) kiriting (masalan, 5 yoki 10.5):"), StateAddSkidka, nil
}

func (m *Manager) handleAddSkidka(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	s.SetFloat(keyNewSkidka, lenientFloat(ev.Text))
	return textMsg("Brend nomi kiriting (masalan, 'Apple'):"), StateAddBrend, nil
}

func (m *Manager) handleAddBrend(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	s.Set(keyNewBrend, security.SanitizeText(ev.Text))
	return textMsg("Srok (yaroqlilik muddati) kiriting (masalan, '12 oy'):"), StateAddSrok, nil
}

func (m *Manager) handleAddSrok(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	s.Set(keyNewSrok, security.SanitizeText(ev.Text))
	return textMsg("Edinitsa_izmereniya kiriting (masalan, 'dona'):"), StateAddEdinitsa, nil
}

func (m *Manager) handleAddEdinitsa(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	s.Set(keyNewEdinitsa, security.SanitizeText(ev.Text))
	return textMsg("Barkodni kiriting (faqat raqam):"), StateAddBarcode, nil
}

// handleAddBarcode завершает анкету и пишет карточку в каталог.
// Вес и цены этим сценарием не заполняются — их вводят позже
// через панель баркодов.
func (m *Manager) handleAddBarcode(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	barcode := lenientInt(ev.Text)

	p := storage.Product{
		Name:         s.Get(keyNewName, ""),
		Artikul:      s.Get(keyNewArtikul, ""),
		Barcode:      barcode,
		Category:     s.Get(keyNewCategory, ""),
		Postavshik:   s.Get(keyNewPostavshik, ""),
		Stock:        s.GetFloat(keyNewStock, 0),
		CenaPostavki: s.GetInt(keyNewCenaPostavki, 0),
		CenaProdaji:  s.GetInt(keyNewCenaProdaji, 0),
		Skidka:       s.GetFloat(keyNewSkidka, 0),
		Brend:        s.Get(keyNewBrend, ""),
		Srok:         s.Get(keyNewSrok, ""),
		Edinitsa:     s.Get(keyNewEdinitsa, ""),
	}
	if err := m.catalog.Add(ctx, p); err != nil {
		return Reply{}, s.State, err
	}

	summary := fmt.Sprintf(
		"Yangi mahsulot qo'shildi:\n\n"+
			"Nomi: %s\nArtikul: %s\nBarkod: %d\nKategoriya: %s\nPostavshik: %s\n"+
			"Stock: %v\nCena postavki: %d\nCena prodaji: %d\nSkidka: %v\n"+
			"Brend: %s\nSrok: %s\nEdinitsa: %s\n\n"+
			"Yana mahsulot qo'shasizmi yoki Orqaga?",
		p.Name, p.Artikul, p.Barcode, p.Category, p.Postavshik,
		p.Stock, p.CenaPostavki, p.CenaProdaji, p.Skidka,
		p.Brend, p.Srok, p.Edinitsa)

	return inlineMsg(summary, addDoneInline()), StateAddDone, nil
}

// handleAddDone — повторить анкету или вернуться в меню
func (m *Manager) handleAddDone(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	isAdmin := m.isAdmin(s.UserID)

	switch ev.Callback {
	case cbAddProductAgain:
		// Черновик предыдущей анкеты больше не нужен
		s.ClearScratch()
		return Reply{Messages: []Message{editMsg("Mahsulot nomini kiriting (name):")}}.
			withNotice("", false), StateAddName, nil

	case cbBack:
		reply := Reply{Messages: []Message{
			editMsg("Asosiy menyuga qaytildi."),
			{Text: "Asosiy menyu:", Keyboard: mainMenuKeyboard(isAdmin)},
		}}
		return reply.withNotice("", false), StateMainMenu, nil

	default:
		return Reply{Messages: []Message{editMsg("Noma'lum tugma bosildi.")}}.
			withNotice("", false), StateMainMenu, nil
	}
}

// parseBarcode — баркод состоит только из цифр, без знака
func parseBarcode(text string) (int64, error) {
	if text == "" {
		return 0, fmt.Errorf("bad barcode %q", text)
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("bad barcode %q", text)
		}
	}
	barcode, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad barcode %q", text)
	}
	return barcode, nil
}

// lenientFloat / lenientInt — снисходительный разбор для анкеты и импорта
func lenientFloat(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return v
}

func lenientInt(text string) int64 {
	text = strings.TrimSpace(text)
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v
	}
	// "12.0" из таблиц тоже считаем числом
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return int64(f)
	}
	return 0
}
