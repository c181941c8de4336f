package dialog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"barkod_bot/storage"
)

// PageSize — сколько товаров выводится на одной странице каталога
const PageSize = 10

// TotalPages — количество страниц для total записей
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	pages := total / PageSize
	if total%PageSize != 0 {
		pages++
	}
	return pages
}

// ClampPage прижимает запрошенную страницу к диапазону [1, totalPages]
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageOffset — смещение выборки для страницы
func PageOffset(page int) int {
	return (page - 1) * PageSize
}

// renderProductsPage перечитывает страницу каталога из хранилища.
// Первая отправка из меню — полные карточки, листание кнопками —
// короткий список с редактированием сообщения.
func (m *Manager) renderProductsPage(ctx context.Context, page int, edit bool) (Reply, error) {
	total, err := m.catalog.Count(ctx)
	if err != nil {
		return Reply{}, err
	}
	totalPages := TotalPages(total)
	if totalPages == 0 {
		return textMsg("Hozircha hech qanday mahsulot mavjud emas!"), nil
	}
	page = ClampPage(page, totalPages)

	products, err := m.catalog.List(ctx, PageSize, PageOffset(page))
	if err != nil {
		return Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Barcha mahsulotlar (sahifa %d/%d):\n\n", page, totalPages)
	start := PageOffset(page)
	for i, p := range products {
		if edit {
			writeProductShort(&b, start+i+1, p)
		} else {
			writeProductFull(&b, start+i+1, p)
		}
	}

	msg := Message{Text: b.String(), Inline: productPagesInline(page, totalPages), Edit: edit}
	return Reply{Messages: []Message{msg}}, nil
}

func writeProductFull(b *strings.Builder, idx int, p storage.Product) {
	fmt.Fprintf(b, "%d. %s\n", idx, p.Name)
	fmt.Fprintf(b, "   Artikul: %s\n", p.Artikul)
	fmt.Fprintf(b, "   Barkod: %d\n", p.Barcode)
	fmt.Fprintf(b, "   Category: %s\n", p.Category)
	fmt.Fprintf(b, "   Postavshik: %s\n", p.Postavshik)
	fmt.Fprintf(b, "   Stock: %v\n", p.Stock)
	fmt.Fprintf(b, "   Cena_postavki: %d\n", p.CenaPostavki)
	fmt.Fprintf(b, "   Cena_prodaji: %d\n", p.CenaProdaji)
	fmt.Fprintf(b, "   Skidka: %v\n", p.Skidka)
	fmt.Fprintf(b, "   Brend: %s\n", p.Brend)
	fmt.Fprintf(b, "   Srok: %s\n", p.Srok)
	fmt.Fprintf(b, "   Edinitsa: %s\n", p.Edinitsa)
	fmt.Fprintf(b, "   Weight: %s\n", floatOrDash(p.Weight))
	fmt.Fprintf(b, "   Price(USD): %s\n", floatOrDash(p.Price))
	fmt.Fprintf(b, "   Final(so'm): %s\n\n", floatOrDash(p.FinalPrice))
}

func writeProductShort(b *strings.Builder, idx int, p storage.Product) {
	fmt.Fprintf(b, "%d. %s\n", idx, p.Name)
	fmt.Fprintf(b, "   Barkod: %d\n", p.Barcode)
	fmt.Fprintf(b, "   Price(USD): %s\n", floatOrDash(p.Price))
	fmt.Fprintf(b, "   Final(so'm): %s\n\n", floatOrDash(p.FinalPrice))
}

func floatOrDash(v *float64) string {
	if v == nil {
		return "—"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// handleViewProducts — листание каталога inline-кнопками
func (m *Manager) handleViewProducts(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	isAdmin := m.isAdmin(s.UserID)
	data := ev.Callback

	switch {
	case strings.HasPrefix(data, "page_"):
		page, err := strconv.Atoi(strings.TrimPrefix(data, "page_"))
		if err != nil {
			return Reply{}.withNotice("Noto'g'ri sahifa raqami.", true), StateViewProducts, nil
		}
		reply, err := m.renderProductsPage(ctx, page, true)
		if err != nil {
			return Reply{}, s.State, err
		}
		return reply.withNotice("", false), StateViewProducts, nil

	case data == cbBack:
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
