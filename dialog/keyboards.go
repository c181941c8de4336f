package dialog

import "fmt"

// Подписи кнопок меню. Совпадают с текстом, который присылает Telegram
// при нажатии, поэтому обработчики сравнивают входящий текст с ними.
const (
	btnSearchBarcode = "Barkod bilan qidirish"
	btnDollar        = "Dollar kursi"
	btnAddProduct    = "Maxsulot qo'shish"
	btnAllProducts   = "Barcha mahsulotlar"
	btnReports       = "Hisobotlar"
	btnAdminPanel    = "Admin panel"
	btnBack          = "Orqaga"

	btnRateShow   = "Kursni ko'rish"
	btnRateChange = "Kursni o'zgartirish"

	btnReportShow = "Hisobotni ko'rish"

	btnUpdateProduct = "Mahsulotni yangilash"
	btnDeleteProduct = "Mahsulotni o'chirish"
	btnImportExport  = "XLSX import/export"
	btnBasket        = "Korzinka"

	btnXLSXImport = "XLSX import"
	btnXLSXExport = "XLSX export"

	btnBasketItems  = "Korzinkadagi Maxsulotlar"
	btnBasketExport = "Export"
	btnExportBasket = "Export Korzinka"
)

// Данные inline-кнопок
const (
	cbAddMore         = "add_more"
	cbBack            = "back"
	cbAddProductAgain = "add_product_again"
	cbPlus            = "plus"
	cbMinus           = "minus"
	cbNext            = "next"
	cbNoop            = "noop"
)

func mainMenuKeyboard(isAdmin bool) [][]string {
	kb := [][]string{
		{btnSearchBarcode},
		{btnDollar, btnAddProduct},
		{btnAllProducts, btnReports},
	}
	if isAdmin {
		kb = append(kb, []string{btnAdminPanel})
	}
	return kb
}

func dollarMenuKeyboard() [][]string {
	return [][]string{
		{btnRateShow, btnRateChange},
		{btnBack},
	}
}

func backKeyboard() [][]string {
	return [][]string{{btnBack}}
}

func reportsMenuKeyboard() [][]string {
	return [][]string{{btnReportShow, btnBack}}
}

func adminMenuKeyboard() [][]string {
	return [][]string{
		{btnUpdateProduct, btnDeleteProduct},
		{btnImportExport, btnBasket},
		{btnBack},
	}
}

func importExportKeyboard() [][]string {
	return [][]string{
		{btnXLSXImport, btnXLSXExport},
		{btnBack},
	}
}

func basketMenuKeyboard() [][]string {
	return [][]string{
		{btnAddProduct, btnBasketItems},
		{btnBasketExport},
		{btnBack},
	}
}

func basketViewKeyboard() [][]string {
	return [][]string{
		{btnExportBasket},
		{btnBack},
	}
}

// Кнопки после ввода цены: продолжить с новым баркодом или выйти
func priceDoneInline() [][]Button {
	return [][]Button{
		{{Label: "Yana barkod kiriting", Data: cbAddMore}},
		{{Label: btnBack, Data: cbBack}},
	}
}

// Кнопки после добавления товара: повторить анкету или выйти
func addDoneInline() [][]Button {
	return [][]Button{
		{{Label: "Yana mahsulot qo'shish", Data: cbAddProductAgain}},
		{{Label: btnBack, Data: cbBack}},
	}
}

// Листание каталога
func productPagesInline(page, totalPages int) [][]Button {
	var row []Button
	if page > 1 {
		row = append(row, Button{Label: "⬅️ Oldingi", Data: fmt.Sprintf("page_%d", page-1)})
	}
	if page < totalPages {
		row = append(row, Button{Label: "➡️ Keyingi", Data: fmt.Sprintf("page_%d", page+1)})
	}
	row = append(row, Button{Label: btnBack, Data: cbBack})
	return [][]Button{row}
}

// Кнопки "+/-/Keyingi" сразу после добавления в корзинку.
// Минус прячется при количестве 1.
func basketAdjustInline(shtuk int) [][]Button {
	var row []Button
	if shtuk > 1 {
		row = append(row, Button{Label: "➖", Data: cbMinus})
	}
	row = append(row,
		Button{Label: "➕", Data: cbPlus},
		Button{Label: "Keyingi", Data: cbNext},
	)
	return [][]Button{row}
}

// Кнопки позиции корзинки в общем списке
func basketItemInline(itemID int64, shtuk int) [][]Button {
	var row []Button
	if shtuk > 1 {
		row = append(row, Button{Label: "➖", Data: fmt.Sprintf("dec_%d", itemID)})
	}
	row = append(row,
		Button{Label: "➕", Data: fmt.Sprintf("inc_%d", itemID)},
		Button{Label: "🗑", Data: fmt.Sprintf("remove_%d", itemID)},
	)
	return [][]Button{row}
}
