package dialog

// State — текущий шаг диалога с оператором.
// Каждому состоянию соответствует ровно один обработчик.
type State string

const (
	StateMainMenu   State = "main_menu"
	StateDollarMenu State = "dollar_menu"
	StateRateInput  State = "rate_input"

	// Панель баркодов: поиск -> вес (если не задан) -> цена -> готово
	StateBarcodeInput State = "barcode_input"
	StateWeightInput  State = "weight_input"
	StatePriceInput   State = "price_input"
	StatePriceDone    State = "price_done"

	// Добавление товара: одиннадцать полей по одному, затем баркод
	StateAddName         State = "add_name"
	StateAddArtikul      State = "add_artikul"
	StateAddCategory     State = "add_category"
	StateAddPostavshik   State = "add_postavshik"
	StateAddStock        State = "add_stock"
	StateAddCenaPostavki State = "add_cena_postavki"
	StateAddCenaProdaji  State = "add_cena_prodaji"
	StateAddSkidka       State = "add_skidka"
	StateAddBrend        State = "add_brend"
	StateAddSrok         State = "add_srok"
	StateAddEdinitsa     State = "add_edinitsa"
	StateAddBarcode      State = "add_barcode"
	StateAddDone         State = "add_done"

	StateViewProducts State = "view_products"
	StateReports      State = "reports"

	// Админка
	StateAdminMenu     State = "admin_menu"
	StateUpdateBarcode State = "update_barcode"
	StateUpdateName    State = "update_name"
	StateUpdateWeight  State = "update_weight"
	StateUpdatePrice   State = "update_price"
	StateDeleteProduct State = "delete_product"
	StateImportExport  State = "import_export"

	// Корзинка
	StateBasketMenu   State = "basket_menu"
	StateBasketAdd    State = "basket_add"
	StateBasketPrice  State = "basket_price"
	StateBasketInline State = "basket_inline"
	StateBasketView   State = "basket_view"
)
