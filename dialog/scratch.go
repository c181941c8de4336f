package dialog

// Ключи черновика сессии. У каждого сценария свой набор,
// черновик целиком сбрасывается при возврате в главное меню.
const (
	// панель баркодов
	keyBarcode     = "barcode"
	keyProductName = "product_name"
	keyWeight      = "weight_val"

	// обновление товара
	keyUpdProductID = "upd_product_id"
	keyUpdBarcode   = "upd_barcode"
	keyUpdName      = "upd_new_name"
	keyUpdWeight    = "upd_new_weight"

	// анкета нового товара
	keyNewName         = "new_name"
	keyNewArtikul      = "new_artikul"
	keyNewCategory     = "new_category"
	keyNewPostavshik   = "new_postavshik"
	keyNewStock        = "new_stock"
	keyNewCenaPostavki = "new_cena_postavki"
	keyNewCenaProdaji  = "new_cena_prodaji"
	keyNewSkidka       = "new_skidka"
	keyNewBrend        = "new_brend"
	keyNewSrok         = "new_srok"
	keyNewEdinitsa     = "new_edi"

	// корзинка
	keyBasketName     = "basket_name"
	keyBasketArtikul  = "basket_artikul"
	keyBasketBarcode  = "basket_barcode"
	keyBasketWeight   = "basket_weight"
	keyBasketShtuk    = "basket_shtuk"
	keyBasketPrice    = "basket_price"
	keyBasketPostavki = "basket_price_postavki"
)
