package storage

// Product — карточка товара в каталоге.
// Weight/Price/FinalPrice заполняются позже через панель баркодов,
// поэтому допускают NULL.
type Product struct {
	ID           int64
	Name         string
	Artikul      string
	Barcode      int64
	Category     string
	Postavshik   string
	Stock        float64
	CenaPostavki int64
	CenaProdaji  int64
	Skidka       float64
	Brend        string
	Srok         string
	Edinitsa     string
	Weight       *float64
	Price        *float64
	FinalPrice   *float64
}

// HasWeight — вес задан и положителен
func (p *Product) HasWeight() bool {
	return p.Weight != nil && *p.Weight > 0
}

// BasketItem — позиция в корзинке (одна на баркод)
type BasketItem struct {
	ID            int64
	Name          string
	Artikul       string
	Barcode       int64
	Weight        float64
	Price         float64
	PricePostavki float64
	Shtuk         int
}

// Stats — сводка по каталогу для отчётов
type Stats struct {
	MaxPrice   *float64
	MinPrice   *float64
	AvgPrice   *float64
	TotalStock float64
}
