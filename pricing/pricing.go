package pricing

import "math"

// MarkupPerKg — надбавка в долларах за килограмм веса товара.
// Закладывает стоимость доставки в итоговую цену.
const MarkupPerKg = 13.5

// FinalPrice считает розничную цену в сумах:
// (цена USD + надбавка за вес) * курс, округлённая до целого.
func FinalPrice(priceUSD, weight, rate float64) float64 {
	return math.Round((priceUSD + MarkupPerKg*weight) * rate)
}

// LandedCost — себестоимость с доставкой в сумах для корзинки,
// та же формула, но с точностью до копеек.
func LandedCost(priceUSD, weight, rate float64) float64 {
	return Round2((priceUSD + MarkupPerKg*weight) * rate)
}

// ToLocal переводит цену из долларов в сумы по текущему курсу
func ToLocal(priceUSD, rate float64) float64 {
	return Round2(priceUSD * rate)
}

// Round2 — округление до двух знаков
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
