package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalPrice(t *testing.T) {
	// (10 + 13.5*2) * 12000 = 444000
	assert.Equal(t, 444000.0, FinalPrice(10, 2, 12000))

	// нулевой вес — чистая конвертация
	assert.Equal(t, 120000.0, FinalPrice(10, 0, 12000))

	// курс 1.0 — цена остаётся в долларах
	assert.Equal(t, 37.0, FinalPrice(10, 2, 1.0))

	// округление до целого
	assert.Equal(t, 124.0, FinalPrice(10.3, 0, 12.0))
}

func TestFinalPriceFormula(t *testing.T) {
	cases := []struct {
		price, weight, rate float64
	}{
		{0, 0.5, 11500},
		{1.25, 0.1, 10995.5},
		{99.99, 3.3, 12650},
		{10, 2, 0},
	}
	for _, c := range cases {
		want := math.Round((c.price + MarkupPerKg*c.weight) * c.rate)
		assert.Equal(t, want, FinalPrice(c.price, c.weight, c.rate))
	}
}

func TestLandedCost(t *testing.T) {
	// (2 + 13.5*0.5) * 11000 = 96250
	assert.Equal(t, 96250.0, LandedCost(2, 0.5, 11000))

	// дробный результат режется до копеек
	got := LandedCost(1.111, 0.333, 10995.5)
	assert.Equal(t, Round2(got), got)
}

func TestToLocal(t *testing.T) {
	assert.Equal(t, 115000.0, ToLocal(10, 11500))
	assert.Equal(t, 5.75, ToLocal(0.5, 11.5))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, 1.24, Round2(1.2351))
	assert.Equal(t, -1.23, Round2(-1.2349))
}
