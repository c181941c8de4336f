package dialog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barkod_bot/storage"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, want int
	}{
		{0, 0},
		{1, 1},
		{9, 1},
		{10, 1},
		{11, 2},
		{20, 2},
		{21, 3},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TotalPages(c.total), "total=%d", c.total)
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 5))
	assert.Equal(t, 1, ClampPage(-3, 5))
	assert.Equal(t, 5, ClampPage(9, 5))
	assert.Equal(t, 3, ClampPage(3, 5))
	assert.Equal(t, 1, ClampPage(1, 1))
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, PageOffset(1))
	assert.Equal(t, 10, PageOffset(2))
	assert.Equal(t, 20, PageOffset(3))
}

func seedProducts(t *testing.T, env *testEnv, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		require.NoError(t, env.catalog.Add(context.Background(), storage.Product{
			Name:    fmt.Sprintf("Product %d", i),
			Barcode: int64(1000 + i),
		}))
	}
}

func TestViewProductsFirstPage(t *testing.T) {
	env := newTestEnv(t)
	seedProducts(t, env, 25)
	env.setState(t, operatorID, StateMainMenu)

	reply := env.send(operatorID, "Barcha mahsulotlar")

	assert.Contains(t, firstText(reply), "sahifa 1/3")
	assert.Contains(t, firstText(reply), "Product 1")
	assert.NotContains(t, firstText(reply), "Product 11")
	assert.Equal(t, StateViewProducts, env.state(t, operatorID))
}

func TestViewProductsEmptyCatalog(t *testing.T) {
	env := newTestEnv(t)
	env.setState(t, operatorID, StateMainMenu)

	reply := env.send(operatorID, "Barcha mahsulotlar")

	assert.Contains(t, firstText(reply), "mavjud emas")
	assert.Equal(t, StateMainMenu, env.state(t, operatorID))
}

func TestViewProductsPaging(t *testing.T) {
	env := newTestEnv(t)
	seedProducts(t, env, 25)
	env.setState(t, operatorID, StateViewProducts)

	reply := env.press(operatorID, "page_3")
	assert.Contains(t, firstText(reply), "sahifa 3/3")
	assert.Contains(t, firstText(reply), "Product 21")
	assert.True(t, reply.Messages[0].Edit)

	// Запрос за пределами диапазона прижимается к последней странице
	reply = env.press(operatorID, "page_99")
	assert.Contains(t, firstText(reply), "sahifa 3/3")

	reply = env.press(operatorID, "page_0")
	assert.Contains(t, firstText(reply), "sahifa 1/3")
}

func TestViewProductsBackToMenu(t *testing.T) {
	env := newTestEnv(t)
	seedProducts(t, env, 5)
	env.setState(t, operatorID, StateViewProducts)

	env.press(operatorID, "back")

	assert.Equal(t, StateMainMenu, env.state(t, operatorID))
}
