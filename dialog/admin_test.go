package dialog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barkod_bot/storage"
)

func TestAdminPanelDeniedForOperator(t *testing.T) {
	env := newTestEnv(t)
	env.setState(t, operatorID, StateMainMenu)

	reply := env.send(operatorID, "Admin panel")

	assert.Contains(t, firstText(reply), "admin emassiz")
	assert.Equal(t, StateMainMenu, env.state(t, operatorID))
}

func TestAdminStatesDenyOperatorAndLeaveStoreUntouched(t *testing.T) {
	env := newTestEnv(t)
	addProduct(t, env, weighted("Cola", 123, 1))

	for _, state := range []State{
		StateAdminMenu, StateUpdateBarcode, StateDeleteProduct,
		StateImportExport, StateBasketMenu, StateBasketAdd,
	} {
		env.setState(t, operatorID, state)
		reply := env.send(operatorID, "123")

		assert.Contains(t, firstText(reply), "admin emassiz", "state=%s", state)
		assert.Equal(t, StateMainMenu, env.state(t, operatorID), "state=%s", state)
	}

	// Каталог и корзинка не изменились
	p, err := env.catalog.ByBarcode(context.Background(), 123)
	require.NoError(t, err)
	require.NotNil(t, p)
	items, err := env.basket.Items(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRateChangeDeniedForOperatorInPlace(t *testing.T) {
	env := newTestEnv(t)
	env.rates.rate = 12000
	env.setState(t, operatorID, StateDollarMenu)

	reply := env.send(operatorID, "Kursni o'zgartirish")

	assert.Contains(t, firstText(reply), "admin emassiz")
	// Отказ не выбрасывает из долларового меню
	assert.Equal(t, StateDollarMenu, env.state(t, operatorID))
	assert.Equal(t, 12000.0, env.rates.rate)
}

func TestRateChangeByAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.setState(t, adminID, StateDollarMenu)

	env.send(adminID, "Kursni o'zgartirish")
	require.Equal(t, StateRateInput, env.state(t, adminID))

	reply := env.send(adminID, "abc")
	assert.Contains(t, firstText(reply), "to'g'ri kurs")
	require.Equal(t, StateRateInput, env.state(t, adminID))

	reply = env.send(adminID, "12650.5")
	assert.Contains(t, firstText(reply), "12650.5")
	assert.Equal(t, 12650.5, env.rates.rate)
	assert.Equal(t, StateMainMenu, env.state(t, adminID))
}

func TestUpdateFlowRecomputesFinalPrice(t *testing.T) {
	env := newTestEnv(t)
	env.rates.rate = 12000
	addProduct(t, env, weighted("Cola", 123, 1))
	env.setState(t, adminID, StateUpdateBarcode)

	env.send(adminID, "123")
	require.Equal(t, StateUpdateName, env.state(t, adminID))

	env.send(adminID, "Cola Zero") // новое имя
	env.send(adminID, "2")         // новый вес
	reply := env.send(adminID, "10")

	assert.Contains(t, firstText(reply), "yangilandi")
	assert.Equal(t, StateAdminMenu, env.state(t, adminID))

	p, err := env.catalog.ByBarcode(context.Background(), 123)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Cola Zero", p.Name)
	require.NotNil(t, p.FinalPrice)
	// (10 + 13.5*2) * 12000 = 444000
	assert.Equal(t, 444000.0, *p.FinalPrice)
}

func TestUpdateSkipsBlankFields(t *testing.T) {
	env := newTestEnv(t)
	env.rates.rate = 12000
	w := 2.0
	price := 10.0
	addProduct(t, env, storage.Product{Name: "Cola", Barcode: 123, Weight: &w, Price: &price})
	env.setState(t, adminID, StateUpdateBarcode)

	env.send(adminID, "123")
	env.send(adminID, "-") // имя не меняем
	env.send(adminID, "-") // вес не меняем
	env.send(adminID, "-") // цену не меняем

	p, err := env.catalog.ByBarcode(context.Background(), 123)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Cola", p.Name)
	require.NotNil(t, p.Weight)
	assert.Equal(t, 2.0, *p.Weight)
	require.NotNil(t, p.FinalPrice)
	// final_price пересчитан из прежних веса и цены
	assert.Equal(t, 444000.0, *p.FinalPrice)
}

func TestUpdateMissingBarcodeFallsBackToLookup(t *testing.T) {
	env := newTestEnv(t)
	env.lookup.product = &storage.Product{Name: "Aspirin", Postavshik: "OpenFDA"}
	env.setState(t, adminID, StateUpdateBarcode)

	reply := env.send(adminID, "777")

	assert.Contains(t, firstText(reply), "OpenFDA")
	assert.Equal(t, StateUpdateName, env.state(t, adminID))

	p, err := env.catalog.ByBarcode(context.Background(), 777)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Aspirin", p.Name)
	assert.Equal(t, int64(777), p.Barcode)
}

func TestUpdateMissingEverywhereReturnsToAdminMenu(t *testing.T) {
	env := newTestEnv(t)
	env.setState(t, adminID, StateUpdateBarcode)

	reply := env.send(adminID, "777")

	assert.Contains(t, firstText(reply), "topilmadi")
	assert.Equal(t, StateAdminMenu, env.state(t, adminID))
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	addProduct(t, env, weighted("Cola", 123, 1))
	env.setState(t, adminID, StateDeleteProduct)

	reply := env.send(adminID, "123")

	assert.Contains(t, firstText(reply), "o'chirildi")
	assert.Equal(t, StateAdminMenu, env.state(t, adminID))

	p, err := env.catalog.ByBarcode(context.Background(), 123)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDeleteMissingProduct(t *testing.T) {
	env := newTestEnv(t)
	env.setState(t, adminID, StateDeleteProduct)

	reply := env.send(adminID, "999")

	assert.Contains(t, firstText(reply), "topilmadi")
	assert.Equal(t, StateAdminMenu, env.state(t, adminID))
}

func TestReportsWithEmptyCatalog(t *testing.T) {
	env := newTestEnv(t)
	env.setState(t, operatorID, StateReports)

	reply := env.send(operatorID, "Hisobotni ko'rish")

	assert.Contains(t, firstText(reply), "N/A")
	assert.Equal(t, StateReports, env.state(t, operatorID))
}
