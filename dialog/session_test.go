package dialog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScratchNumericRoundtrip(t *testing.T) {
	s := newSession(7)

	s.SetFloat("weight", 2.5)
	s.SetInt("barcode", 4600000000001)
	s.Set("name", "Cola")

	assert.Equal(t, 2.5, s.GetFloat("weight", 0))
	assert.Equal(t, int64(4600000000001), s.GetInt("barcode", 0))
	assert.Equal(t, "Cola", s.Get("name", ""))
	assert.True(t, s.Has("weight"))
	assert.False(t, s.Has("missing"))
	assert.Equal(t, 9.9, s.GetFloat("missing", 9.9))
}

func TestScratchSurvivesJSONSerialization(t *testing.T) {
	s := newSession(7)
	s.State = StatePriceInput
	s.SetFloat("weight", 0.5)
	s.SetInt("barcode", 123)

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var restored Session
	require.NoError(t, json.Unmarshal(raw, &restored))

	assert.Equal(t, StatePriceInput, restored.State)
	assert.Equal(t, 0.5, restored.GetFloat("weight", 0))
	assert.Equal(t, int64(123), restored.GetInt("barcode", 0))
}

func TestScratchDeleteAndClear(t *testing.T) {
	s := newSession(7)
	s.Set("a", "1")
	s.Set("b", "2")

	s.Delete("a")
	assert.False(t, s.Has("a"))
	assert.True(t, s.Has("b"))

	s.ClearScratch()
	assert.False(t, s.Has("b"))
}

func TestMemoryStoreGetOrCreate(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	s, err := store.GetOrCreate(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), s.UserID)
	assert.Equal(t, StateMainMenu, s.State)

	s.State = StateBarcodeInput
	require.NoError(t, store.Save(ctx, s))

	again, err := store.GetOrCreate(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, StateBarcodeInput, again.State)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	s, err := store.GetOrCreate(ctx, 42)
	require.NoError(t, err)
	s.State = StateReports
	require.NoError(t, store.Save(ctx, s))

	require.NoError(t, store.Delete(ctx, 42))

	fresh, err := store.GetOrCreate(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, StateMainMenu, fresh.State)
}

func TestMemoryStoreSweepEvictsIdleSessions(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	s, err := store.GetOrCreate(ctx, 42)
	require.NoError(t, err)
	s.State = StateReports
	require.NoError(t, store.Save(ctx, s))

	time.Sleep(20 * time.Millisecond)
	store.sweep()

	fresh, err := store.GetOrCreate(ctx, 42)
	require.NoError(t, err)
	// Простоявшая дольше TTL сессия выкинута, диалог начинается заново
	assert.Equal(t, StateMainMenu, fresh.State)
}
