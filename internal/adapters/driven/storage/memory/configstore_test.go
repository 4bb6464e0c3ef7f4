package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("dasha.system", "vimshottari"))
	require.NoError(t, store.Set("dasha.system", "yogini"))

	val, ok := store.Get("dasha.system")
	assert.True(t, ok)
	assert.Equal(t, "yogini", val)
}

func TestConfigStore_Numbers(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		wantInt   int
		wantFloat float64
	}{
		{"int", 3, 3, 3},
		{"int64", int64(7), 7, 7},
		{"float64", 365.2425, 365, 365.2425},
		{"float32", float32(0.5), 0, 0.5},
		{"string", "12", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			require.NoError(t, store.Set("k", tt.value))
			assert.Equal(t, tt.wantInt, store.GetInt("k"))
			assert.InDelta(t, tt.wantFloat, store.GetFloat("k"), 1e-6)
		})
	}
}

func TestConfigStore_StringAndBool(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("s", "gregorian"))
	require.NoError(t, store.Set("b", true))

	assert.Equal(t, "gregorian", store.GetString("s"))
	assert.Equal(t, "", store.GetString("b"))
	assert.True(t, store.GetBool("b"))
	assert.False(t, store.GetBool("s"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_SaveLoadNoop(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("dasha.depth", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("dasha.depth")
		}()
	}
	wg.Wait()
}
