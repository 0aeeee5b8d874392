package mixer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateStore_SaveAndLoad(t *testing.T) {
	store := NewStateStore(newFakeRedis(), testLogger())
	ctx := context.Background()

	saved := &LightState{
		State:          "on",
		WarmBrightness: 75,
		ColdBrightness: 180,
		ColorTemp:      4600,
		UpdatedAt:      1724400000000,
	}
	require.NoError(t, store.Save(ctx, "livingroom", saved))

	loaded, err := store.Load(ctx, "livingroom")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, saved.State, loaded.State)
	assert.Equal(t, saved.WarmBrightness, loaded.WarmBrightness)
	assert.Equal(t, saved.ColdBrightness, loaded.ColdBrightness)
	assert.Equal(t, saved.ColorTemp, loaded.ColorTemp)
	assert.Equal(t, saved.UpdatedAt, loaded.UpdatedAt)
}

func TestStateStore_LoadMissing(t *testing.T) {
	store := NewStateStore(newFakeRedis(), testLogger())

	loaded, err := store.Load(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStateStore_LoadToleratesGarbage(t *testing.T) {
	redisClient := newFakeRedis()
	redisClient.hashes["mixer:state:livingroom"] = map[string]string{
		"state":           "on",
		"warm_brightness": "not-a-number",
	}

	store := NewStateStore(redisClient, testLogger())

	loaded, err := store.Load(context.Background(), "livingroom")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, "on", loaded.State)
	assert.Equal(t, 0, loaded.WarmBrightness)
	assert.Equal(t, 0, loaded.ColdBrightness)
}
