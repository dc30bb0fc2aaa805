package cache

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/ManuelReschke/PayPlan/internal/pkg/config"
)

func TestDisabledCacheAlwaysMisses(t *testing.T) {
	SetupCache(config.Cache{Enabled: false})

	assert.False(t, Enabled())
	assert.Nil(t, GetClient())

	err := Set("k", "v", time.Minute)
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = Get("k")
	assert.True(t, IsMiss(err))
	assert.True(t, IsMiss(Delete("k")))
}

func TestIsMiss(t *testing.T) {
	assert.True(t, IsMiss(redis.Nil))
	assert.True(t, IsMiss(ErrDisabled))
	assert.False(t, IsMiss(assert.AnError))
	assert.False(t, IsMiss(nil))
}
