package memcache_fx

import (
	mem "fablink/pkg/memcache"

	"go.uber.org/fx"
)

var Module = fx.Provide(provideMemcacheClient)

func provideMemcacheClient() mem.ResetTokenStore {
	return mem.NewResetTokens()
}
