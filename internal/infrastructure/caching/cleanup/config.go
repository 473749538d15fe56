// Package cleanup provides background cache maintenance
package cleanup

import (
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

// Config controls the cleanup worker cadence and eviction windows.
type Config struct {
	Interval   time.Duration
	QueryGC    time.Duration
	SessionTTL time.Duration
}

// DefaultConfig returns the configured cleanup windows.
func DefaultConfig() Config {
	return Config{
		Interval:   config.CacheCleanupInterval,
		QueryGC:    config.QueryGCWindow,
		SessionTTL: config.SessionTTL,
	}
}
