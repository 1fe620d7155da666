package config

import (
	"context"
	"sync"
	"time"

	envconfig "github.com/sethvargo/go-envconfig"
)

// DynamicConfig carries tunables the editor reads at runtime rather
// than at process wiring time.
type DynamicConfig struct {
	AutosaveInterval time.Duration `env:"EDITOR_AUTOSAVE_INTERVAL, default=30s"`
	SessionTTL       time.Duration `env:"EDITOR_SESSION_TTL, default=12h"`
	ExportDir        string        `env:"EDITOR_EXPORT_DIR, default=./exports"`
	NotifyWorkers    int           `env:"NOTIFY_WORKERS, default=8"`
}

var (
	dynamic     *DynamicConfig
	dynamicOnce sync.Once
)

func Dynamic(ctx context.Context) *DynamicConfig {
	dynamicOnce.Do(func() {
		dynamic = &DynamicConfig{}
		if err := envconfig.Process(ctx, dynamic); err != nil {
			// Defaults are always valid; only malformed overrides land here.
			dynamic = &DynamicConfig{
				AutosaveInterval: 30 * time.Second,
				SessionTTL:       12 * time.Hour,
				ExportDir:        "./exports",
				NotifyWorkers:    8,
			}
		}
	})
	return dynamic
}
