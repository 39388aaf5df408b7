package executors

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Schedule is a cron spec, e.g. "@every 6h" or "0 3 * * *".
	Schedule string `envconfig:"HISTORY_SYNC_SCHEDULE" default:"@every 6h"`
	// RunOnStart runs the job once before waiting for the first tick.
	RunOnStart bool `envconfig:"HISTORY_SYNC_RUN_ON_START" default:"true"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
