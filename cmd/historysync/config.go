package historysync

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Ticker limits orders and dividends to one instrument. Transactions are
	// never filtered by ticker.
	Ticker    string `envconfig:"HISTORY_SYNC_TICKER"`
	PageLimit int    `envconfig:"HISTORY_SYNC_PAGE_LIMIT" default:"50"`
	// MaxPages caps pages per kind and run. Zero means no cap.
	MaxPages int `envconfig:"HISTORY_SYNC_MAX_PAGES" default:"0"`
	// PageInterval spaces page requests. History endpoints allow about six
	// requests per minute.
	PageInterval time.Duration `envconfig:"HISTORY_SYNC_PAGE_INTERVAL" default:"10s"`
	Kinds        []string      `envconfig:"HISTORY_SYNC_KINDS" default:"orders,dividends,transactions"`
}

func GetConfig() *Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return &config
}
