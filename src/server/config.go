package server

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port string `envconfig:"PORT" default:"9898"`
	// RelayToken guards every route except /healthcheck and /metrics. Empty disables the check.
	RelayToken     string        `envconfig:"RELAY_TOKEN"`
	RequestTimeout time.Duration `envconfig:"RELAY_REQUEST_TIMEOUT" default:"30s"`
}

func GetConfig() *Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return &config
}
