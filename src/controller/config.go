package controller

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// OrderSizePercent is the share of free cash used when an order is sized
	// from cash instead of an explicit quantity.
	OrderSizePercent int `envconfig:"ORDER_SIZE_PERCENT" default:"25"`
	// QuantityPrecision is the number of decimals kept for fractional shares.
	QuantityPrecision int32 `envconfig:"ORDER_QUANTITY_PRECISION" default:"2"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
