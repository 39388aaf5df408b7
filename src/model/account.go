package model

// AccountMetadata identifies the account behind the API key.
type AccountMetadata struct {
	ID           *int64  `json:"id,omitempty"`
	CurrencyCode *string `json:"currencyCode,omitempty"`
}

// AccountCash is a point-in-time cash snapshot in account currency.
// Blocked is absent on some account states (e.g. demo accounts).
type AccountCash struct {
	Free     float64  `json:"free"`
	Total    float64  `json:"total"`
	Ppl      float64  `json:"ppl"`
	Result   float64  `json:"result"`
	Invested float64  `json:"invested"`
	PieCash  float64  `json:"pieCash"`
	Blocked  *float64 `json:"blocked,omitempty"`
}

// Position is one held instrument, keyed by ticker.
type Position struct {
	Ticker          string  `json:"ticker"`
	Quantity        float64 `json:"quantity"`
	AveragePrice    float64 `json:"averagePrice"`
	CurrentPrice    float64 `json:"currentPrice"`
	Ppl             float64 `json:"ppl"`
	FxPpl           float64 `json:"fxPpl"`
	InitialFillDate string  `json:"initialFillDate"`
	Frontend        string  `json:"frontend"`
	MaxBuy          float64 `json:"maxBuy"`
	MaxSell         float64 `json:"maxSell"`
	PieQuantity     float64 `json:"pieQuantity"`
}

// MarketValue is the position value at the current price, in instrument currency.
func (p Position) MarketValue() float64 {
	return p.Quantity * p.CurrentPrice
}

func (p *Position) Check() error {
	if p.Ticker == "" {
		return invalid("ticker", "missing from position")
	}
	return nil
}
