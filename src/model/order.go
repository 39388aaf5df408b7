package model

import "strings"

// Order is dual purpose: the same type is sent as a new-order request (only the
// fields meaningful for the order subtype are set) and decoded from order
// status responses (full field set). Every field is omitted when unset, so a
// market order never carries limitPrice or stopPrice keys.
type Order struct {
	ID             *int64       `json:"id,omitempty"`
	Ticker         string       `json:"ticker,omitempty"`
	Quantity       float64      `json:"quantity,omitempty"`
	LimitPrice     *float64     `json:"limitPrice,omitempty"`
	StopPrice      *float64     `json:"stopPrice,omitempty"`
	TimeValidity   TimeValidity `json:"timeValidity,omitempty"`
	Type           OrderType    `json:"type,omitempty"`
	Status         OrderStatus  `json:"status,omitempty"`
	FilledQuantity *float64     `json:"filledQuantity,omitempty"`
	FilledValue    *float64     `json:"filledValue,omitempty"`
	CreationTime   *string      `json:"creationTime,omitempty"`
	Strategy       *string      `json:"strategy,omitempty"`
	Value          *float64     `json:"value,omitempty"`
}

// NewMarketOrder builds a market order request. Negative quantity sells.
func NewMarketOrder(ticker string, quantity float64) Order {
	return Order{Ticker: ticker, Quantity: quantity}
}

func NewLimitOrder(ticker string, quantity, limitPrice float64, validity TimeValidity) Order {
	return Order{Ticker: ticker, Quantity: quantity, LimitPrice: &limitPrice, TimeValidity: validity}
}

func NewStopOrder(ticker string, quantity, stopPrice float64, validity TimeValidity) Order {
	return Order{Ticker: ticker, Quantity: quantity, StopPrice: &stopPrice, TimeValidity: validity}
}

func NewStopLimitOrder(ticker string, quantity, stopPrice, limitPrice float64, validity TimeValidity) Order {
	return Order{
		Ticker:       ticker,
		Quantity:     quantity,
		StopPrice:    &stopPrice,
		LimitPrice:   &limitPrice,
		TimeValidity: validity,
	}
}

// RequestFor returns the subset of o that the given order subtype accepts.
// Response-only fields and prices that do not apply are cleared.
func (o Order) RequestFor(kind OrderType) Order {
	req := Order{Ticker: o.Ticker, Quantity: o.Quantity}
	switch kind {
	case OrderTypeLimit:
		req.LimitPrice = o.LimitPrice
		req.TimeValidity = o.TimeValidity
	case OrderTypeStop:
		req.StopPrice = o.StopPrice
		req.TimeValidity = o.TimeValidity
	case OrderTypeStopLimit:
		req.LimitPrice = o.LimitPrice
		req.StopPrice = o.StopPrice
		req.TimeValidity = o.TimeValidity
	}
	return req
}

// ValidateFor checks that o carries what the given order subtype needs.
func (o Order) ValidateFor(kind OrderType) error {
	if strings.TrimSpace(o.Ticker) == "" {
		return invalid("ticker", "is required")
	}
	if o.Quantity == 0 {
		return invalid("quantity", "must not be zero")
	}

	needLimit := kind == OrderTypeLimit || kind == OrderTypeStopLimit
	needStop := kind == OrderTypeStop || kind == OrderTypeStopLimit

	if needLimit && (o.LimitPrice == nil || *o.LimitPrice <= 0) {
		return invalid("limitPrice", "must be a positive price for "+string(kind)+" orders")
	}
	if needStop && (o.StopPrice == nil || *o.StopPrice <= 0) {
		return invalid("stopPrice", "must be a positive price for "+string(kind)+" orders")
	}
	if (needLimit || needStop) && o.TimeValidity != TimeValidityUnknown && !o.TimeValidity.IsKnown() {
		return invalid("timeValidity", "unsupported value "+string(o.TimeValidity))
	}
	return nil
}
