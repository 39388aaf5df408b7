package model

import (
	"net/url"
	"strconv"
	"time"
)

const (
	HistoryDefaultLimit = 20
	HistoryMaxLimit     = 50
)

// Page is a paginated envelope. NextPagePath is an opaque cursor: it is handed
// back verbatim as the next query's cursor and never parsed.
type Page[T any] struct {
	Items        []T     `json:"items"`
	NextPagePath *string `json:"nextPagePath,omitempty"`
}

// HasNext reports whether the server announced another page.
func (p Page[T]) HasNext() bool {
	return p.NextPagePath != nil && *p.NextPagePath != ""
}

type (
	HistoricalOrderPage = Page[HistoricalOrder]
	DividendPage        = Page[DividendItem]
	TransactionPage     = Page[TransactionItem]
)

// HistoryQuery selects one page of a history endpoint. Unset fields are not
// sent.
type HistoryQuery struct {
	Cursor *string
	Ticker *string
	Limit  *int
}

// NextQuery returns the query for the page after p, keeping filters from q.
// ok is false when p was the last page.
func NextQuery[T any](q HistoryQuery, p Page[T]) (next HistoryQuery, ok bool) {
	if !p.HasNext() {
		return q, false
	}
	cursor := *p.NextPagePath
	q.Cursor = &cursor
	return q, true
}

func (q HistoryQuery) Validate() error {
	if q.Limit != nil && (*q.Limit < 1 || *q.Limit > HistoryMaxLimit) {
		return invalid("limit", "must be between 1 and "+strconv.Itoa(HistoryMaxLimit)+", got "+strconv.Itoa(*q.Limit))
	}
	return nil
}

// Values renders the query string. The limit defaults to HistoryDefaultLimit.
func (q HistoryQuery) Values() url.Values {
	v := url.Values{}
	if q.Cursor != nil {
		v.Set("cursor", *q.Cursor)
	}
	if q.Ticker != nil && *q.Ticker != "" {
		v.Set("ticker", *q.Ticker)
	}
	limit := HistoryDefaultLimit
	if q.Limit != nil {
		limit = *q.Limit
	}
	v.Set("limit", strconv.Itoa(limit))
	return v
}

type Tax struct {
	FillID      *string    `json:"fillId,omitempty"`
	Name        *string    `json:"name,omitempty"`
	Quantity    *float64   `json:"quantity,omitempty"`
	TimeCharged *time.Time `json:"timeCharged,omitempty"`
}

// HistoricalOrder is an append-only record of a past order and its fill.
type HistoricalOrder struct {
	ID              *int64     `json:"id,omitempty"`
	ParentOrder     *int64     `json:"parentOrder,omitempty"`
	Ticker          *string    `json:"ticker,omitempty"`
	Type            *string    `json:"type,omitempty"`
	Status          *string    `json:"status,omitempty"`
	Executor        *string    `json:"executor,omitempty"`
	TimeValidity    *string    `json:"timeValidity,omitempty"`
	DateCreated     *time.Time `json:"dateCreated,omitempty"`
	DateExecuted    *time.Time `json:"dateExecuted,omitempty"`
	DateModified    *time.Time `json:"dateModified,omitempty"`
	FillID          *int64     `json:"fillId,omitempty"`
	FillType        *string    `json:"fillType,omitempty"`
	FillCost        *float64   `json:"fillCost,omitempty"`
	FillPrice       *float64   `json:"fillPrice,omitempty"`
	FillResult      *float64   `json:"fillResult,omitempty"`
	FilledQuantity  *float64   `json:"filledQuantity,omitempty"`
	FilledValue     *float64   `json:"filledValue,omitempty"`
	LimitPrice      *float64   `json:"limitPrice,omitempty"`
	StopPrice       *float64   `json:"stopPrice,omitempty"`
	OrderedQuantity *float64   `json:"orderedQuantity,omitempty"`
	OrderedValue    *float64   `json:"orderedValue,omitempty"`
	Taxes           []Tax      `json:"taxes,omitempty"`
}

type DividendItem struct {
	Amount              *float64   `json:"amount,omitempty"`
	AmountInEuro        *float64   `json:"amountInEuro,omitempty"`
	GrossAmountPerShare *float64   `json:"grossAmountPerShare,omitempty"`
	PaidOn              *time.Time `json:"paidOn,omitempty"`
	Quantity            *float64   `json:"quantity,omitempty"`
	Reference           *string    `json:"reference,omitempty"`
	Ticker              *string    `json:"ticker,omitempty"`
	Type                *string    `json:"type,omitempty"`
}

type TransactionItem struct {
	Amount    *float64        `json:"amount,omitempty"`
	DateTime  *time.Time      `json:"dateTime,omitempty"`
	Reference *string         `json:"reference,omitempty"`
	Type      TransactionType `json:"type,omitempty"`
}
