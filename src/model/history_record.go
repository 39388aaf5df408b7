package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Archive rows written by the history sync. DedupKey is derived from the
// broker record by the mapper and makes re-syncing a page a no-op.

type HistoricalOrderRecord struct {
	ID              uint                `gorm:"primaryKey" json:"id"`
	DedupKey        string              `gorm:"size:120;uniqueIndex;not null" json:"dedup_key"`
	BrokerOrderID   *int64              `gorm:"index" json:"broker_order_id,omitempty"`
	ParentOrderID   *int64              `json:"parent_order_id,omitempty"`
	FillID          *int64              `json:"fill_id,omitempty"`
	Ticker          string              `gorm:"size:100;index" json:"ticker"`
	OrderType       string              `gorm:"size:20" json:"order_type"`
	Status          string              `gorm:"size:30" json:"status"`
	Executor        string              `gorm:"size:30" json:"executor"`
	FillType        string              `gorm:"size:30" json:"fill_type"`
	OrderedQuantity decimal.NullDecimal `gorm:"type:numeric" json:"ordered_quantity"`
	FilledQuantity  decimal.NullDecimal `gorm:"type:numeric" json:"filled_quantity"`
	FillPrice       decimal.NullDecimal `gorm:"type:numeric" json:"fill_price"`
	FillCost        decimal.NullDecimal `gorm:"type:numeric" json:"fill_cost"`
	FillResult      decimal.NullDecimal `gorm:"type:numeric" json:"fill_result"`
	TaxTotal        decimal.Decimal     `gorm:"type:numeric" json:"tax_total"`
	DateCreated     *time.Time          `json:"date_created,omitempty"`
	DateExecuted    *time.Time          `gorm:"index" json:"date_executed,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

func (HistoricalOrderRecord) TableName() string {
	return "history_orders"
}

type DividendRecord struct {
	ID                  uint                `gorm:"primaryKey" json:"id"`
	DedupKey            string              `gorm:"size:120;uniqueIndex;not null" json:"dedup_key"`
	Ticker              string              `gorm:"size:100;index" json:"ticker"`
	Reference           string              `gorm:"type:text" json:"reference"`
	DividendType        string              `gorm:"size:60" json:"dividend_type"`
	Amount              decimal.NullDecimal `gorm:"type:numeric" json:"amount"`
	AmountInEuro        decimal.NullDecimal `gorm:"type:numeric" json:"amount_in_euro"`
	GrossAmountPerShare decimal.NullDecimal `gorm:"type:numeric" json:"gross_amount_per_share"`
	Quantity            decimal.NullDecimal `gorm:"type:numeric" json:"quantity"`
	PaidOn              *time.Time          `gorm:"index" json:"paid_on,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
}

func (DividendRecord) TableName() string {
	return "history_dividends"
}

type TransactionRecord struct {
	ID              uint                `gorm:"primaryKey" json:"id"`
	DedupKey        string              `gorm:"size:120;uniqueIndex;not null" json:"dedup_key"`
	Reference       string              `gorm:"type:text" json:"reference"`
	TransactionType string              `gorm:"size:30;index" json:"transaction_type"`
	Amount          decimal.NullDecimal `gorm:"type:numeric" json:"amount"`
	DateTime        *time.Time          `gorm:"index" json:"date_time,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

func (TransactionRecord) TableName() string {
	return "history_transactions"
}
