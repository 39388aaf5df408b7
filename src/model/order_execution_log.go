// model/order_execution_log.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal statuses of an order interaction with the broker.
const (
	OrderExecutionStatusPending  = "pending"
	OrderExecutionStatusAccepted = "accepted"
	OrderExecutionStatusCanceled = "canceled"
	OrderExecutionStatusAbsent   = "already_absent"
	OrderExecutionStatusError    = "error"
)

// Journal actions.
const (
	OrderActionPlace  = "place"
	OrderActionCancel = "cancel"
)

// OrderExecutionLog stores each order placement or cancellation sent to the
// broker together with its outcome.
type OrderExecutionLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Correlation id, unique per broker interaction.
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`
	Action    string `gorm:"size:20;not null" json:"action"`

	// Snapshot of the request
	Ticker       string              `gorm:"size:100;index" json:"ticker"`
	OrderType    string              `gorm:"size:20" json:"order_type"`
	Quantity     decimal.Decimal     `gorm:"type:numeric" json:"quantity"`
	LimitPrice   decimal.NullDecimal `gorm:"type:numeric" json:"limit_price"`
	StopPrice    decimal.NullDecimal `gorm:"type:numeric" json:"stop_price"`
	TimeValidity string              `gorm:"size:30" json:"time_validity"`
	AccountMode  string              `gorm:"size:10" json:"account_mode"`

	// Broker side
	BrokerOrderID *int64 `gorm:"index" json:"broker_order_id,omitempty"`
	BrokerStatus  string `gorm:"size:30" json:"broker_status"`

	Status       string     `gorm:"size:30;not null;index" json:"status"` // see OrderExecutionStatus* constants
	ErrorMessage *string    `json:"error_message,omitempty"`
	RequestedAt  time.Time  `json:"requested_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName allows you to control the exact table name for execution logs.
func (OrderExecutionLog) TableName() string {
	return "order_execution_logs"
}
