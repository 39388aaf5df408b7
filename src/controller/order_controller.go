package controller

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"trading212/src/connectors"
	"trading212/src/model"
	"trading212/src/repository"
)

// Broker is the part of the Trading 212 client the controller drives.
type Broker interface {
	PlaceOrder(ctx context.Context, kind model.OrderType, o model.Order) (*model.Order, error)
	CancelOrder(ctx context.Context, id int64) (connectors.DeleteOutcome, error)
	Mode() connectors.AccountMode
}

// Journal records every order interaction.
type Journal interface {
	Create(ctx context.Context, entry *model.OrderExecutionLog) error
	Complete(ctx context.Context, reference string, outcome repository.JournalOutcome) error
}

// OrderController places and cancels orders and journals each attempt. A
// journal failure is logged and never changes what the broker returned.
type OrderController struct {
	Broker  Broker
	Journal Journal
	Now     func() time.Time
	NewRef  func() string
}

func NewOrderController(broker Broker, journal Journal) *OrderController {
	return &OrderController{
		Broker:  broker,
		Journal: journal,
		Now:     func() time.Time { return time.Now().UTC() },
		NewRef:  func() string { return uuid.NewString() },
	}
}

// Place validates, journals and sends an order. The returned reference
// identifies the journal entry.
func (c *OrderController) Place(ctx context.Context, kind model.OrderType, order model.Order) (*model.Order, string, error) {
	order.Ticker = NormalizeTicker(order.Ticker)
	if err := order.ValidateFor(kind); err != nil {
		return nil, "", err
	}

	entry := &model.OrderExecutionLog{
		Reference:    c.NewRef(),
		Action:       model.OrderActionPlace,
		Ticker:       order.Ticker,
		OrderType:    string(kind),
		Quantity:     decimal.NewFromFloat(order.Quantity),
		LimitPrice:   nullDecimal(order.LimitPrice),
		StopPrice:    nullDecimal(order.StopPrice),
		TimeValidity: string(order.TimeValidity),
		AccountMode:  string(c.Broker.Mode()),
		Status:       model.OrderExecutionStatusPending,
		RequestedAt:  c.Now(),
	}
	log := logger.WithFields(map[string]interface{}{
		"controller": "OrderController",
		"op":         "Place",
		"reference":  entry.Reference,
		"ticker":     entry.Ticker,
		"type":       kind,
		"quantity":   order.Quantity,
	})
	c.journalCreate(ctx, log, entry)

	placed, err := c.Broker.PlaceOrder(ctx, kind, order)

	outcome := repository.JournalOutcome{CompletedAt: c.Now()}
	if err != nil {
		outcome.Status = model.OrderExecutionStatusError
		msg := err.Error()
		outcome.ErrorMessage = &msg
		log.WithError(err).Error("Order placement failed")
	} else {
		outcome.Status = model.OrderExecutionStatusAccepted
		if placed != nil {
			outcome.BrokerOrderID = placed.ID
			outcome.BrokerStatus = string(placed.Status)
		}
		log.WithField("broker_status", outcome.BrokerStatus).Info("Order placed")
	}
	c.journalComplete(ctx, log, entry.Reference, outcome)

	return placed, entry.Reference, err
}

// Cancel cancels a pending order. AlreadyAbsent is journalled as such.
func (c *OrderController) Cancel(ctx context.Context, orderID int64) (connectors.DeleteOutcome, string, error) {
	if orderID <= 0 {
		return "", "", &connectors.ValidationError{Field: "orderId", Reason: "must be a positive id"}
	}

	entry := &model.OrderExecutionLog{
		Reference:     c.NewRef(),
		Action:        model.OrderActionCancel,
		Quantity:      decimal.Zero,
		AccountMode:   string(c.Broker.Mode()),
		BrokerOrderID: &orderID,
		Status:        model.OrderExecutionStatusPending,
		RequestedAt:   c.Now(),
	}
	log := logger.WithFields(map[string]interface{}{
		"controller": "OrderController",
		"op":         "Cancel",
		"reference":  entry.Reference,
		"order_id":   orderID,
	})
	c.journalCreate(ctx, log, entry)

	result, err := c.Broker.CancelOrder(ctx, orderID)

	outcome := repository.JournalOutcome{BrokerOrderID: &orderID, CompletedAt: c.Now()}
	switch {
	case err != nil:
		outcome.Status = model.OrderExecutionStatusError
		msg := err.Error()
		outcome.ErrorMessage = &msg
		log.WithError(err).Error("Order cancel failed")
	case result == connectors.AlreadyAbsent:
		outcome.Status = model.OrderExecutionStatusAbsent
		log.Info("Order already absent")
	default:
		outcome.Status = model.OrderExecutionStatusCanceled
		log.Info("Order canceled")
	}
	c.journalComplete(ctx, log, entry.Reference, outcome)

	return result, entry.Reference, err
}

func (c *OrderController) journalCreate(ctx context.Context, log *logger.Entry, entry *model.OrderExecutionLog) {
	if c.Journal == nil {
		return
	}
	if err := c.Journal.Create(ctx, entry); err != nil {
		log.WithError(err).Warn("Failed to journal order request")
	}
}

func (c *OrderController) journalComplete(ctx context.Context, log *logger.Entry, reference string, outcome repository.JournalOutcome) {
	if c.Journal == nil {
		return
	}
	if err := c.Journal.Complete(ctx, reference, outcome); err != nil {
		log.WithError(err).Warn("Failed to journal order outcome")
	}
}

func nullDecimal(f *float64) decimal.NullDecimal {
	if f == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*f))
}
