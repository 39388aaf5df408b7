package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"trading212/src/database"
	"trading212/src/model"
)

var ErrJournalEntryNotFound = errors.New("order journal entry not found")

// OrderJournalSearch filters journal entries. Nil fields are ignored.
type OrderJournalSearch struct {
	Ticker          *string
	Status          *string
	Action          *string
	RequestedAfter  *time.Time
	RequestedBefore *time.Time
	Limit           int
	Offset          int
}

// JournalOutcome is the broker result recorded by Complete.
type JournalOutcome struct {
	Status        string
	BrokerOrderID *int64
	BrokerStatus  string
	ErrorMessage  *string
	CompletedAt   time.Time
}

// OrderJournalRepository persists order_execution_logs.
type OrderJournalRepository struct {
	db *gorm.DB
}

// NewOrderJournalRepository creates a repository on the main database.
func NewOrderJournalRepository() *OrderJournalRepository {
	logger.WithField("component", "OrderJournalRepository").
		Debug("Creating new OrderJournalRepository with MainDB")

	return &OrderJournalRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *OrderJournalRepository) WithDB(db *gorm.DB) *OrderJournalRepository {
	return &OrderJournalRepository{db: db}
}

// Create inserts a pending entry. The entry gets its ID and timestamps.
func (r *OrderJournalRepository) Create(ctx context.Context, entry *model.OrderExecutionLog) error {
	logger.WithFields(map[string]interface{}{
		"repo":      "OrderJournalRepository",
		"op":        "Create",
		"reference": entry.Reference,
		"ticker":    entry.Ticker,
		"action":    entry.Action,
	}).Debug("Creating journal entry")

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":      "OrderJournalRepository",
			"op":        "Create",
			"reference": entry.Reference,
		}).WithError(err).Error("Failed to create journal entry")
		return err
	}
	return nil
}

// Complete records the broker outcome on the entry with the given reference.
func (r *OrderJournalRepository) Complete(ctx context.Context, reference string, outcome JournalOutcome) error {
	fields := map[string]interface{}{
		"repo":      "OrderJournalRepository",
		"op":        "Complete",
		"reference": reference,
		"status":    outcome.Status,
	}

	res := r.db.WithContext(ctx).
		Model(&model.OrderExecutionLog{}).
		Where("reference = ?", reference).
		Updates(map[string]interface{}{
			"status":          outcome.Status,
			"broker_order_id": outcome.BrokerOrderID,
			"broker_status":   outcome.BrokerStatus,
			"error_message":   outcome.ErrorMessage,
			"completed_at":    outcome.CompletedAt,
		})
	if res.Error != nil {
		logger.WithFields(fields).WithError(res.Error).Error("Failed to complete journal entry")
		return res.Error
	}
	if res.RowsAffected == 0 {
		logger.WithFields(fields).Warn("Journal entry to complete not found")
		return fmt.Errorf("%w: %s", ErrJournalEntryNotFound, reference)
	}

	logger.WithFields(fields).Info("Journal entry completed")
	return nil
}

// FindByReference returns (nil, nil) when no entry matches.
func (r *OrderJournalRepository) FindByReference(ctx context.Context, reference string) (*model.OrderExecutionLog, error) {
	var entry model.OrderExecutionLog
	err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.WithFields(map[string]interface{}{
			"repo":      "OrderJournalRepository",
			"op":        "FindByReference",
			"reference": reference,
		}).WithError(err).Error("Failed to fetch journal entry")
		return nil, err
	}
	return &entry, nil
}

// Search returns entries newest first.
func (r *OrderJournalRepository) Search(ctx context.Context, options OrderJournalSearch) ([]model.OrderExecutionLog, error) {
	query := r.db.WithContext(ctx).Model(&model.OrderExecutionLog{})

	if options.Ticker != nil {
		query = query.Where("ticker = ?", *options.Ticker)
	}
	if options.Status != nil {
		query = query.Where("status = ?", *options.Status)
	}
	if options.Action != nil {
		query = query.Where("action = ?", *options.Action)
	}
	if options.RequestedAfter != nil {
		query = query.Where("requested_at >= ?", *options.RequestedAfter)
	}
	if options.RequestedBefore != nil {
		query = query.Where("requested_at <= ?", *options.RequestedBefore)
	}

	query = query.Order("requested_at DESC, id DESC")
	if options.Limit > 0 {
		query = query.Limit(options.Limit)
	}
	if options.Offset > 0 {
		query = query.Offset(options.Offset)
	}

	var entries []model.OrderExecutionLog
	if err := query.Find(&entries).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "OrderJournalRepository",
			"op":   "Search",
		}).WithError(err).Error("Failed to search journal")
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "OrderJournalRepository",
		"op":          "Search",
		"rows_return": len(entries),
	}).Debug("Journal searched")

	return entries, nil
}
