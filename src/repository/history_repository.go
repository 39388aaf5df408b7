package repository

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trading212/src/database"
	"trading212/src/model"
)

// HistoryStats counts archived rows per table.
type HistoryStats struct {
	Orders       int64 `json:"orders"`
	Dividends    int64 `json:"dividends"`
	Transactions int64 `json:"transactions"`
}

// HistoryRepository appends broker history to the archive tables. Rows are
// never updated; a row whose dedup key is already stored is skipped.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *HistoryRepository) WithDB(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// SaveOrders returns how many rows were new.
func (r *HistoryRepository) SaveOrders(ctx context.Context, rows []model.HistoricalOrderRecord) (int64, error) {
	return insertNew(ctx, r.db, "SaveOrders", rows)
}

func (r *HistoryRepository) SaveDividends(ctx context.Context, rows []model.DividendRecord) (int64, error) {
	return insertNew(ctx, r.db, "SaveDividends", rows)
}

func (r *HistoryRepository) SaveTransactions(ctx context.Context, rows []model.TransactionRecord) (int64, error) {
	return insertNew(ctx, r.db, "SaveTransactions", rows)
}

func (r *HistoryRepository) Stats(ctx context.Context) (HistoryStats, error) {
	var stats HistoryStats
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.HistoricalOrderRecord{}).Count(&stats.Orders).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&model.DividendRecord{}).Count(&stats.Dividends).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&model.TransactionRecord{}).Count(&stats.Transactions).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

// RecentOrders returns archived orders for ticker (all when empty), newest
// execution first.
func (r *HistoryRepository) RecentOrders(ctx context.Context, ticker string, limit int) ([]model.HistoricalOrderRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := r.db.WithContext(ctx).Order("date_executed DESC, id DESC").Limit(limit)
	if ticker != "" {
		query = query.Where("ticker = ?", ticker)
	}
	var rows []model.HistoricalOrderRecord
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func insertNew[T any](ctx context.Context, db *gorm.DB, op string, rows []T) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	// Upsert: on conflict on dedup_key do nothing
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dedup_key"}},
			DoNothing: true,
		}).
		Create(&rows)
	if res.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "HistoryRepository",
			"op":   op,
			"rows": len(rows),
		}).WithError(res.Error).Error("Failed to archive history rows")
		return 0, res.Error
	}

	logger.WithFields(map[string]interface{}{
		"repo":     "HistoryRepository",
		"op":       op,
		"rows":     len(rows),
		"inserted": res.RowsAffected,
	}).Debug("History rows archived")

	return res.RowsAffected, nil
}
