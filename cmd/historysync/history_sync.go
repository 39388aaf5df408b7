package historysync

import (
	"context"
	"fmt"
	"strings"

	"trading212/src/mapper"
	"trading212/src/metrics"
	"trading212/src/model"
	"trading212/src/repository"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const (
	KindOrders       = "orders"
	KindDividends    = "dividends"
	KindTransactions = "transactions"
)

type historySource interface {
	HistoricalOrders(ctx context.Context, q model.HistoryQuery) (*model.HistoricalOrderPage, error)
	Dividends(ctx context.Context, q model.HistoryQuery) (*model.DividendPage, error)
	Transactions(ctx context.Context, q model.HistoryQuery) (*model.TransactionPage, error)
}

type archive interface {
	SaveOrders(ctx context.Context, rows []model.HistoricalOrderRecord) (int64, error)
	SaveDividends(ctx context.Context, rows []model.DividendRecord) (int64, error)
	SaveTransactions(ctx context.Context, rows []model.TransactionRecord) (int64, error)
}

// Result counts what one run fetched and how much of it was new.
type Result struct {
	Kind     string `json:"kind"`
	Pages    int    `json:"pages"`
	Fetched  int    `json:"fetched"`
	Inserted int64  `json:"inserted"`
}

// HistorySync copies order, dividend and transaction history into the
// archive tables. Re-running it only inserts records not seen before.
type HistorySync struct {
	Log     *logger.Entry
	DB      *gorm.DB
	Config  *Config
	Client  historySource
	Archive archive

	limiter *rate.Limiter
}

func (h *HistorySync) Start() error {
	_, err := h.Run(context.Background())
	return err
}

// Run walks every configured history kind to its last page.
func (h *HistorySync) Run(ctx context.Context) ([]Result, error) {
	if err := h.init(); err != nil {
		return nil, err
	}

	var results []Result
	for _, kind := range h.Config.Kinds {
		var (
			res Result
			err error
		)
		switch strings.TrimSpace(kind) {
		case KindOrders:
			res, err = walk(ctx, h, KindOrders, h.Client.HistoricalOrders, mapper.MapHistoricalOrder, h.Archive.SaveOrders)
		case KindDividends:
			res, err = walk(ctx, h, KindDividends, h.Client.Dividends, mapper.MapDividend, h.Archive.SaveDividends)
		case KindTransactions:
			res, err = walk(ctx, h, KindTransactions, h.Client.Transactions, mapper.MapTransaction, h.Archive.SaveTransactions)
		default:
			return results, fmt.Errorf("unknown history kind %q", kind)
		}
		results = append(results, res)
		if err != nil {
			return results, err
		}

		h.Log.WithFields(logger.Fields{
			"kind":     res.Kind,
			"pages":    res.Pages,
			"fetched":  res.Fetched,
			"inserted": res.Inserted,
		}).Info("history kind synced")
	}
	return results, nil
}

func (h *HistorySync) init() error {
	if h.Config == nil {
		h.Config = GetConfig()
	}
	if h.Log == nil {
		h.Log = logger.WithField("cmd", "history_sync")
	}
	if h.Client == nil {
		return fmt.Errorf("history sync: no client")
	}
	if h.Archive == nil {
		if h.DB == nil {
			return fmt.Errorf("history sync: no database")
		}
		h.Archive = repository.NewHistoryRepository().WithDB(h.DB)
	}
	if h.Config.PageLimit < 1 || h.Config.PageLimit > model.HistoryMaxLimit {
		return fmt.Errorf("history sync: page limit must be between 1 and %d, got %d", model.HistoryMaxLimit, h.Config.PageLimit)
	}
	if h.limiter == nil {
		limit := rate.Inf
		if h.Config.PageInterval > 0 {
			limit = rate.Every(h.Config.PageInterval)
		}
		h.limiter = rate.NewLimiter(limit, 1)
	}
	return nil
}

func (h *HistorySync) firstQuery(kind string) model.HistoryQuery {
	limit := h.Config.PageLimit
	q := model.HistoryQuery{Limit: &limit}
	if h.Config.Ticker != "" && kind != KindTransactions {
		ticker := h.Config.Ticker
		q.Ticker = &ticker
	}
	return q
}

// walk pages through one history endpoint, saving each page before asking
// for the next. It stops on the last page, on MaxPages, or when the server
// hands back a cursor it already gave.
func walk[T, R any](
	ctx context.Context,
	h *HistorySync,
	kind string,
	fetch func(context.Context, model.HistoryQuery) (*model.Page[T], error),
	toRow func(T) R,
	save func(context.Context, []R) (int64, error),
) (Result, error) {
	res := Result{Kind: kind}
	q := h.firstQuery(kind)
	seen := map[string]bool{}

	for {
		if h.Config.MaxPages > 0 && res.Pages >= h.Config.MaxPages {
			h.Log.WithField("kind", kind).Warn("page cap reached, stopping")
			return res, nil
		}
		if err := h.limiter.Wait(ctx); err != nil {
			return res, err
		}

		page, err := fetch(ctx, q)
		if err != nil {
			return res, fmt.Errorf("fetch %s page %d: %w", kind, res.Pages+1, err)
		}
		res.Pages++
		if page == nil {
			return res, nil
		}

		rows := make([]R, 0, len(page.Items))
		for _, item := range page.Items {
			rows = append(rows, toRow(item))
		}
		res.Fetched += len(rows)

		inserted, err := save(ctx, rows)
		if err != nil {
			return res, fmt.Errorf("save %s page %d: %w", kind, res.Pages, err)
		}
		res.Inserted += inserted
		metrics.HistoryRecordsSynced.WithLabelValues(kind).Add(float64(inserted))

		next, ok := model.NextQuery(q, *page)
		if !ok {
			return res, nil
		}
		if seen[*next.Cursor] {
			h.Log.WithField("kind", kind).WithField("cursor", *next.Cursor).Warn("cursor repeated, stopping")
			return res, nil
		}
		seen[*next.Cursor] = true
		q = next
	}
}
