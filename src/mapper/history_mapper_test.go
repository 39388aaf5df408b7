package mapper

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading212/src/model"
)

func ptr[T any](v T) *T { return &v }

func TestMapHistoricalOrder(t *testing.T) {
	created := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	o := model.HistoricalOrder{
		ID:              ptr(int64(11)),
		FillID:          ptr(int64(22)),
		Ticker:          ptr("AAPL_US_EQ"),
		Type:            ptr("MARKET"),
		Status:          ptr("FILLED"),
		OrderedQuantity: ptr(1.5),
		FillPrice:       ptr(180.25),
		DateCreated:     &created,
		Taxes: []model.Tax{
			{Name: ptr("STAMP_DUTY"), Quantity: ptr(0.1)},
			{Name: ptr("FX_FEE"), Quantity: ptr(0.2)},
			{Name: ptr("UNKNOWN")},
		},
	}

	rec := MapHistoricalOrder(o)
	assert.Equal(t, "order:11:fill:22", rec.DedupKey)
	assert.Equal(t, "AAPL_US_EQ", rec.Ticker)
	assert.Equal(t, "FILLED", rec.Status)
	assert.True(t, rec.FillPrice.Valid)
	assert.True(t, rec.FillPrice.Decimal.Equal(decimal.RequireFromString("180.25")))
	assert.False(t, rec.FillCost.Valid)
	assert.True(t, rec.TaxTotal.Equal(decimal.RequireFromString("0.3")), rec.TaxTotal.String())
	assert.Equal(t, &created, rec.DateCreated)

	o.FillID = nil
	assert.Equal(t, "order:11", MapHistoricalOrder(o).DedupKey)
}

func TestMapHistoricalOrderContentKeyIsStable(t *testing.T) {
	created := time.Date(2024, 3, 1, 14, 30, 0, 0, time.FixedZone("X", 3600))
	o := model.HistoricalOrder{Ticker: ptr("MSFT_US_EQ"), Type: ptr("LIMIT"), DateCreated: &created, OrderedQuantity: ptr(2.0)}

	a := MapHistoricalOrder(o)
	b := MapHistoricalOrder(o)
	require.Equal(t, a.DedupKey, b.DedupKey)
	assert.Len(t, a.DedupKey, len("order:")+40)

	o.OrderedQuantity = ptr(3.0)
	assert.NotEqual(t, a.DedupKey, MapHistoricalOrder(o).DedupKey)
}

func TestMapDividendAndTransaction(t *testing.T) {
	paid := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	d := MapDividend(model.DividendItem{Reference: ptr("DIV-1"), Ticker: ptr("KO_US_EQ"), Amount: ptr(1.23), PaidOn: &paid, Type: ptr("ORDINARY")})
	assert.Equal(t, "dividend:DIV-1", d.DedupKey)
	assert.Equal(t, "ORDINARY", d.DividendType)
	assert.True(t, d.Amount.Decimal.Equal(decimal.RequireFromString("1.23")))

	anon := MapDividend(model.DividendItem{Ticker: ptr("KO_US_EQ"), Amount: ptr(1.23), PaidOn: &paid})
	assert.NotEqual(t, "dividend:", anon.DedupKey)
	assert.Equal(t, anon.DedupKey, MapDividend(model.DividendItem{Ticker: ptr("KO_US_EQ"), Amount: ptr(1.23), PaidOn: &paid}).DedupKey)

	tx := MapTransaction(model.TransactionItem{Reference: ptr("TX-9"), Type: model.TransactionTypeDeposit, Amount: ptr(500.0)})
	assert.Equal(t, "transaction:TX-9", tx.DedupKey)
	assert.Equal(t, "DEPOSIT", tx.TransactionType)

	other := MapTransaction(model.TransactionItem{Type: model.TransactionType("INTEREST"), Amount: ptr(0.5), DateTime: &paid})
	assert.Equal(t, "INTEREST", other.TransactionType)
	assert.Contains(t, other.DedupKey, "transaction:")
}

func TestLongReferencesFitDedupKey(t *testing.T) {
	long := strings.Repeat("R", 300)

	div := MapDividend(model.DividendItem{Reference: ptr(long), Ticker: ptr("AAPL_US_EQ")})
	assert.Equal(t, long, div.Reference)
	assert.LessOrEqual(t, len(div.DedupKey), 120)
	assert.True(t, strings.HasPrefix(div.DedupKey, "dividend:ref:"))
	assert.Equal(t, div.DedupKey, MapDividend(model.DividendItem{Reference: ptr(long)}).DedupKey)

	tx := MapTransaction(model.TransactionItem{Reference: ptr(long)})
	assert.LessOrEqual(t, len(tx.DedupKey), 120)
	assert.True(t, strings.HasPrefix(tx.DedupKey, "transaction:ref:"))

	other := MapTransaction(model.TransactionItem{Reference: ptr(long + "X")})
	assert.NotEqual(t, tx.DedupKey, other.DedupKey)

	edge := strings.Repeat("r", 100)
	assert.Equal(t, "transaction:"+edge, MapTransaction(model.TransactionItem{Reference: ptr(edge)}).DedupKey)
}
