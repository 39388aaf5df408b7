package mapper

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"trading212/src/model"
)

// MapHistoricalOrder converts a broker history entry into an archive row.
// Orders are keyed by order id and fill id; entries without either fall back
// to a content hash.
func MapHistoricalOrder(o model.HistoricalOrder) model.HistoricalOrderRecord {
	rec := model.HistoricalOrderRecord{
		BrokerOrderID:   o.ID,
		ParentOrderID:   o.ParentOrder,
		FillID:          o.FillID,
		Ticker:          str(o.Ticker),
		OrderType:       str(o.Type),
		Status:          str(o.Status),
		Executor:        str(o.Executor),
		FillType:        str(o.FillType),
		OrderedQuantity: nullDecimal(o.OrderedQuantity),
		FilledQuantity:  nullDecimal(o.FilledQuantity),
		FillPrice:       nullDecimal(o.FillPrice),
		FillCost:        nullDecimal(o.FillCost),
		FillResult:      nullDecimal(o.FillResult),
		TaxTotal:        decimal.Zero,
		DateCreated:     o.DateCreated,
		DateExecuted:    o.DateExecuted,
	}

	for _, tax := range o.Taxes {
		if tax.Quantity != nil {
			rec.TaxTotal = rec.TaxTotal.Add(decimal.NewFromFloat(*tax.Quantity))
		}
	}

	switch {
	case o.ID != nil && o.FillID != nil:
		rec.DedupKey = fmt.Sprintf("order:%d:fill:%d", *o.ID, *o.FillID)
	case o.ID != nil:
		rec.DedupKey = fmt.Sprintf("order:%d", *o.ID)
	default:
		rec.DedupKey = "order:" + contentKey(rec.Ticker, rec.OrderType, timeKey(o.DateCreated), floatKey(o.OrderedQuantity))
		logger.WithFields(map[string]interface{}{
			"mapper": "MapHistoricalOrder",
			"ticker": rec.Ticker,
		}).Debug("Historical order without id, using content key")
	}

	return rec
}

// MapDividend converts a dividend entry. The broker reference is the natural
// key when present.
func MapDividend(d model.DividendItem) model.DividendRecord {
	rec := model.DividendRecord{
		Ticker:              str(d.Ticker),
		Reference:           str(d.Reference),
		DividendType:        str(d.Type),
		Amount:              nullDecimal(d.Amount),
		AmountInEuro:        nullDecimal(d.AmountInEuro),
		GrossAmountPerShare: nullDecimal(d.GrossAmountPerShare),
		Quantity:            nullDecimal(d.Quantity),
		PaidOn:              d.PaidOn,
	}
	if rec.Reference != "" {
		rec.DedupKey = referenceKey("dividend:", rec.Reference)
	} else {
		rec.DedupKey = "dividend:" + contentKey(rec.Ticker, timeKey(d.PaidOn), floatKey(d.Amount), floatKey(d.Quantity))
	}
	return rec
}

// MapTransaction converts a cash transaction entry.
func MapTransaction(t model.TransactionItem) model.TransactionRecord {
	rec := model.TransactionRecord{
		Reference:       str(t.Reference),
		TransactionType: string(t.Type),
		Amount:          nullDecimal(t.Amount),
		DateTime:        t.DateTime,
	}
	if rec.Reference != "" {
		rec.DedupKey = referenceKey("transaction:", rec.Reference)
	} else {
		rec.DedupKey = "transaction:" + contentKey(rec.TransactionType, timeKey(t.DateTime), floatKey(t.Amount))
	}
	return rec
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func nullDecimal(f *float64) decimal.NullDecimal {
	if f == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*f))
}

func timeKey(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func floatKey(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// maxReferenceLen keeps prefix+reference inside the dedup_key column.
const maxReferenceLen = 100

// referenceKey uses the broker reference verbatim when it fits and its hash
// otherwise. The "ref:" marker keeps hashed references apart from content keys.
func referenceKey(prefix, ref string) string {
	if len(ref) <= maxReferenceLen {
		return prefix + ref
	}
	return prefix + "ref:" + contentKey(ref)
}

func contentKey(parts ...string) string {
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
