package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Result is the performance of a pie or of one of its slices.
type Result struct {
	InvestedValue *float64 `json:"investedValue,omitempty"`
	Result        *float64 `json:"result,omitempty"`
	ResultCoef    *float64 `json:"resultCoef,omitempty"`
	Value         *float64 `json:"value,omitempty"`
}

type PieIssue struct {
	Name     PieIssueName     `json:"name,omitempty"`
	Severity PieIssueSeverity `json:"severity,omitempty"`
}

// PieInstrument is one slice of a pie.
type PieInstrument struct {
	Ticker        string     `json:"ticker"`
	CurrentShare  *float64   `json:"currentShare,omitempty"`
	ExpectedShare *float64   `json:"expectedShare,omitempty"`
	OwnedQuantity *float64   `json:"ownedQuantity,omitempty"`
	Issues        []PieIssue `json:"issues,omitempty"`
	Result        *Result    `json:"result,omitempty"`
}

type PieSettings struct {
	ID                 *int64             `json:"id,omitempty"`
	Name               *string            `json:"name,omitempty"`
	Goal               *float64           `json:"goal,omitempty"`
	Icon               PieIcon            `json:"icon,omitempty"`
	DividendCashAction DividendCashAction `json:"dividendCashAction,omitempty"`
	InstrumentShares   map[string]float64 `json:"instrumentShares,omitempty"`
	CreationDate       *string            `json:"creationDate,omitempty"`
	EndDate            *string            `json:"endDate,omitempty"`
	InitialInvestment  *float64           `json:"initialInvestment,omitempty"`
	PublicURL          *string            `json:"publicUrl,omitempty"`
}

// Pie is the full view of a basket, returned by get/create/update.
type Pie struct {
	Instruments []PieInstrument `json:"instruments,omitempty"`
	Settings    *PieSettings    `json:"settings,omitempty"`
}

type DividendDetails struct {
	Gained     *float64 `json:"gained,omitempty"`
	InCash     *float64 `json:"inCash,omitempty"`
	Reinvested *float64 `json:"reinvested,omitempty"`
}

// PieListItem is the summary view returned by the pie listing.
type PieListItem struct {
	ID              *int64          `json:"id,omitempty"`
	Cash            *float64        `json:"cash,omitempty"`
	Progress        *float64        `json:"progress,omitempty"`
	Status          PieStatus       `json:"status,omitempty"`
	DividendDetails DividendDetails `json:"dividendDetails"`
	Result          *Result         `json:"result,omitempty"`
}

// PieRequest is the create/update payload. Unset fields are omitted from the
// request body entirely.
type PieRequest struct {
	Name               string             `json:"name,omitempty"`
	Icon               PieIcon            `json:"icon,omitempty"`
	Goal               *float64           `json:"goal,omitempty"`
	EndDate            *string            `json:"endDate,omitempty"`
	DividendCashAction DividendCashAction `json:"dividendCashAction,omitempty"`
	InstrumentShares   map[string]float64 `json:"instrumentShares,omitempty"`
}

// Validate checks a pie payload. Create requires a name and a full allocation;
// updates may omit either. Shares are summed in decimal so that values like
// 0.1+0.2+0.7 add up to exactly one.
func (r PieRequest) Validate(create bool) error {
	if create && strings.TrimSpace(r.Name) == "" {
		return invalid("name", "is required")
	}
	if r.Goal != nil && *r.Goal < 0 {
		return invalid("goal", "must not be negative")
	}
	if len(r.InstrumentShares) == 0 {
		if create {
			return invalid("instrumentShares", "at least one instrument is required")
		}
		return nil
	}

	tickers := make([]string, 0, len(r.InstrumentShares))
	for ticker := range r.InstrumentShares {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	total := decimal.Zero
	one := decimal.NewFromInt(1)
	for _, ticker := range tickers {
		if strings.TrimSpace(ticker) == "" {
			return invalid("instrumentShares", "empty ticker")
		}
		share := decimal.NewFromFloat(r.InstrumentShares[ticker])
		if share.LessThanOrEqual(decimal.Zero) || share.GreaterThan(one) {
			return invalid("instrumentShares", fmt.Sprintf("share of %s must be in (0, 1], got %s", ticker, share))
		}
		total = total.Add(share)
	}
	if !total.Equal(one) {
		return invalid("instrumentShares", fmt.Sprintf("shares must sum to 1, got %s", total))
	}
	return nil
}
