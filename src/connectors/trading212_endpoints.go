package connectors

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"trading212/src/mapper"
	"trading212/src/model"
)

// -----------------------------
// ACCOUNT
// -----------------------------

func (c *Trading212Client) AccountMetadata(ctx context.Context) (*model.AccountMetadata, error) {
	raw, err := c.do(ctx, "AccountMetadata", http.MethodGet, "/equity/account/info", nil, nil)
	if err != nil {
		return nil, err
	}
	return mapper.CoerceOne[model.AccountMetadata](raw)
}

func (c *Trading212Client) AccountCash(ctx context.Context) (*model.AccountCash, error) {
	raw, err := c.do(ctx, "AccountCash", http.MethodGet, "/equity/account/cash", nil, nil)
	if err != nil {
		return nil, err
	}
	return mapper.CoerceOne[model.AccountCash](raw)
}

// -----------------------------
// PORTFOLIO
// -----------------------------

func (c *Trading212Client) Portfolio(ctx context.Context) ([]model.Position, error) {
	raw, err := c.do(ctx, "Portfolio", http.MethodGet, "/equity/portfolio", nil, nil)
	if err != nil {
		return nil, err
	}
	return mapper.CoerceList[model.Position](raw)
}

// PortfolioPosition fetches one open position. A ticker with no position is
// an *HTTPStatusError with status 404.
func (c *Trading212Client) PortfolioPosition(ctx context.Context, ticker string) (*model.Position, error) {
	if err := requireTicker(ticker); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, "PortfolioPosition", http.MethodGet, "/equity/portfolio/"+url.PathEscape(ticker), nil, nil)
	if err != nil {
		return nil, err
	}
	return mapper.CoerceOne[model.Position](raw)
}

// -----------------------------
// METADATA
// -----------------------------

func (c *Trading212Client) Exchanges(ctx context.Context) ([]model.Exchange, error) {
	raw, err := c.do(ctx, "Exchanges", http.MethodGet, "/equity/metadata/exchanges", nil, nil)
	if err != nil {
		return nil, err
	}
	return mapper.CoerceList[model.Exchange](raw)
}

func (c *Trading212Client) Instruments(ctx context.Context) ([]model.Instrument, error) {
	raw, err := c.do(ctx, "Instruments", http.MethodGet, "/equity/metadata/instruments", nil, nil)
	if err != nil {
		return nil, err
	}
	return mapper.CoerceList[model.Instrument](raw)
}

// -----------------------------
// PIES
// -----------------------------

func (c *Trading212Client) Pies(ctx context.Context) ([]model.PieListItem, error) {
	raw, err := c.do(ctx, "Pies", http.MethodGet, "/equity/pies", nil, nil)
	if err != nil {
		return nil, err
	}
	return mapper.CoerceList[model.PieListItem](raw)
}

func (c *Trading212Client) CreatePie(ctx context.Context, req model.PieRequest) (*model.Pie, error) {
	if err := req.Validate(true); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, "CreatePie", http.MethodPost, "/equity/pies", nil, req)
	if err != nil {
		return nil, err
	}
	return mapper.CoerceOne[model.Pie](raw)
}

func (c *Trading212Client) DeletePie(ctx context.Context, id int64) (DeleteOutcome, error) {
	if err := requireID("pieId", id); err != nil {
		return "", err
	}
	return c.deleteResource(ctx, "DeletePie", "/equity/pies/"+strconv.FormatInt(id, 10))
}

func (c *Trading212Client) Pie(ctx context.Context, id int64) (*model.Pie, error) {
	if err := requireID("pieId", id); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, "Pie", http.MethodGet, "/equity/pies/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return nil, err
	}
	return mapper.CoerceOne[model.Pie](raw)
}

// UpdatePie sends only the fields set on req.
func (c *Trading212Client) UpdatePie(ctx context.Context, id int64, req model.PieRequest) (*model.Pie, error) {
	if err := requireID("pieId", id); err != nil {
		return nil, err
	}
	if err := req.Validate(false); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, "UpdatePie", http.MethodPost, "/equity/pies/"+strconv.FormatInt(id, 10), nil, req)
	if err != nil {
		return nil, err
	}
	return mapper.CoerceOne[model.Pie](raw)
}

// -----------------------------
// ORDERS
// -----------------------------

func (c *Trading212Client) Orders(ctx context.Context) ([]model.Order, error) {
	raw, err := c.do(ctx, "Orders", http.MethodGet, "/equity/orders", nil, nil)
	if err != nil {
		return nil, err
	}
	return mapper.CoerceList[model.Order](raw)
}

func (c *Trading212Client) PlaceLimitOrder(ctx context.Context, o model.Order) (*model.Order, error) {
	return c.placeOrder(ctx, model.OrderTypeLimit, o)
}

// PlaceMarketOrder places a market order. A negative quantity sells.
func (c *Trading212Client) PlaceMarketOrder(ctx context.Context, o model.Order) (*model.Order, error) {
	return c.placeOrder(ctx, model.OrderTypeMarket, o)
}

func (c *Trading212Client) PlaceStopOrder(ctx context.Context, o model.Order) (*model.Order, error) {
	return c.placeOrder(ctx, model.OrderTypeStop, o)
}

func (c *Trading212Client) PlaceStopLimitOrder(ctx context.Context, o model.Order) (*model.Order, error) {
	return c.placeOrder(ctx, model.OrderTypeStopLimit, o)
}

// PlaceOrder dispatches on kind.
func (c *Trading212Client) PlaceOrder(ctx context.Context, kind model.OrderType, o model.Order) (*model.Order, error) {
	if _, ok := orderPaths[kind]; !ok {
		return nil, &ValidationError{Field: "type", Reason: "unsupported order type " + string(kind)}
	}
	return c.placeOrder(ctx, kind, o)
}

var orderPaths = map[model.OrderType]string{
	model.OrderTypeLimit:     "/equity/orders/limit",
	model.OrderTypeMarket:    "/equity/orders/market",
	model.OrderTypeStop:      "/equity/orders/stop",
	model.OrderTypeStopLimit: "/equity/orders/stop_limit",
}

func (c *Trading212Client) placeOrder(ctx context.Context, kind model.OrderType, o model.Order) (*model.Order, error) {
	if err := o.ValidateFor(kind); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, "Place"+orderOpName(kind)+"Order", http.MethodPost, orderPaths[kind], nil, o.RequestFor(kind))
	if err != nil {
		return nil, err
	}
	return mapper.CoerceOne[model.Order](raw)
}

func orderOpName(kind model.OrderType) string {
	parts := strings.Split(strings.ToLower(string(kind)), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "")
}

func (c *Trading212Client) CancelOrder(ctx context.Context, id int64) (DeleteOutcome, error) {
	if err := requireID("orderId", id); err != nil {
		return "", err
	}
	return c.deleteResource(ctx, "CancelOrder", "/equity/orders/"+strconv.FormatInt(id, 10))
}

func (c *Trading212Client) Order(ctx context.Context, id int64) (*model.Order, error) {
	if err := requireID("orderId", id); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, "Order", http.MethodGet, "/equity/orders/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return nil, err
	}
	return mapper.CoerceOne[model.Order](raw)
}

// -----------------------------
// HISTORY
// -----------------------------

func (c *Trading212Client) HistoricalOrders(ctx context.Context, q model.HistoryQuery) (*model.HistoricalOrderPage, error) {
	return historyPage[model.HistoricalOrder](ctx, c, "HistoricalOrders", "/equity/history/orders", q)
}

func (c *Trading212Client) Dividends(ctx context.Context, q model.HistoryQuery) (*model.DividendPage, error) {
	return historyPage[model.DividendItem](ctx, c, "Dividends", "/history/dividends", q)
}

func (c *Trading212Client) Transactions(ctx context.Context, q model.HistoryQuery) (*model.TransactionPage, error) {
	return historyPage[model.TransactionItem](ctx, c, "Transactions", "/history/transactions", q)
}

func historyPage[T any](ctx context.Context, c *Trading212Client, op, path string, q model.HistoryQuery) (*model.Page[T], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, op, http.MethodGet, path, q.Values(), nil)
	if err != nil {
		return nil, err
	}
	return mapper.CoerceOne[model.Page[T]](raw)
}

// Exports lists CSV export reports. The demo environment does not serve this
// endpoint, so no request is made there.
func (c *Trading212Client) Exports(ctx context.Context) ([]model.ExportReport, error) {
	if c.mode == ModeDemo {
		return nil, &NotSupportedError{Operation: "Exports", Mode: c.mode}
	}
	raw, err := c.do(ctx, "Exports", http.MethodGet, "/history/exports", nil, nil)
	if err != nil {
		return nil, err
	}
	return mapper.CoerceList[model.ExportReport](raw)
}

func (c *Trading212Client) CreateExport(ctx context.Context, p model.ExportPayload) (*model.ExportReportResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, "CreateExport", http.MethodPost, "/history/exports", nil, p)
	if err != nil {
		return nil, err
	}
	return mapper.CoerceOne[model.ExportReportResponse](raw)
}

// -----------------------------
// INPUT CHECKS
// -----------------------------

func requireTicker(ticker string) error {
	if strings.TrimSpace(ticker) == "" {
		return &ValidationError{Field: "ticker", Reason: "is required"}
	}
	return nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return &ValidationError{Field: field, Reason: "must be a positive id, got " + strconv.FormatInt(id, 10)}
	}
	return nil
}
