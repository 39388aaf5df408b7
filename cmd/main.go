package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"trading212/cmd/historysync"
	"trading212/cmd/keys"
	"trading212/src/connectors"
	"trading212/src/controller"
	"trading212/src/database"
	"trading212/src/executors"
	"trading212/src/model"
	"trading212/src/repository"
	"trading212/src/server"
	"trading212/src/utils"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var Version string

// stdout is swapped in tests.
var stdout io.Writer = os.Stdout

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "t212"
	app.Usage = "Trading 212 public API command line interface"
	app.Version = Version
	if app.Version == "" {
		app.Version = connectors.Version
	}

	app.Commands = []cli.Command{
		accountCMD,
		cashCMD,
		portfolioCMD,
		exchangesCMD,
		instrumentsCMD,
		piesCMD,
		pieCMD,
		deletePieCMD,
		ordersCMD,
		orderCMD,
		cancelOrderCMD,
		placeCMD,
		historyOrdersCMD,
		dividendsCMD,
		transactionsCMD,
		exportsCMD,
		createExportCMD,
		historySyncCMD,
		sealKeyCMD,
		serveCMD,
	}
	return app
}

var (
	idFlag = cli.Int64Flag{Name: "id", Usage: "resource id"}

	historyFlags = []cli.Flag{
		cli.StringFlag{Name: "cursor", Usage: "cursor from a previous page's nextPagePath"},
		cli.StringFlag{Name: "ticker", Usage: "only records for this ticker"},
		cli.IntFlag{Name: "limit", Usage: "page size, 1 to 50", Value: model.HistoryDefaultLimit},
	}

	accountCMD = cli.Command{
		Name:   "account",
		Usage:  "show account id and currency",
		Action: clientAction(func(ctx context.Context, c *connectors.Trading212Client, _ *cli.Context) (any, error) { return c.AccountMetadata(ctx) }),
	}
	cashCMD = cli.Command{
		Name:   "cash",
		Usage:  "show the account cash summary",
		Action: clientAction(func(ctx context.Context, c *connectors.Trading212Client, _ *cli.Context) (any, error) { return c.AccountCash(ctx) }),
	}
	portfolioCMD = cli.Command{
		Name:  "portfolio",
		Usage: "list open positions, or one with --ticker",
		Flags: []cli.Flag{cli.StringFlag{Name: "ticker", Usage: "instrument ticker, e.g. AAPL_US_EQ"}},
		Action: clientAction(func(ctx context.Context, c *connectors.Trading212Client, cc *cli.Context) (any, error) {
			if ticker := cc.String("ticker"); ticker != "" {
				return c.PortfolioPosition(ctx, controller.NormalizeTicker(ticker))
			}
			return c.Portfolio(ctx)
		}),
	}
	exchangesCMD = cli.Command{
		Name:   "exchanges",
		Usage:  "list exchanges and their working schedules",
		Action: clientAction(func(ctx context.Context, c *connectors.Trading212Client, _ *cli.Context) (any, error) { return c.Exchanges(ctx) }),
	}
	instrumentsCMD = cli.Command{
		Name:   "instruments",
		Usage:  "list tradable instruments",
		Action: clientAction(func(ctx context.Context, c *connectors.Trading212Client, _ *cli.Context) (any, error) { return c.Instruments(ctx) }),
	}
	piesCMD = cli.Command{
		Name:   "pies",
		Usage:  "list pies",
		Action: clientAction(func(ctx context.Context, c *connectors.Trading212Client, _ *cli.Context) (any, error) { return c.Pies(ctx) }),
	}
	pieCMD = cli.Command{
		Name:   "pie",
		Usage:  "show one pie",
		Flags:  []cli.Flag{idFlag},
		Action: clientAction(func(ctx context.Context, c *connectors.Trading212Client, cc *cli.Context) (any, error) { return c.Pie(ctx, cc.Int64("id")) }),
	}
	deletePieCMD = cli.Command{
		Name:  "delete-pie",
		Usage: "delete a pie",
		Flags: []cli.Flag{idFlag},
		Action: clientAction(func(ctx context.Context, c *connectors.Trading212Client, cc *cli.Context) (any, error) {
			outcome, err := c.DeletePie(ctx, cc.Int64("id"))
			if err != nil {
				return nil, err
			}
			return map[string]any{"id": cc.Int64("id"), "outcome": outcome}, nil
		}),
	}
	ordersCMD = cli.Command{
		Name:   "orders",
		Usage:  "list pending orders",
		Action: clientAction(func(ctx context.Context, c *connectors.Trading212Client, _ *cli.Context) (any, error) { return c.Orders(ctx) }),
	}
	orderCMD = cli.Command{
		Name:   "order",
		Usage:  "show one pending order",
		Flags:  []cli.Flag{idFlag},
		Action: clientAction(func(ctx context.Context, c *connectors.Trading212Client, cc *cli.Context) (any, error) { return c.Order(ctx, cc.Int64("id")) }),
	}
	cancelOrderCMD = cli.Command{
		Name:   "cancel-order",
		Usage:  "cancel a pending order",
		Flags:  []cli.Flag{idFlag},
		Action: clientAction(cancelOrder),
	}
	placeCMD = cli.Command{
		Name:  "place",
		Usage: "place an order",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "type", Usage: "market, limit, stop or stop_limit", Value: "market"},
			cli.StringFlag{Name: "ticker", Usage: "instrument ticker, e.g. AAPL_US_EQ"},
			cli.Float64Flag{Name: "quantity", Usage: "shares, negative to sell"},
			cli.Float64Flag{Name: "limit-price", Usage: "limit price for limit and stop_limit orders"},
			cli.Float64Flag{Name: "stop-price", Usage: "stop price for stop and stop_limit orders"},
			cli.StringFlag{Name: "time-validity", Usage: "DAY or GOOD_TILL_CANCEL", Value: string(model.TimeValidityDay)},
			cli.Float64Flag{Name: "size-from-cash-at", Usage: "size a buy from ORDER_SIZE_PERCENT of free cash at this price instead of --quantity"},
		},
		Action: clientAction(placeOrder),
	}
	historyOrdersCMD = cli.Command{
		Name:  "history-orders",
		Usage: "one page of historical orders",
		Flags: historyFlags,
		Action: clientAction(func(ctx context.Context, c *connectors.Trading212Client, cc *cli.Context) (any, error) {
			return c.HistoricalOrders(ctx, historyQuery(cc))
		}),
	}
	dividendsCMD = cli.Command{
		Name:  "dividends",
		Usage: "one page of paid dividends",
		Flags: historyFlags,
		Action: clientAction(func(ctx context.Context, c *connectors.Trading212Client, cc *cli.Context) (any, error) {
			return c.Dividends(ctx, historyQuery(cc))
		}),
	}
	transactionsCMD = cli.Command{
		Name:  "transactions",
		Usage: "one page of cash transactions",
		Flags: historyFlags,
		Action: clientAction(func(ctx context.Context, c *connectors.Trading212Client, cc *cli.Context) (any, error) {
			return c.Transactions(ctx, historyQuery(cc))
		}),
	}
	exportsCMD = cli.Command{
		Name:   "exports",
		Usage:  "list CSV export reports (live accounts only)",
		Action: clientAction(func(ctx context.Context, c *connectors.Trading212Client, _ *cli.Context) (any, error) { return c.Exports(ctx) }),
	}
	createExportCMD = cli.Command{
		Name:  "create-export",
		Usage: "queue a CSV export report",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "from", Usage: "start, RFC3339 or YYYY-MM-DD"},
			cli.StringFlag{Name: "to", Usage: "end, RFC3339 or YYYY-MM-DD"},
		},
		Action: clientAction(createExport),
	}
	historySyncCMD = cli.Command{
		Name:  "history-sync",
		Usage: "archive order, dividend and transaction history into the database",
		Flags: []cli.Flag{
			cli.BoolFlag{Name: "schedule", Usage: "keep running on HISTORY_SYNC_SCHEDULE"},
		},
		Action:      historySyncAction,
		Description: `Requires ENABLE_DB=true. Re-running only inserts records not archived yet.`,
	}
	sealKeyCMD = cli.Command{
		Name:        "seal-key",
		Usage:       "seal an API key read from stdin",
		Flags:       []cli.Flag{cli.BoolFlag{Name: "demo", Usage: "print the demo key variable"}},
		Action:      func(c *cli.Context) error { return keys.SealKey(os.Stdin, stdout, c.Bool("demo")) },
		Description: `Prints T212_API_KEY_SEALED=<value> (T212_DEMO_API_KEY_SEALED with --demo), sealed with EXCHANGE_CREDENTIALS_KEY.`,
	}
	serveCMD = cli.Command{
		Name:   "serve",
		Usage:  "run the relay HTTP server",
		Action: serveAction,
	}
)

type clientFunc func(ctx context.Context, c *connectors.Trading212Client, cc *cli.Context) (any, error)

// clientAction builds a client from the environment, runs fn and prints the
// result as indented JSON.
func clientAction(fn clientFunc) func(*cli.Context) error {
	return func(cc *cli.Context) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client, err := connectors.NewTrading212ClientFromEnv()
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{"cmd": cc.Command.Name, "mode": client.Mode()}).Debug("running command")

		result, err := fn(ctx, client, cc)
		if err != nil {
			return err
		}
		return printJSON(stdout, result)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func historyQuery(cc *cli.Context) model.HistoryQuery {
	var q model.HistoryQuery
	if v := cc.String("cursor"); v != "" {
		q.Cursor = &v
	}
	if v := cc.String("ticker"); v != "" {
		v = controller.NormalizeTicker(v)
		q.Ticker = &v
	}
	if cc.IsSet("limit") {
		v := cc.Int("limit")
		q.Limit = &v
	}
	return q
}

// orderController journals through the database when it is enabled.
func orderController(client *connectors.Trading212Client) (*controller.OrderController, error) {
	oc := controller.NewOrderController(client, nil)
	switch err := database.InitMainDB(); {
	case err == nil:
		oc.Journal = repository.NewOrderJournalRepository()
	case errors.Is(err, database.ErrDisabled):
	default:
		return nil, err
	}
	return oc, nil
}

func placeOrder(ctx context.Context, client *connectors.Trading212Client, cc *cli.Context) (any, error) {
	kind := model.OrderType(strings.ToUpper(cc.String("type")))
	if !kind.IsKnown() {
		return nil, &connectors.ValidationError{Field: "type", Reason: "must be market, limit, stop or stop_limit"}
	}

	order := model.Order{
		Ticker:       cc.String("ticker"),
		Quantity:     cc.Float64("quantity"),
		TimeValidity: model.TimeValidity(strings.ToUpper(cc.String("time-validity"))),
	}
	if cc.IsSet("limit-price") {
		v := cc.Float64("limit-price")
		order.LimitPrice = &v
	}
	if cc.IsSet("stop-price") {
		v := cc.Float64("stop-price")
		order.StopPrice = &v
	}

	if cc.IsSet("size-from-cash-at") {
		cash, err := client.AccountCash(ctx)
		if err != nil {
			return nil, err
		}
		cfg := controller.GetConfig()
		order.Quantity = controller.SizeFromCash(cash.Free, cc.Float64("size-from-cash-at"), cfg.OrderSizePercent, cfg.QuantityPrecision)
		if order.Quantity == 0 {
			return nil, &connectors.ValidationError{Field: "quantity", Reason: "free cash does not cover one unit at the given price"}
		}
	}

	oc, err := orderController(client)
	if err != nil {
		return nil, err
	}
	placed, reference, err := oc.Place(ctx, kind, order)
	if err != nil {
		return nil, err
	}
	return map[string]any{"reference": reference, "order": placed}, nil
}

func cancelOrder(ctx context.Context, client *connectors.Trading212Client, cc *cli.Context) (any, error) {
	oc, err := orderController(client)
	if err != nil {
		return nil, err
	}
	outcome, reference, err := oc.Cancel(ctx, cc.Int64("id"))
	if err != nil {
		return nil, err
	}
	return map[string]any{"id": cc.Int64("id"), "reference": reference, "outcome": outcome}, nil
}

func createExport(ctx context.Context, client *connectors.Trading212Client, cc *cli.Context) (any, error) {
	from, err := utils.ParseTime(cc.String("from"))
	if err != nil {
		return nil, &connectors.ValidationError{Field: "from", Reason: err.Error()}
	}
	to, err := utils.ParseTime(cc.String("to"))
	if err != nil {
		return nil, &connectors.ValidationError{Field: "to", Reason: err.Error()}
	}
	return client.CreateExport(ctx, model.ExportPayload{
		DataIncluded: model.IncludeAll(),
		TimeFrom:     from,
		TimeTo:       to,
	})
}

// historySyncAction archives history once, or on a cron schedule with --schedule.
func historySyncAction(cc *cli.Context) error {
	logrus.Info("Starting history sync CMD")

	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Error("Failed to connect to database")
		return err
	}
	client, err := connectors.NewTrading212ClientFromEnv()
	if err != nil {
		return err
	}

	hs := &historysync.HistorySync{
		Log:    logrus.WithField("cmd", "history_sync"),
		DB:     database.MainDB,
		Client: client,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cc.Bool("schedule") {
		results, err := hs.Run(ctx)
		if err != nil {
			logrus.WithError(err).Error("history sync failed")
			return err
		}
		return printJSON(stdout, results)
	}

	return executors.StartSchedule(ctx, executors.GetConfig(), "history-sync", func(ctx context.Context) error {
		_, err := hs.Run(ctx)
		return err
	})
}

func serveAction(_ *cli.Context) error {
	deps, err := server.NewDepsFromEnv()
	if err != nil {
		return err
	}
	server.StartServer(deps)
	return nil
}
