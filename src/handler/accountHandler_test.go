package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"trading212/src/connectors"
	"trading212/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test index:
// - TestAccountCashHandler: relays the cash summary and maps broker failures.
// - TestPortfolioHandler_All: relays every position, empty list instead of null.
// - TestPortfolioHandler_Ticker: ?ticker= fetches a single position.
// - TestWriteBrokerError: error kinds map to relay statuses.

type fakeBroker struct {
	cash      *model.AccountCash
	positions []model.Position
	position  *model.Position
	ticker    string
	err       error
}

func (f *fakeBroker) AccountCash(ctx context.Context) (*model.AccountCash, error) {
	return f.cash, f.err
}

func (f *fakeBroker) Portfolio(ctx context.Context) ([]model.Position, error) {
	return f.positions, f.err
}

func (f *fakeBroker) PortfolioPosition(ctx context.Context, ticker string) (*model.Position, error) {
	f.ticker = ticker
	return f.position, f.err
}

func TestAccountCashHandler(t *testing.T) {
	broker := &fakeBroker{cash: &model.AccountCash{Free: 125.5, Total: 1000}}
	rr := httptest.NewRecorder()

	AccountCashHandler(broker).ServeHTTP(rr, withCaller(httptest.NewRequest(http.MethodGet, "/account/cash", nil)))

	require.Equal(t, http.StatusOK, rr.Code)
	var got model.AccountCash
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 125.5, got.Free)
	assert.Equal(t, 1000.0, got.Total)

	broker.err = &connectors.HTTPStatusError{Method: http.MethodGet, Path: "/equity/account/cash", StatusCode: http.StatusUnauthorized}
	rr = httptest.NewRecorder()
	AccountCashHandler(broker).ServeHTTP(rr, withCaller(httptest.NewRequest(http.MethodGet, "/account/cash", nil)))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	AccountCashHandler(broker).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/account/cash", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPortfolioHandler_All(t *testing.T) {
	broker := &fakeBroker{}
	rr := httptest.NewRecorder()

	PortfolioHandler(broker).ServeHTTP(rr, withCaller(httptest.NewRequest(http.MethodGet, "/portfolio", nil)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
	assert.Empty(t, broker.ticker)

	broker.positions = []model.Position{{Ticker: "AAPL_US_EQ", Quantity: 2}, {Ticker: "TSLA_US_EQ", Quantity: 1}}
	rr = httptest.NewRecorder()
	PortfolioHandler(broker).ServeHTTP(rr, withCaller(httptest.NewRequest(http.MethodGet, "/portfolio", nil)))

	var got []model.Position
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "AAPL_US_EQ", got[0].Ticker)
	assert.Equal(t, "TSLA_US_EQ", got[1].Ticker)
}

func TestPortfolioHandler_Ticker(t *testing.T) {
	broker := &fakeBroker{position: &model.Position{Ticker: "AAPL_US_EQ", Quantity: 3}}
	rr := httptest.NewRecorder()

	PortfolioHandler(broker).ServeHTTP(rr, withCaller(httptest.NewRequest(http.MethodGet, "/portfolio?ticker=AAPL_US_EQ", nil)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "AAPL_US_EQ", broker.ticker)
	var got model.Position
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 3.0, got.Quantity)
}

func TestWriteBrokerError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &connectors.ValidationError{Field: "ticker", Reason: "must not be empty"}, http.StatusBadRequest},
		{"not found", &connectors.HTTPStatusError{StatusCode: http.StatusNotFound}, http.StatusNotFound},
		{"rate limited", &connectors.HTTPStatusError{StatusCode: http.StatusTooManyRequests}, http.StatusTooManyRequests},
		{"upstream 5xx", &connectors.HTTPStatusError{StatusCode: http.StatusServiceUnavailable}, http.StatusBadGateway},
		{"transport", &connectors.TransportError{Method: http.MethodGet, Path: "/equity/portfolio", Err: assert.AnError}, http.StatusBadGateway},
		{"parse", &connectors.ParseError{Target: "model.Position", Body: "oops"}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeBrokerError(rr, "test", tt.err)

			assert.Equal(t, tt.code, rr.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}
