package handler

import (
	"context"
	"errors"
	"net/http"

	"trading212/src/auth"
	"trading212/src/connectors"
	"trading212/src/model"

	logger "github.com/sirupsen/logrus"
)

type cashFetcher interface {
	AccountCash(ctx context.Context) (*model.AccountCash, error)
}

type portfolioFetcher interface {
	Portfolio(ctx context.Context) ([]model.Position, error)
	PortfolioPosition(ctx context.Context, ticker string) (*model.Position, error)
}

// AccountCashHandler relays the live cash summary. Nothing is cached.
func AccountCashHandler(client cashFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if caller, ok := auth.GetCallerFromContext(r.Context()); !ok || caller == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		cash, err := client.AccountCash(r.Context())
		if err != nil {
			writeBrokerError(w, "AccountCash", err)
			return
		}
		writeJSON(w, http.StatusOK, cash)
	}
}

// PortfolioHandler relays all open positions, or one with ?ticker=.
func PortfolioHandler(client portfolioFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if caller, ok := auth.GetCallerFromContext(r.Context()); !ok || caller == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if ticker := r.URL.Query().Get("ticker"); ticker != "" {
			position, err := client.PortfolioPosition(r.Context(), ticker)
			if err != nil {
				writeBrokerError(w, "PortfolioPosition", err)
				return
			}
			writeJSON(w, http.StatusOK, position)
			return
		}

		positions, err := client.Portfolio(r.Context())
		if err != nil {
			writeBrokerError(w, "Portfolio", err)
			return
		}
		if positions == nil {
			positions = []model.Position{}
		}
		writeJSON(w, http.StatusOK, positions)
	}
}

// writeBrokerError maps client errors onto relay statuses: bad input is
// 400, a broker 4xx keeps its status, everything upstream else is 502.
func writeBrokerError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError

	var (
		vErr      *connectors.ValidationError
		statusErr *connectors.HTTPStatusError
		transport *connectors.TransportError
		parseErr  *connectors.ParseError
	)
	switch {
	case errors.As(err, &vErr):
		status = http.StatusBadRequest
	case errors.As(err, &statusErr):
		status = http.StatusBadGateway
		if statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 {
			status = statusErr.StatusCode
		}
	case errors.As(err, &transport), errors.As(err, &parseErr):
		status = http.StatusBadGateway
	}

	logger.WithFields(map[string]interface{}{
		"handler": op,
		"status":  status,
	}).WithError(err).Warn("broker call failed")

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
