package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"trading212/src/auth"
	"trading212/src/model"
	"trading212/src/repository"

	logger "github.com/sirupsen/logrus"
)

type journalSearcher interface {
	Search(ctx context.Context, options repository.OrderJournalSearch) ([]model.OrderExecutionLog, error)
}

// SearchJournalHandler lists order journal entries.
// Supports pagination and filters (ticker, status, action, requestedFrom, requestedTo).
func SearchJournalHandler(repo journalSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if caller, ok := auth.GetCallerFromContext(r.Context()); !ok || caller == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		options := repository.OrderJournalSearch{
			Ticker: optional(q.Get("ticker")),
			Status: optional(q.Get("status")),
			Action: optional(q.Get("action")),
		}

		if v := q.Get("requestedFrom"); v != "" {
			parsed, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "invalid requestedFrom", http.StatusBadRequest)
				return
			}
			options.RequestedAfter = &parsed
		}

		if v := q.Get("requestedTo"); v != "" {
			parsed, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "invalid requestedTo", http.StatusBadRequest)
				return
			}
			options.RequestedBefore = &parsed
		}

		page := 1
		if pageParam := q.Get("page"); pageParam != "" {
			parsedPage, err := strconv.Atoi(pageParam)
			if err != nil || parsedPage <= 0 {
				http.Error(w, "invalid page", http.StatusBadRequest)
				return
			}
			page = parsedPage
		}

		pageSize := 20
		if sizeParam := q.Get("pageSize"); sizeParam != "" {
			parsedSize, err := strconv.Atoi(sizeParam)
			if err != nil || parsedSize <= 0 || parsedSize > 200 {
				http.Error(w, "invalid pageSize", http.StatusBadRequest)
				return
			}
			pageSize = parsedSize
		}

		options.Limit = pageSize
		options.Offset = (page - 1) * pageSize

		entries, err := repo.Search(r.Context(), options)
		if err != nil {
			logger.WithError(err).Error("failed to search order journal")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if entries == nil {
			entries = []model.OrderExecutionLog{}
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

// DefaultSearchJournalHandler wires the handler to the production repository implementation.
func DefaultSearchJournalHandler() http.HandlerFunc {
	return SearchJournalHandler(repository.NewOrderJournalRepository())
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}
