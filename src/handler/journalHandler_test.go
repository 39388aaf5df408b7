package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trading212/src/auth"
	"trading212/src/model"
	"trading212/src/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test index:
// - TestSearchJournalHandler_Unauthorized: rejects requests without a caller.
// - TestSearchJournalHandler_FiltersAndPagination: maps query params to search options.
// - TestSearchJournalHandler_InvalidParams: bad dates or paging give 400.
// - TestSearchJournalHandler_RepoError: repository failures give 500.

type mockJournalSearcher struct {
	options repository.OrderJournalSearch
	result  []model.OrderExecutionLog
	err     error
	calls   int
}

func (m *mockJournalSearcher) Search(ctx context.Context, options repository.OrderJournalSearch) ([]model.OrderExecutionLog, error) {
	m.calls++
	m.options = options
	return m.result, m.err
}

func withCaller(req *http.Request) *http.Request {
	return req.WithContext(auth.WithCaller(req.Context(), &auth.Caller{Name: "test"}))
}

func TestSearchJournalHandler_Unauthorized(t *testing.T) {
	repo := &mockJournalSearcher{}
	req := httptest.NewRequest(http.MethodGet, "/journal/orders", nil)
	rr := httptest.NewRecorder()

	SearchJournalHandler(repo).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Zero(t, repo.calls)
}

func TestSearchJournalHandler_FiltersAndPagination(t *testing.T) {
	repo := &mockJournalSearcher{
		result: []model.OrderExecutionLog{{ID: 7, Reference: "ref-7", Ticker: "AAPL_US_EQ"}},
	}
	req := withCaller(httptest.NewRequest(http.MethodGet,
		"/journal/orders?ticker=AAPL_US_EQ&status=accepted&action=place&requestedFrom=2024-01-01T00:00:00Z&requestedTo=2024-02-01T00:00:00Z&page=3&pageSize=10", nil))
	rr := httptest.NewRecorder()

	SearchJournalHandler(repo).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	opts := repo.options
	require.NotNil(t, opts.Ticker)
	assert.Equal(t, "AAPL_US_EQ", *opts.Ticker)
	require.NotNil(t, opts.Status)
	assert.Equal(t, "accepted", *opts.Status)
	require.NotNil(t, opts.Action)
	assert.Equal(t, "place", *opts.Action)
	require.NotNil(t, opts.RequestedAfter)
	assert.True(t, opts.RequestedAfter.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, opts.RequestedBefore)
	assert.True(t, opts.RequestedBefore.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 10, opts.Limit)
	assert.Equal(t, 20, opts.Offset)

	var got []model.OrderExecutionLog
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "ref-7", got[0].Reference)
}

func TestSearchJournalHandler_Defaults(t *testing.T) {
	repo := &mockJournalSearcher{}
	req := withCaller(httptest.NewRequest(http.MethodGet, "/journal/orders", nil))
	rr := httptest.NewRecorder()

	SearchJournalHandler(repo).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, repo.options.Ticker)
	assert.Nil(t, repo.options.RequestedAfter)
	assert.Equal(t, 20, repo.options.Limit)
	assert.Equal(t, 0, repo.options.Offset)
}

func TestSearchJournalHandler_InvalidParams(t *testing.T) {
	tests := []string{
		"/journal/orders?requestedFrom=yesterday",
		"/journal/orders?requestedTo=2024-13-01",
		"/journal/orders?page=0",
		"/journal/orders?page=x",
		"/journal/orders?pageSize=500",
		"/journal/orders?pageSize=-1",
	}

	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			repo := &mockJournalSearcher{}
			rr := httptest.NewRecorder()

			SearchJournalHandler(repo).ServeHTTP(rr, withCaller(httptest.NewRequest(http.MethodGet, target, nil)))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Zero(t, repo.calls)
		})
	}
}

func TestSearchJournalHandler_RepoError(t *testing.T) {
	repo := &mockJournalSearcher{err: assert.AnError}
	rr := httptest.NewRecorder()

	SearchJournalHandler(repo).ServeHTTP(rr, withCaller(httptest.NewRequest(http.MethodGet, "/journal/orders", nil)))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
