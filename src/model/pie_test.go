package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPieRequestValidate(t *testing.T) {
	goal, negGoal := 1000.0, -1.0
	tests := []struct {
		name   string
		req    PieRequest
		create bool
		field  string
	}{
		{"create ok", PieRequest{Name: "Tech", InstrumentShares: map[string]float64{"AAPL_US_EQ": 0.5, "MSFT_US_EQ": 0.5}}, true, ""},
		{"tenths sum exactly", PieRequest{Name: "T", InstrumentShares: map[string]float64{"A": 0.1, "B": 0.2, "C": 0.7}}, true, ""},
		{"create needs name", PieRequest{InstrumentShares: map[string]float64{"A": 1}}, true, "name"},
		{"create needs shares", PieRequest{Name: "T"}, true, "instrumentShares"},
		{"shares under one", PieRequest{Name: "T", InstrumentShares: map[string]float64{"A": 0.5, "B": 0.4}}, true, "instrumentShares"},
		{"zero share", PieRequest{Name: "T", InstrumentShares: map[string]float64{"A": 1, "B": 0}}, true, "instrumentShares"},
		{"share over one", PieRequest{Name: "T", InstrumentShares: map[string]float64{"A": 1.5}}, true, "instrumentShares"},
		{"negative goal", PieRequest{Name: "T", Goal: &negGoal, InstrumentShares: map[string]float64{"A": 1}}, true, "goal"},
		{"update name only", PieRequest{Name: "Renamed"}, false, ""},
		{"update goal only", PieRequest{Goal: &goal}, false, ""},
		{"update bad shares", PieRequest{InstrumentShares: map[string]float64{"A": 0.3}}, false, "instrumentShares"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(tt.create)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestPieRequestOmitsUnsetFields(t *testing.T) {
	out, err := json.Marshal(PieRequest{Name: "Tech"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Tech"}`, string(out))
}

func TestPieDecodesNestedResult(t *testing.T) {
	var items []PieListItem
	require.NoError(t, json.Unmarshal([]byte(`[{"id":3,"cash":1.5,"status":"AHEAD",
		"dividendDetails":{"gained":2,"inCash":1,"reinvested":1},
		"result":{"investedValue":100,"value":110,"result":10,"resultCoef":0.1}}]`), &items))
	require.Len(t, items, 1)
	assert.Equal(t, PieStatusAhead, items[0].Status)
	assert.Equal(t, 2.0, *items[0].DividendDetails.Gained)
	assert.Equal(t, 0.1, *items[0].Result.ResultCoef)
}
