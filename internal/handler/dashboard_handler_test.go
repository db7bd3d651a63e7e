package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSummary(t *testing.T) {
	f := newMonthFixture()
	h := NewDashboardHandler(f.service)

	c, rec := newContext(http.MethodGet, "/api/v1/dashboard/summary", "")
	setupAuthContext(c, f.userID, "")

	require.NoError(t, h.GetSummary(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[DashboardSummaryResponse](t, rec)
	assert.Equal(t, 3, resp.OpenCount)
	assert.Len(t, resp.Month.Groups, 3)
	assert.Equal(t, "7000", resp.Month.Totals.TotalPayable.Amount)
	assert.Equal(t, "7000", resp.ByType.Total.Amount)
}

func TestGetBreakdown(t *testing.T) {
	f := newMonthFixture()
	h := NewDashboardHandler(f.service)

	tests := []struct {
		name     string
		target   string
		labels   []string
		amounts  []string
		percents []string
	}{
		{
			name:     "by type is the default",
			target:   "/api/v1/dashboard/breakdown",
			labels:   []string{"EMI", "Bills"},
			amounts:  []string{"5000", "2000"},
			percents: []string{"71.4", "28.6"},
		},
		{
			name:     "by payee",
			target:   "/api/v1/dashboard/breakdown?by=payee",
			labels:   []string{"HDFC", "BESCOM", "Unassigned"},
			amounts:  []string{"5000", "1200", "800"},
			percents: []string{"71.4", "17.1", "11.4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(http.MethodGet, tt.target, "")
			setupAuthContext(c, f.userID, "")

			require.NoError(t, h.GetBreakdown(c))
			require.Equal(t, http.StatusOK, rec.Code)

			resp := decodeJSON[BreakdownResponse](t, rec)
			require.Len(t, resp.Entries, len(tt.labels))
			for i, e := range resp.Entries {
				assert.Equal(t, tt.labels[i], e.Label)
				assert.Equal(t, tt.amounts[i], e.Amount.Amount)
				assert.Equal(t, tt.percents[i], e.Percent)
			}
			assert.Equal(t, Money{Amount: "7000", Formatted: "₹7,000"}, resp.Total)
		})
	}
}

func TestGetBreakdown_ByMonth(t *testing.T) {
	f := newMonthFixture()
	h := NewDashboardHandler(f.service)

	c, rec := newContext(http.MethodGet, "/api/v1/dashboard/breakdown?by=month", "")
	setupAuthContext(c, f.userID, "")

	require.NoError(t, h.GetBreakdown(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[BreakdownResponse](t, rec)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "2024-10", resp.Entries[0].Key, "months are listed oldest first")
	assert.Equal(t, "Oct 2024", resp.Entries[0].Label)
	assert.Equal(t, "May 2025", resp.Entries[1].Label)
	assert.Equal(t, "5000", resp.Entries[1].Amount.Amount)
	assert.Equal(t, "50.0", resp.Entries[1].Percent)
	assert.Equal(t, Money{Amount: "10000", Formatted: "₹10,000"}, resp.Total)
}

func TestGetBreakdown_InvalidDimension(t *testing.T) {
	h := NewDashboardHandler(newMonthFixture().service)

	c, rec := newContext(http.MethodGet, "/api/v1/dashboard/breakdown?by=bank", "")
	setupAuthContext(c, newMonthFixture().userID, "")

	require.NoError(t, h.GetBreakdown(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"by"}, fieldNames(decodeJSON[ProblemDetails](t, rec)))
}
