package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goption "google.golang.org/api/option"

	"cashflow/internal/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), Config{
		SpreadsheetID: "sheet-id",
		Location:      time.UTC,
		ClientOptions: []goption.ClientOption{
			goption.WithEndpoint(srv.URL + "/"),
			goption.WithoutAuthentication(),
		},
	})
	require.NoError(t, err)
	return c
}

func TestReadRules(t *testing.T) {
	var gotPath, gotRender string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRender = r.URL.Query().Get("valueRenderOption")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"range":          "transactions!A1:H3",
			"majorDimension": "ROWS",
			"values": [][]any{
				{"item", "enabled", "item_type", "schedule_label", "schedule_type", "schedule_start", "schedule_expr", "amount"},
				{"rent", 1, "debit", "", "days_in_month", "", "1", 1000},
				{"salary", 1, "credit", "", "interval", "2024-01-01", 14, 2500.5},
			},
		})
	})

	rules, err := c.ReadRules(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.True(t, strings.HasSuffix(gotPath, "/spreadsheets/sheet-id/values/transactions"), gotPath)
	assert.Equal(t, "UNFORMATTED_VALUE", gotRender)
	assert.Equal(t, core.DaysInMonth, rules[0].ScheduleType)
	assert.Equal(t, "14", rules[1].ScheduleExpr)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), rules[1].ScheduleStart)
}

func TestReadRulesAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	})

	_, err := c.ReadRules(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read transactions")
}

func TestNewValidation(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.ErrorContains(t, err, "missing spreadsheet id")

	_, err = New(context.Background(), Config{SpreadsheetID: "x"})
	assert.ErrorContains(t, err, "missing service account credentials")

	_, err = New(context.Background(), Config{SpreadsheetID: "x", CredentialsFile: "/does/not/exist.json"})
	assert.ErrorContains(t, err, "read service account file")
}

func TestReadRulesUninitialized(t *testing.T) {
	var c *Client
	_, err := c.ReadRules(context.Background())
	assert.ErrorContains(t, err, "not initialized")
}
