package sheets

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"cashflow/internal/core"
)

// Column names of the transactions sheet.
const (
	ColItem          = "item"
	ColEnabled       = "enabled"
	ColItemType      = "item_type"
	ColScheduleLabel = "schedule_label"
	ColScheduleType  = "schedule_type"
	ColScheduleStart = "schedule_start"
	ColScheduleExpr  = "schedule_expr"
	ColAmount        = "amount"
)

// requiredColumns are the columns a projection consumes.
var requiredColumns = []string{
	ColItem, ColEnabled, ColItemType, ColScheduleType,
	ColScheduleStart, ColScheduleExpr, ColAmount,
}

// headerSearchRows bounds how far down a sheet the header row is looked for.
// Workbooks often carry a title row above it.
const headerSearchRows = 10

// Header maps column names to their index in a row.
type Header map[string]int

// NewHeader indexes a header row. Names are matched case-insensitively.
func NewHeader(cols []string) (Header, error) {
	h := Header{}
	for i, c := range cols {
		name := strings.ToLower(strings.TrimSpace(c))
		if name == "" {
			continue
		}
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := h[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s; got headers=%v", core.ErrMissingColumn, strings.Join(missing, ","), cols)
	}
	return h, nil
}

// Get returns the trimmed cell of column name, or "" when the row is short.
func (h Header) Get(row []string, name string) string {
	idx, ok := h[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ParseRows converts a sheet (header row included) into rules. Blank rows are
// skipped; the first malformed row aborts with its sheet row number.
func ParseRows(rows [][]string, loc *time.Location) ([]core.Rule, error) {
	headerIdx, header, err := findHeader(rows)
	if err != nil {
		return nil, err
	}
	var rules []core.Rule
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		r, err := ParseRow(header, row, loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// ParseRow converts one data row into a rule. Disabled rows only carry their
// item and label: they are never expanded, so their other cells are not read.
func ParseRow(h Header, row []string, loc *time.Location) (core.Rule, error) {
	r := core.Rule{
		Item:  h.Get(row, ColItem),
		Label: h.Get(row, ColScheduleLabel),
	}
	enabled, err := parseEnabled(h.Get(row, ColEnabled))
	if err != nil {
		return core.Rule{}, err
	}
	if !enabled {
		return r, nil
	}
	r.Enabled = true
	r.ItemType = core.ItemType(strings.ToLower(h.Get(row, ColItemType)))
	r.ScheduleType = core.ParseScheduleKind(h.Get(row, ColScheduleType))
	r.ScheduleExpr = h.Get(row, ColScheduleExpr)

	if start := h.Get(row, ColScheduleStart); start != "" {
		r.ScheduleStart, err = parseStart(start, loc)
		if err != nil {
			return core.Rule{}, fmt.Errorf("schedule_start: %w", err)
		}
	}
	r.Amount, err = core.ParseAmount(h.Get(row, ColAmount))
	if err != nil {
		return core.Rule{}, fmt.Errorf("amount: %w", err)
	}
	return r, nil
}

// parseEnabled accepts numbers (non-zero is true) and booleans. An empty
// cell disables the row.
func parseEnabled(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return !d.IsZero(), nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	return false, fmt.Errorf("%w: %q", core.ErrInvalidEnabled, s)
}

// parseStart reads YYYY-MM-DD text or a spreadsheet date serial number.
func parseStart(s string, loc *time.Location) (time.Time, error) {
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %w", core.ErrMalformedDate, err)
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
	}
	return core.ParseDate(s, loc)
}

func findHeader(rows [][]string) (int, Header, error) {
	var lastErr error
	for i := 0; i < len(rows) && i < headerSearchRows; i++ {
		h, err := NewHeader(rows[i])
		if err == nil {
			return i, h, nil
		}
		if !isBlank(rows[i]) {
			lastErr = err
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%w: no header row found", core.ErrMissingColumn)
	}
	return 0, nil, lastErr
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// toStrings renders API cell values as trimmed strings.
func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		switch n := v.(type) {
		case float64:
			out[i] = strconv.FormatFloat(n, 'f', -1, 64)
		case nil:
			out[i] = ""
		default:
			out[i] = strings.TrimSpace(fmt.Sprint(v))
		}
	}
	return out
}

// ValuesToRows converts a Sheets API value matrix into string rows.
func ValuesToRows(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = toStrings(v)
	}
	return rows
}
