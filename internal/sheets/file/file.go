// Package file loads rules from a local workbook or CSV export.
package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"cashflow/internal/core"
	"cashflow/internal/log"
	"cashflow/internal/sheets"
)

// DefaultSheet is the worksheet holding the rules in an xlsx workbook.
const DefaultSheet = "transactions"

// Reader reads rules from an .xlsx, .xlsm or .csv file, chosen by extension.
type Reader struct {
	Path     string
	Sheet    string
	Location *time.Location
}

var _ sheets.RuleReader = (*Reader)(nil)

func New(path string) *Reader {
	return &Reader{Path: path, Sheet: DefaultSheet, Location: time.Local}
}

func (r *Reader) ReadRules(ctx context.Context) ([]core.Rule, error) {
	rows, err := r.readRows()
	if err != nil {
		return nil, err
	}
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}
	rules, err := sheets.ParseRows(rows, loc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.Path, err)
	}
	slog.InfoContext(ctx, "Loaded rules from file",
		log.FieldComponent, log.ComponentSheets,
		log.FieldOperation, log.OpRead,
		log.FieldPath, r.Path,
		log.FieldRules, len(rules))
	return rules, nil
}

func (r *Reader) readRows() ([][]string, error) {
	switch strings.ToLower(filepath.Ext(r.Path)) {
	case ".xlsx", ".xlsm":
		return r.readXLSX()
	case ".csv":
		return r.readCSV()
	default:
		return nil, fmt.Errorf("unsupported rules file %q: want .xlsx, .xlsm or .csv", r.Path)
	}
}

func (r *Reader) readXLSX() ([][]string, error) {
	f, err := excelize.OpenFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.Path, err)
	}
	defer f.Close()

	sheet := r.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}
	// Raw values keep dates as serial numbers instead of locale formatted text.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, r.Path, err)
	}
	return rows, nil
}

func (r *Reader) readCSV() ([][]string, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.Path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.Path, err)
	}
	return rows, nil
}
