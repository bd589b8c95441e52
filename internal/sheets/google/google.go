// Package google reads rules from a Google Sheets worksheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"cashflow/internal/core"
	"cashflow/internal/log"
	ports "cashflow/internal/sheets"
)

// DefaultSheetName is the worksheet read when Config.SheetName is empty.
const DefaultSheetName = "transactions"

// Config carries everything the client needs. Credentials are never read
// from the environment here.
type Config struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
	Location        *time.Location

	// ClientOptions replace credential handling entirely when set.
	ClientOptions []goption.ClientOption
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	loc           *time.Location
}

var _ ports.RuleReader = (*Client)(nil)

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, cfg Config) (*Client, error) {
	id := strings.TrimSpace(cfg.SpreadsheetID)
	if id == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheet := strings.TrimSpace(cfg.SheetName)
	if sheet == "" {
		sheet = DefaultSheetName
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	opts := cfg.ClientOptions
	if len(opts) == 0 {
		creds, err := credentials(cfg)
		if err != nil {
			return nil, err
		}
		opts = []goption.ClientOption{
			goption.WithCredentialsJSON(creds),
			goption.WithScopes(gsheet.SpreadsheetsReadonlyScope),
		}
	}
	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	slog.InfoContext(ctx, "Google Sheets service created",
		log.FieldComponent, log.ComponentSheets,
		"spreadsheet_id", id,
		"sheet", sheet)

	return &Client{svc: svc, spreadsheetID: id, sheetName: sheet, loc: loc}, nil
}

func credentials(cfg Config) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		return []byte(cfg.CredentialsJSON), nil
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials")
	}
}

// ReadRules fetches every record of the worksheet; the first row is the
// header.
func (c *Client) ReadRules(ctx context.Context) ([]core.Rule, error) {
	if c == nil || c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	start := time.Now()
	rng := c.sheetName
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	rules, err := ports.ParseRows(ports.ValuesToRows(resp.Values), c.loc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rng, err)
	}
	slog.InfoContext(ctx, "Loaded rules from Google Sheets",
		log.FieldComponent, log.ComponentSheets,
		log.FieldOperation, log.OpRead,
		"sheet", rng,
		log.FieldRules, len(rules),
		log.FieldDuration, time.Since(start).Milliseconds())
	return rules, nil
}
