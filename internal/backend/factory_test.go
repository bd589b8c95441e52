package backend

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashflow/internal/config"
	"cashflow/internal/sheets"
	"cashflow/internal/sheets/file"
)

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	_, err = FromAppConfig(&config.Config{DataBackend: "postgres"})
	assert.ErrorContains(t, err, "invalid backend type")

	cfg, err := FromAppConfig(&config.Config{DataBackend: config.BackendFile, RulesFile: "rules.csv"})
	require.NoError(t, err)
	assert.Equal(t, FileBackend, cfg.Type)
	assert.Equal(t, "rules.csv", cfg.RulesFile)
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, Config{Type: FileBackend}.Validate())
	assert.Error(t, Config{Type: SheetsBackend, GoogleSpreadsheetID: "id"}.Validate())
	assert.Error(t, Config{Type: "memory"}.Validate())
	assert.NoError(t, Config{Type: SheetsBackend, GoogleSpreadsheetID: "id", GoogleServiceAccountJSON: "{}"}.Validate())
}

func TestCreateFileReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"item,enabled,item_type,schedule_type,schedule_start,schedule_expr,amount\nrent,1,debit,days_in_month,,1,900\n"), 0o600))

	var logs bytes.Buffer
	f := NewFactory(slog.New(slog.NewTextHandler(&logs, nil)))

	reader, err := f.CreateReader(context.Background(), Config{Type: FileBackend, RulesFile: path, Location: time.UTC})
	require.NoError(t, err)
	r, ok := reader.(*file.Reader)
	require.True(t, ok)
	assert.Equal(t, time.UTC, r.Location)
	assert.Contains(t, logs.String(), "backend=file")

	rules, err := reader.ReadRules(context.Background())
	require.NoError(t, err)
	assert.Len(t, rules, 1)

	reader, err = f.CreateReader(context.Background(), Config{Type: FileBackend, RulesFile: path, CacheTTL: time.Minute})
	require.NoError(t, err)
	_, ok = reader.(*sheets.CachedReader)
	assert.True(t, ok)
}

func TestCreateSheetsReaderNeedsCredentials(t *testing.T) {
	_, err := NewFactory(nil).CreateReader(context.Background(), Config{
		Type:                     SheetsBackend,
		GoogleSpreadsheetID:      "id",
		GoogleServiceAccountFile: filepath.Join(t.TempDir(), "missing.json"),
	})
	assert.ErrorContains(t, err, "Google Sheets client")
}
