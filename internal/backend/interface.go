package backend

import (
	"context"

	"cashflow/internal/sheets"
)

// Factory creates rule sources from configuration.
type Factory interface {
	CreateReader(ctx context.Context, config Config) (sheets.RuleReader, error)
}
