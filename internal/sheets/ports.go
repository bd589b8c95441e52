package sheets

import (
	"context"

	"cashflow/internal/core"
)

// Ports for inbound adapters.
type (
	// RuleReader loads every row of the transactions sheet as a rule.
	RuleReader interface {
		ReadRules(ctx context.Context) ([]core.Rule, error)
	}
)
