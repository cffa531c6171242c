package ledger

import (
	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// BalanceLine is a computed balance ready to be rendered.
type BalanceLine struct {
	LedgerID string             `json:"ledgerId"`
	Name     string             `json:"name"`
	Type     models.AccountType `json:"type"`
	Balance  decimal.Decimal    `json:"balance"`
	Amount   decimal.Decimal    `json:"amount"`
	Side     string             `json:"side"`
}

// Lines pairs each ledger with its balance from ComputeBalances.
func Lines(ledgers []models.Ledger, balances map[string]decimal.Decimal) map[string]BalanceLine {
	lines := make(map[string]BalanceLine, len(ledgers))
	for _, l := range ledgers {
		b := balances[l.ID]
		amount, side := DisplayBalance(l.Type, b)
		lines[l.ID] = BalanceLine{
			LedgerID: l.ID,
			Name:     l.Name,
			Type:     l.Type,
			Balance:  b,
			Amount:   amount,
			Side:     side,
		}
	}
	return lines
}
