package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher moves Amount from its credit ledger to its debit ledger.
type Voucher struct {
	ID           string          `json:"_id"`
	DebitLedger  string          `json:"debitLedger"`
	CreditLedger string          `json:"creditLedger"`
	Amount       decimal.Decimal `json:"amount"`
	Narration    string          `json:"narration,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}
