package events

import (
	"time"

	"github.com/shopspring/decimal"
)

type VoucherPosted struct {
	VoucherID    string          `json:"voucher_id"`
	DebitLedger  string          `json:"debit_ledger"`
	CreditLedger string          `json:"credit_ledger"`
	Amount       decimal.Decimal `json:"amount"`
	OccurredAt   time.Time       `json:"occurred_at"`
}
