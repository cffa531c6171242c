package ledger

import (
	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
	"github.com/shopspring/decimal"
)

type totals struct {
	debit  decimal.Decimal
	credit decimal.Decimal
}

// ComputeBalances returns the closing balance of every ledger, keyed by
// ledger id. Debit-normal ledgers (Asset, Expense) close at
// opening + debits - credits, the rest at opening - debits + credits.
//
// Vouchers that name a ledger missing from ledgers contribute nothing to it.
// A voucher whose debit and credit ledger are the same adds its amount to
// both sides, so it leaves that balance unchanged.
func ComputeBalances(ledgers []models.Ledger, vouchers []models.Voucher) map[string]decimal.Decimal {
	sums := make(map[string]*totals, len(ledgers))
	for _, l := range ledgers {
		sums[l.ID] = &totals{}
	}

	for _, v := range vouchers {
		if t, ok := sums[v.DebitLedger]; ok {
			t.debit = t.debit.Add(v.Amount)
		}
		if t, ok := sums[v.CreditLedger]; ok {
			t.credit = t.credit.Add(v.Amount)
		}
	}

	balances := make(map[string]decimal.Decimal, len(ledgers))
	for _, l := range ledgers {
		t := sums[l.ID]
		if l.Type.DebitNormal() {
			balances[l.ID] = l.OpeningBalance.Add(t.debit).Sub(t.credit)
		} else {
			balances[l.ID] = l.OpeningBalance.Sub(t.debit).Add(t.credit)
		}
	}
	return balances
}

// DisplayBalance is the balance as shown next to a ledger: the amount with
// its side, debit ("Dr") or credit ("Cr").
func DisplayBalance(t models.AccountType, balance decimal.Decimal) (decimal.Decimal, string) {
	debit := balance.IsPositive() == t.DebitNormal()
	if balance.IsZero() {
		debit = t.DebitNormal()
	}
	if debit {
		return balance.Abs(), "Dr"
	}
	return balance.Abs(), "Cr"
}

// FindDanglingVouchers returns the ids of vouchers whose debit or credit
// ledger is not among ledgers, in voucher order.
func FindDanglingVouchers(ledgers []models.Ledger, vouchers []models.Voucher) []string {
	known := make(map[string]struct{}, len(ledgers))
	for _, l := range ledgers {
		known[l.ID] = struct{}{}
	}

	var dangling []string
	for _, v := range vouchers {
		_, debitOK := known[v.DebitLedger]
		_, creditOK := known[v.CreditLedger]
		if !debitOK || !creditOK {
			dangling = append(dangling, v.ID)
		}
	}
	return dangling
}
