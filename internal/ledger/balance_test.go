package ledger

import (
	"testing"

	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func voucher(id, debit, credit, amount string) models.Voucher {
	return models.Voucher{ID: id, DebitLedger: debit, CreditLedger: credit, Amount: d(amount)}
}

func TestComputeBalances_SignConvention(t *testing.T) {
	vouchers := []models.Voucher{
		voucher("v1", "X", "Y", "200"),
		voucher("v2", "Z", "X", "50"),
	}

	tests := []struct {
		name     string
		typ      models.AccountType
		expected string
	}{
		{"asset is debit normal", models.AccountTypeAsset, "1150"},
		{"expense is debit normal", models.AccountTypeExpense, "1150"},
		{"liability is credit normal", models.AccountTypeLiability, "850"},
		{"income is credit normal", models.AccountTypeIncome, "850"},
		{"equity is credit normal", models.AccountTypeEquity, "850"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledgers := []models.Ledger{{ID: "X", Type: tt.typ, OpeningBalance: d("1000")}}
			got := ComputeBalances(ledgers, vouchers)
			require.Contains(t, got, "X")
			assert.True(t, d(tt.expected).Equal(got["X"]), "got %s", got["X"])
		})
	}
}

func TestComputeBalances_SpecExample(t *testing.T) {
	ledgers := []models.Ledger{
		{ID: "A", Type: models.AccountTypeAsset, OpeningBalance: d("1000")},
		{ID: "B", Type: models.AccountTypeIncome},
		{ID: "C", Type: models.AccountTypeAsset},
	}
	vouchers := []models.Voucher{
		voucher("v1", "A", "B", "200"),
		voucher("v2", "C", "A", "50"),
	}

	got := ComputeBalances(ledgers, vouchers)

	assert.Equal(t, "1150", got["A"].String())
	assert.Equal(t, "200", got["B"].String())
	assert.Equal(t, "50", got["C"].String())
}

func TestComputeBalances_NoVouchersReturnsOpening(t *testing.T) {
	ledgers := []models.Ledger{
		{ID: "a", Type: models.AccountTypeAsset, OpeningBalance: d("10.50")},
		{ID: "l", Type: models.AccountTypeLiability, OpeningBalance: d("-3")},
		{ID: "i", Type: models.AccountTypeIncome, OpeningBalance: d("0")},
		{ID: "e", Type: models.AccountTypeExpense, OpeningBalance: d("7")},
		{ID: "q", Type: models.AccountTypeEquity, OpeningBalance: d("100000")},
	}

	for _, vouchers := range [][]models.Voucher{nil, {}} {
		got := ComputeBalances(ledgers, vouchers)
		require.Len(t, got, len(ledgers))
		for _, l := range ledgers {
			assert.True(t, l.OpeningBalance.Equal(got[l.ID]), "ledger %s", l.ID)
		}
	}
}

func TestComputeBalances_UnreferencedLedgerKeepsOpening(t *testing.T) {
	ledgers := []models.Ledger{
		{ID: "cash", Type: models.AccountTypeAsset, OpeningBalance: d("500")},
		{ID: "rent", Type: models.AccountTypeIncome, OpeningBalance: d("0")},
		{ID: "idle", Type: models.AccountTypeLiability, OpeningBalance: d("42")},
	}
	got := ComputeBalances(ledgers, []models.Voucher{voucher("v1", "cash", "rent", "75")})

	assert.Equal(t, "42", got["idle"].String())
	assert.Equal(t, "575", got["cash"].String())
	assert.Equal(t, "75", got["rent"].String())
}

func TestComputeBalances_DanglingReferencesContributeNothing(t *testing.T) {
	ledgers := []models.Ledger{
		{ID: "cash", Type: models.AccountTypeAsset, OpeningBalance: d("100")},
	}
	vouchers := []models.Voucher{
		voucher("v1", "cash", "ghost", "30"),
		voucher("v2", "ghost", "phantom", "999"),
	}

	got := ComputeBalances(ledgers, vouchers)

	require.Len(t, got, 1)
	assert.NotContains(t, got, "ghost")
	assert.NotContains(t, got, "phantom")
	assert.Equal(t, "130", got["cash"].String())
}

func TestComputeBalances_SelfReferencingVoucherNetsZero(t *testing.T) {
	ledgers := []models.Ledger{
		{ID: "a", Type: models.AccountTypeAsset, OpeningBalance: d("10")},
		{ID: "l", Type: models.AccountTypeLiability, OpeningBalance: d("10")},
	}
	vouchers := []models.Voucher{
		voucher("v1", "a", "a", "5"),
		voucher("v2", "l", "l", "5"),
	}

	got := ComputeBalances(ledgers, vouchers)

	assert.Equal(t, "10", got["a"].String())
	assert.Equal(t, "10", got["l"].String())
}

func TestComputeBalances_DoesNotMutateInputs(t *testing.T) {
	ledgers := []models.Ledger{{ID: "a", Type: models.AccountTypeAsset, OpeningBalance: d("1")}}
	vouchers := []models.Voucher{voucher("v1", "a", "b", "2")}

	ComputeBalances(ledgers, vouchers)

	assert.Equal(t, "1", ledgers[0].OpeningBalance.String())
	assert.Equal(t, "2", vouchers[0].Amount.String())
}

func TestComputeBalances_ManyVouchers(t *testing.T) {
	ledgers := []models.Ledger{
		{ID: "cash", Type: models.AccountTypeAsset},
		{ID: "rent", Type: models.AccountTypeIncome},
	}
	vouchers := make([]models.Voucher, 0, 1000)
	for i := 0; i < 1000; i++ {
		vouchers = append(vouchers, voucher("v", "cash", "rent", "0.01"))
	}

	got := ComputeBalances(ledgers, vouchers)

	assert.Equal(t, "10", got["cash"].String())
	assert.Equal(t, "10", got["rent"].String())
}

func TestDisplayBalance(t *testing.T) {
	tests := []struct {
		typ     models.AccountType
		balance string
		amount  string
		side    string
	}{
		{models.AccountTypeAsset, "150", "150", "Dr"},
		{models.AccountTypeAsset, "-20", "20", "Cr"},
		{models.AccountTypeAsset, "0", "0", "Dr"},
		{models.AccountTypeLiability, "150", "150", "Cr"},
		{models.AccountTypeIncome, "-20", "20", "Dr"},
		{models.AccountTypeEquity, "0", "0", "Cr"},
	}

	for _, tt := range tests {
		amount, side := DisplayBalance(tt.typ, d(tt.balance))
		assert.Equal(t, tt.amount, amount.String(), "%s %s", tt.typ, tt.balance)
		assert.Equal(t, tt.side, side, "%s %s", tt.typ, tt.balance)
	}
}

func TestFindDanglingVouchers(t *testing.T) {
	ledgers := []models.Ledger{{ID: "a"}, {ID: "b"}}
	vouchers := []models.Voucher{
		voucher("ok", "a", "b", "1"),
		voucher("bad-debit", "x", "b", "1"),
		voucher("bad-credit", "a", "y", "1"),
	}

	assert.Equal(t, []string{"bad-debit", "bad-credit"}, FindDanglingVouchers(ledgers, vouchers))
	assert.Empty(t, FindDanglingVouchers(ledgers, vouchers[:1]))
}
