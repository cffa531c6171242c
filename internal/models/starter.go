package models

// StarterPreferences are the preferences a freshly seeded cold storage
// starts with.
func StarterPreferences() Preferences {
	return Preferences{
		Commodities:  []string{"Potato"},
		BagSizes:     []string{"Ration", "Seed", "Number-12", "Goli", "Cut-tok"},
		ReportFormat: "default",
	}
}

// StarterChart is the chart of ledgers a seeded store begins with. IDs are
// left empty for the caller to assign.
func StarterChart() []Ledger {
	return []Ledger{
		{Name: "Cash", Type: AccountTypeAsset},
		{Name: "Bank", Type: AccountTypeAsset},
		{Name: "Farmer Debtors", Type: AccountTypeAsset},
		{Name: "Storage Rent", Type: AccountTypeIncome},
		{Name: "Electricity", Type: AccountTypeExpense},
		{Name: "Wages", Type: AccountTypeExpense},
		{Name: "Bank Loan", Type: AccountTypeLiability},
		{Name: "Capital", Type: AccountTypeEquity},
	}
}
