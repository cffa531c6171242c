package postgres

import (
	"context"
	"database/sql"

	interfaces "github.com/sheikh-saqib/cold-storage-ledger/internal/interfaces"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
)

type PostgresLedgerStore struct {
	db *sql.DB
}

func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{
		db: db,
	}
}

func (p *PostgresLedgerStore) SaveLedger(ctx context.Context, ledger models.Ledger) error {
	// Upsert so re-saving a ledger updates it in place
	const query = `INSERT INTO ledgers (id, name, type, opening_balance)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, type = EXCLUDED.type, opening_balance = EXCLUDED.opening_balance`

	_, err := p.db.ExecContext(ctx, query, ledger.ID, ledger.Name, string(ledger.Type), ledger.OpeningBalance)
	return err
}

func (p *PostgresLedgerStore) GetLedger(ctx context.Context, id string) (models.Ledger, bool, error) {
	const query = `SELECT id, name, type, opening_balance FROM ledgers WHERE id = $1`

	var l models.Ledger
	var accountType string
	err := p.db.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.Name, &accountType, &l.OpeningBalance)
	// Missing row is not an error
	if err == sql.ErrNoRows {
		return models.Ledger{}, false, nil
	}
	if err != nil {
		return models.Ledger{}, false, err
	}
	l.Type = models.AccountType(accountType)
	return l, true, nil
}

func (p *PostgresLedgerStore) GetLedgers(ctx context.Context) ([]models.Ledger, error) {
	// Ordered by insertion so balances list ledgers as they were created
	const query = `SELECT id, name, type, opening_balance FROM ledgers ORDER BY created_at, id`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ledgers []models.Ledger
	for rows.Next() {
		var l models.Ledger
		var accountType string
		if err := rows.Scan(&l.ID, &l.Name, &accountType, &l.OpeningBalance); err != nil {
			return nil, err
		}
		l.Type = models.AccountType(accountType)
		ledgers = append(ledgers, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ledgers, nil
}

func (p *PostgresLedgerStore) SaveVoucher(ctx context.Context, voucher models.Voucher) error {
	const query = `INSERT INTO vouchers (id, debit_ledger_id, credit_ledger_id, amount, narration, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := p.db.ExecContext(ctx, query, voucher.ID, voucher.DebitLedger, voucher.CreditLedger,
		voucher.Amount, voucher.Narration, voucher.CreatedAt)
	return err
}

func (p *PostgresLedgerStore) GetVouchers(ctx context.Context) ([]models.Voucher, error) {
	const query = `SELECT id, debit_ledger_id, credit_ledger_id, amount, narration, created_at
	FROM vouchers ORDER BY created_at, id`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vouchers []models.Voucher
	for rows.Next() {
		var v models.Voucher
		if err := rows.Scan(&v.ID, &v.DebitLedger, &v.CreditLedger, &v.Amount, &v.Narration, &v.CreatedAt); err != nil {
			return nil, err
		}
		vouchers = append(vouchers, v)
	}

	// Surface any error hit while iterating
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vouchers, nil
}

var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
