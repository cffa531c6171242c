package interfaces

import (
	"context"

	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
)

type LedgerStore interface {
	SaveLedger(ctx context.Context, ledger models.Ledger) error
	GetLedger(ctx context.Context, id string) (models.Ledger, bool, error)
	GetLedgers(ctx context.Context) ([]models.Ledger, error)
	SaveVoucher(ctx context.Context, voucher models.Voucher) error
	GetVouchers(ctx context.Context) ([]models.Voucher, error)
}
