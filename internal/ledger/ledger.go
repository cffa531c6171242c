package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	interfaces "github.com/sheikh-saqib/cold-storage-ledger/internal/interfaces"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/models/events"
	"go.uber.org/zap"
)

var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrSameLedger    = errors.New("debit and credit ledger must differ")
	ErrUnknownLedger = errors.New("unknown ledger")
	ErrInvalidLedger = errors.New("invalid ledger")
)

// Service records ledgers and vouchers in a store and derives balances
// from them on every read.
type Service struct {
	store     interfaces.LedgerStore
	publisher interfaces.EventPublisher
	log       *zap.Logger
	now       func() time.Time
}

// NewService wires a ledger service. publisher and log may be nil.
func NewService(store interfaces.LedgerStore, publisher interfaces.EventPublisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:     store,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

func (s *Service) CreateLedger(ctx context.Context, l models.Ledger) (models.Ledger, error) {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return models.Ledger{}, fmt.Errorf("%w: name is required", ErrInvalidLedger)
	}
	if !l.Type.Valid() {
		return models.Ledger{}, fmt.Errorf("%w: %q", models.ErrInvalidAccountType, l.Type)
	}
	if l.ID == "" {
		l.ID = uuid.New().String()
	}

	if err := s.store.SaveLedger(ctx, l); err != nil {
		return models.Ledger{}, fmt.Errorf("save ledger: %w", err)
	}
	s.log.Info("ledger created", zap.String("ledger_id", l.ID), zap.String("type", string(l.Type)))
	return l, nil
}

func (s *Service) Ledgers(ctx context.Context) ([]models.Ledger, error) {
	return s.store.GetLedgers(ctx)
}

func (s *Service) Vouchers(ctx context.Context) ([]models.Voucher, error) {
	return s.store.GetVouchers(ctx)
}

// PostVoucher checks that a voucher moves a positive amount between two
// distinct, known ledgers, stores it and publishes a VoucherPosted event.
// A publish failure is logged; the voucher stays recorded.
func (s *Service) PostVoucher(ctx context.Context, v models.Voucher) (models.Voucher, error) {
	// Basic validation: the voucher amount must be positive
	if !v.Amount.IsPositive() {
		return models.Voucher{}, ErrInvalidAmount
	}
	if v.DebitLedger == v.CreditLedger {
		return models.Voucher{}, ErrSameLedger
	}
	// Both sides must name a ledger that exists
	for _, id := range []string{v.DebitLedger, v.CreditLedger} {
		_, ok, err := s.store.GetLedger(ctx, id)
		if err != nil {
			return models.Voucher{}, fmt.Errorf("get ledger %s: %w", id, err)
		}
		if !ok {
			return models.Voucher{}, fmt.Errorf("%w: %s", ErrUnknownLedger, id)
		}
	}

	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = s.now().UTC()
	}

	// Save the voucher; if saving fails, nothing is published
	if err := s.store.SaveVoucher(ctx, v); err != nil {
		return models.Voucher{}, fmt.Errorf("save voucher: %w", err)
	}

	// Publish after the voucher is stored
	if s.publisher != nil {
		event := events.VoucherPosted{
			VoucherID:    v.ID,
			DebitLedger:  v.DebitLedger,
			CreditLedger: v.CreditLedger,
			Amount:       v.Amount,
			OccurredAt:   v.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, v.ID, event); err != nil {
			s.log.Warn("publish voucher_posted failed", zap.String("voucher_id", v.ID), zap.Error(err))
		}
	}
	return v, nil
}

// Balances loads every ledger and voucher and computes closing balances.
func (s *Service) Balances(ctx context.Context) (map[string]BalanceLine, error) {
	ledgers, err := s.store.GetLedgers(ctx)
	if err != nil {
		return nil, fmt.Errorf("get ledgers: %w", err)
	}
	vouchers, err := s.store.GetVouchers(ctx)
	if err != nil {
		return nil, fmt.Errorf("get vouchers: %w", err)
	}

	// Vouchers naming missing ledgers are skipped, not fatal
	if dangling := FindDanglingVouchers(ledgers, vouchers); len(dangling) > 0 {
		s.log.Warn("vouchers reference unknown ledgers", zap.Strings("voucher_ids", dangling))
	}
	return Lines(ledgers, ComputeBalances(ledgers, vouchers)), nil
}

// Balance returns the closing balance of one ledger.
func (s *Service) Balance(ctx context.Context, ledgerID string) (BalanceLine, error) {
	lines, err := s.Balances(ctx)
	if err != nil {
		return BalanceLine{}, err
	}
	line, ok := lines[ledgerID]
	if !ok {
		return BalanceLine{}, fmt.Errorf("%w: %s", ErrUnknownLedger, ledgerID)
	}
	return line, nil
}
