package api

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/ledger"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type LedgerHandler struct {
	Service *ledger.Service
	Log     *zap.Logger
}

type createLedgerRequest struct {
	Name           string          `json:"name" binding:"required"`
	Type           string          `json:"type" binding:"required"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

type postVoucherRequest struct {
	DebitLedger  string          `json:"debitLedger" binding:"required"`
	CreditLedger string          `json:"creditLedger" binding:"required"`
	Amount       decimal.Decimal `json:"amount"`
	Narration    string          `json:"narration"`
}

func (h *LedgerHandler) ListLedgers(c *gin.Context) {
	ledgers, err := h.Service.Ledgers(c.Request.Context())
	if err != nil {
		h.internalError(c, "list ledgers", err)
		return
	}
	if ledgers == nil {
		ledgers = []models.Ledger{}
	}
	c.JSON(http.StatusOK, ledgers)
}

func (h *LedgerHandler) CreateLedger(c *gin.Context) {
	var req createLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accountType, err := models.ParseAccountType(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	l, err := h.Service.CreateLedger(c.Request.Context(), models.Ledger{
		Name:           req.Name,
		Type:           accountType,
		OpeningBalance: req.OpeningBalance,
	})
	if errors.Is(err, ledger.ErrInvalidLedger) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.internalError(c, "create ledger", err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *LedgerHandler) ListVouchers(c *gin.Context) {
	vouchers, err := h.Service.Vouchers(c.Request.Context())
	if err != nil {
		h.internalError(c, "list vouchers", err)
		return
	}
	if vouchers == nil {
		vouchers = []models.Voucher{}
	}
	c.JSON(http.StatusOK, vouchers)
}

func (h *LedgerHandler) PostVoucher(c *gin.Context) {
	var req postVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.Service.PostVoucher(c.Request.Context(), models.Voucher{
		DebitLedger:  req.DebitLedger,
		CreditLedger: req.CreditLedger,
		Amount:       req.Amount,
		Narration:    req.Narration,
	})
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrSameLedger):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ledger.ErrUnknownLedger):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.internalError(c, "post voucher", err)
		return
	}

	h.Log.Info("voucher posted", zap.String("voucher_id", v.ID), zap.String("admin_id", GetAdminID(c)))
	c.JSON(http.StatusCreated, v)
}

// Balances answers with every ledger's balance, sorted by ledger name.
func (h *LedgerHandler) Balances(c *gin.Context) {
	lines, err := h.Service.Balances(c.Request.Context())
	if err != nil {
		h.internalError(c, "compute balances", err)
		return
	}

	out := make([]ledger.BalanceLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].LedgerID < out[j].LedgerID
	})
	c.JSON(http.StatusOK, out)
}

func (h *LedgerHandler) Balance(c *gin.Context) {
	line, err := h.Service.Balance(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ledger.ErrUnknownLedger) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ledger not found"})
		return
	}
	if err != nil {
		h.internalError(c, "compute balance", err)
		return
	}
	c.JSON(http.StatusOK, line)
}

func (h *LedgerHandler) internalError(c *gin.Context, op string, err error) {
	h.Log.Error(op+" failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
