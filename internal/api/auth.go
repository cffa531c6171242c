package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/auth"
	interfaces "github.com/sheikh-saqib/cold-storage-ledger/internal/interfaces"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Admins interfaces.AdminStore
	Issuer *auth.Issuer
	Log    *zap.Logger
}

// Login checks a store admin's credentials and answers with everything
// the client keeps in its session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	admin, ok, err := h.Admins.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		h.Log.Error("lookup admin failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !ok || !auth.CheckPassword(req.Password, admin.PasswordHash) {
		h.Log.Info("login failed", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	storage, prefs, ok, err := h.Admins.GetColdStorage(ctx, admin.ColdStorageID)
	if err != nil {
		h.Log.Error("lookup cold storage failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !ok {
		h.Log.Error("admin without cold storage", zap.String("admin_id", admin.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cold storage not found"})
		return
	}

	token, err := h.Issuer.Issue(admin.ID, admin.ColdStorageID)
	if err != nil {
		h.Log.Error("issue token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	h.Log.Info("login", zap.String("admin_id", admin.ID))
	c.JSON(http.StatusOK, models.LoginResponse{
		Admin:       admin,
		ColdStorage: storage,
		Preferences: prefs,
		Token:       token,
	})
}
