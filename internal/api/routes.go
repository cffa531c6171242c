package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/auth"
	interfaces "github.com/sheikh-saqib/cold-storage-ledger/internal/interfaces"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/ledger"
	"go.uber.org/zap"
)

type Deps struct {
	Ledger         *ledger.Service
	Admins         interfaces.AdminStore
	Issuer         *auth.Issuer
	Log            *zap.Logger
	AllowedOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(d.Log))

	if len(d.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	authHandler := &AuthHandler{Admins: d.Admins, Issuer: d.Issuer, Log: d.Log}
	ledgerHandler := &LedgerHandler{Service: d.Ledger, Log: d.Log}

	v1 := router.Group("/api/v1")
	v1.POST("/auth/login", authHandler.Login)

	protected := v1.Group("/")
	protected.Use(AuthMiddleware(d.Issuer))
	{
		protected.GET("/ledgers", ledgerHandler.ListLedgers)
		protected.POST("/ledgers", ledgerHandler.CreateLedger)
		protected.GET("/ledgers/balances", ledgerHandler.Balances)
		protected.GET("/ledgers/:id/balance", ledgerHandler.Balance)
		protected.GET("/vouchers", ledgerHandler.ListVouchers)
		protected.POST("/vouchers", ledgerHandler.PostVoucher)
	}

	return router
}
