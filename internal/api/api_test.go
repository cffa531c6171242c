package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/auth"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/ledger"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/storage/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router *gin.Engine
	issuer *auth.Issuer
	admin  models.StoreAdmin
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	admins := memory.NewMemoryAdminStore()
	ledgers := memory.NewMemoryLedgerStore()
	admin, err := memory.Seed(context.Background(), admins, ledgers, "admin@example.com", "potato123")
	require.NoError(t, err)

	issuer := auth.NewIssuer("test-secret")
	router := NewRouter(Deps{
		Ledger: ledger.NewService(ledgers, nil, nil),
		Admins: admins,
		Issuer: issuer,
		Log:    zap.NewNop(),
	})
	return &testServer{router: router, issuer: issuer, admin: admin}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()
	tok, err := s.issuer.Issue(s.admin.ID, s.admin.ColdStorageID)
	require.NoError(t, err)
	return tok
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{Email: "ADMIN@example.com", Password: "potato123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, s.admin.ID, resp.Admin.ID)
	assert.Equal(t, "Demo Cold Storage", resp.ColdStorage.Name)
	assert.Equal(t, []string{"Potato"}, resp.Preferences.Commodities)
	assert.NotContains(t, w.Body.String(), s.admin.PasswordHash)

	claims, err := s.issuer.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, s.admin.ID, claims.Subject)
}

func TestLogin_Rejects(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{Email: "nobody@example.com", Password: "potato123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/v1/ledgers", "/api/v1/vouchers", "/api/v1/ledgers/balances"} {
		w := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)

		w = s.do(t, http.MethodGet, path, "bogus", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestLedgerFlow(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t)

	w := s.do(t, http.MethodPost, "/api/v1/ledgers", tok, map[string]any{
		"name": "Cold Room Deposit", "type": "asset", "openingBalance": "1000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var deposit models.Ledger
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deposit))
	assert.Equal(t, models.AccountTypeAsset, deposit.Type)

	w = s.do(t, http.MethodPost, "/api/v1/ledgers", tok, map[string]any{"name": "Odd", "type": "Revenue"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/ledgers", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ledgers []models.Ledger
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ledgers))

	var rentID string
	for _, l := range ledgers {
		if l.Name == "Storage Rent" {
			rentID = l.ID
		}
	}
	require.NotEmpty(t, rentID)

	w = s.do(t, http.MethodPost, "/api/v1/vouchers", tok, map[string]any{
		"debitLedger": deposit.ID, "creditLedger": rentID, "amount": "200",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/vouchers", tok, map[string]any{
		"debitLedger": deposit.ID, "creditLedger": deposit.ID, "amount": "5",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/vouchers", tok, map[string]any{
		"debitLedger": deposit.ID, "creditLedger": "ghost", "amount": "5",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/ledgers/"+deposit.ID+"/balance", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var line ledger.BalanceLine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &line))
	assert.True(t, decimal.NewFromInt(1200).Equal(line.Balance), line.Balance.String())
	assert.Equal(t, "Dr", line.Side)

	w = s.do(t, http.MethodGet, "/api/v1/ledgers/balances", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lines []ledger.BalanceLine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lines))
	assert.Len(t, lines, len(ledgers))

	w = s.do(t, http.MethodGet, "/api/v1/ledgers/ghost/balance", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/vouchers", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var vouchers []models.Voucher
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vouchers))
	assert.Len(t, vouchers, 1)
}
