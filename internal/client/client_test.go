package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/api"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/auth"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/ledger"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/session"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/storage/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	admins := memory.NewMemoryAdminStore()
	ledgers := memory.NewMemoryLedgerStore()
	_, err := memory.Seed(context.Background(), admins, ledgers, "admin@example.com", "potato123")
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewRouter(api.Deps{
		Ledger: ledger.NewService(ledgers, nil, nil),
		Admins: admins,
		Issuer: auth.NewIssuer("test-secret"),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newContainer(kv *memory.KVStore) *session.Container {
	c := session.NewContainer(session.NewExpiringStorage(kv), nil)
	c.Hydrate()
	return c
}

func TestClient_LoginStoresSession(t *testing.T) {
	srv := newAPIServer(t)
	kv := memory.NewKVStore()
	sess := newContainer(kv)
	cl := New(srv.URL, sess, nil)

	var loadingSeen []bool
	sess.Subscribe(func(s session.State) { loadingSeen = append(loadingSeen, s.IsLoading) })

	resp, err := cl.Login(context.Background(), "admin@example.com", "potato123")
	require.NoError(t, err)

	s := sess.Snapshot()
	assert.Equal(t, resp.Token, s.Token)
	assert.Equal(t, "Demo Cold Storage", s.Organization.Name)
	assert.False(t, s.IsLoading)
	assert.Equal(t, true, loadingSeen[0])

	_, ok, err := kv.Get(session.StorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClient_FailedLoginKeepsSession(t *testing.T) {
	srv := newAPIServer(t)
	sess := newContainer(memory.NewKVStore())
	cl := New(srv.URL, sess, nil)

	_, err := cl.Login(context.Background(), "admin@example.com", "potato123")
	require.NoError(t, err)
	token := sess.Token()

	_, err = cl.Login(context.Background(), "admin@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Equal(t, token, sess.Token())
	assert.False(t, sess.Snapshot().IsLoading)
}

func TestClient_BalancesComputedLocally(t *testing.T) {
	srv := newAPIServer(t)
	sess := newContainer(memory.NewKVStore())
	cl := New(srv.URL, sess, nil)
	ctx := context.Background()

	_, err := cl.Login(ctx, "admin@example.com", "potato123")
	require.NoError(t, err)

	ledgers, err := cl.Ledgers(ctx)
	require.NoError(t, err)
	byName := map[string]string{}
	for _, l := range ledgers {
		byName[l.Name] = l.ID
	}

	_, err = cl.PostVoucher(ctx, models.Voucher{
		DebitLedger:  byName["Cash"],
		CreditLedger: byName["Storage Rent"],
		Amount:       decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	_, lines, err := cl.Balances(ctx)
	require.NoError(t, err)
	assert.Equal(t, "300", lines[byName["Cash"]].Balance.String())
	assert.Equal(t, "300", lines[byName["Storage Rent"]].Balance.String())
	assert.Equal(t, "Cr", lines[byName["Storage Rent"]].Side)
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	kv := memory.NewKVStore()
	sess := newContainer(kv)
	sess.SetSessionData(models.StoreAdmin{ID: "a"}, models.ColdStorage{ID: "cs"}, "stale-token", models.Preferences{})
	cl := New(srv.URL, sess, nil)

	_, err := cl.Ledgers(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Bearer stale-token", gotAuth)
	assert.False(t, sess.IsAuthenticated())
	assert.True(t, sess.Snapshot().HasHydrated)

	_, ok, err := kv.Get(session.StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"unknown ledger: ghost"}`))
	}))
	defer srv.Close()

	sess := newContainer(memory.NewKVStore())
	sess.SetSessionData(models.StoreAdmin{ID: "a"}, models.ColdStorage{ID: "cs"}, "tok", models.Preferences{})
	cl := New(srv.URL, sess, nil)

	_, err := cl.PostVoucher(context.Background(), models.Voucher{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "unknown ledger: ghost", apiErr.Message)
	assert.True(t, sess.IsAuthenticated())
}

func TestClient_Logout(t *testing.T) {
	sess := newContainer(memory.NewKVStore())
	sess.SetSessionData(models.StoreAdmin{ID: "a"}, models.ColdStorage{ID: "cs"}, "tok", models.Preferences{})

	New("http://unused", sess, nil).Logout()

	assert.False(t, sess.IsAuthenticated())
	assert.False(t, sess.Snapshot().IsLoading)
}
