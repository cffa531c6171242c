// Package client talks to the cold storage API on behalf of a signed-in
// store admin. It reads the bearer token from a session.Container and signs
// the session out when the API rejects that token.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sheikh-saqib/cold-storage-ledger/internal/auth"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/ledger"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/session"
	"go.uber.org/zap"
)

const loginPath = "/api/v1/auth/login"

var ErrUnauthorized = errors.New("session expired, please log in again")

// APIError is a non-2xx answer other than an auth rejection.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	session *session.Container
	log     *zap.Logger
}

func New(baseURL string, sess *session.Container, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		session: sess,
		log:     log,
	}
}

// Login signs in and stores the resulting session. The loading flag is set
// for the duration of the call. Wrong credentials return
// auth.ErrInvalidCredentials and leave the current session alone.
func (c *Client) Login(ctx context.Context, email, password string) (models.LoginResponse, error) {
	c.session.SetLoading(true)
	defer c.session.SetLoading(false)

	var resp models.LoginResponse
	err := c.do(ctx, http.MethodPost, loginPath, models.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return models.LoginResponse{}, err
	}

	c.session.SetSessionData(resp.Admin, resp.ColdStorage, resp.Token, resp.Preferences)
	c.log.Debug("logged in", zap.String("admin_id", resp.Admin.ID))
	return resp, nil
}

// Logout drops the local session. Tokens are stateless, so the API is not
// called.
func (c *Client) Logout() {
	c.session.SetLoading(true)
	c.session.ClearSessionData()
	c.session.SetLoading(false)
}

func (c *Client) Ledgers(ctx context.Context) ([]models.Ledger, error) {
	var out []models.Ledger
	err := c.do(ctx, http.MethodGet, "/api/v1/ledgers", nil, &out)
	return out, err
}

func (c *Client) Vouchers(ctx context.Context) ([]models.Voucher, error) {
	var out []models.Voucher
	err := c.do(ctx, http.MethodGet, "/api/v1/vouchers", nil, &out)
	return out, err
}

func (c *Client) PostVoucher(ctx context.Context, v models.Voucher) (models.Voucher, error) {
	var out models.Voucher
	err := c.do(ctx, http.MethodPost, "/api/v1/vouchers", v, &out)
	return out, err
}

// Balances fetches ledgers and vouchers and computes balances locally.
func (c *Client) Balances(ctx context.Context) ([]models.Ledger, map[string]ledger.BalanceLine, error) {
	ledgers, err := c.Ledgers(ctx)
	if err != nil {
		return nil, nil, err
	}
	vouchers, err := c.Vouchers(ctx)
	if err != nil {
		return nil, nil, err
	}
	return ledgers, ledger.Lines(ledgers, ledger.ComputeBalances(ledgers, vouchers)), nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if path == loginPath {
			return auth.ErrInvalidCredentials
		}
		c.log.Info("api rejected session, signing out", zap.String("path", path))
		c.session.ClearSessionData()
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
